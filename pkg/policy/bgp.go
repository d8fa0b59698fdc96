package policy

import (
	"maps"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// Route-map set attributes.
const (
	SetWeight    = "weight"
	SetLocalPref = "local-preference"
	SetMetric    = "metric"
	SetASPrepend = "as-path prepend"
)

// attribute pairs an attribute map of a filter with its naming template.
type attribute struct {
	set  string
	tmpl string
	vals spec.AttrMap
}

func (c *Context) attributes(f *spec.Filter) []attribute {
	n := c.adv.BGPNaming
	return []attribute{
		{SetWeight, n.Weight, f.Weight},
		{SetLocalPref, n.Pref, f.Pref},
		{SetMetric, n.MED, f.MED},
		{SetASPrepend, n.ASPrepend, f.ASPrepend},
	}
}

// Filter synthesizes one direction of a group or peer and returns the name
// of its route-map, or "" when the direction emits nothing. Attribute
// clauses come first, then the deny list, the allow list, allow default,
// allow any, and deny any last. An allow that combines more than one of
// list, default and any fails with *util.AmbiguousPolicyError and nothing is
// emitted for the direction.
func (c *Context) Filter(name, dir string, f *spec.Filter) (string, error) {
	if f == nil {
		return "", nil
	}
	if kinds := f.Allow.Kinds(); len(kinds) > 1 {
		return "", &util.AmbiguousPolicyError{Policy: name, Direction: dir, Combined: kinds}
	}

	n := c.adv.BGPNaming
	rm := bgpName(n.RouteMap, name, dir, "")
	cur := startAt(0)
	entry := func(action, match string) model.RouteMapEntry {
		return model.RouteMapEntry{Name: rm, Seq: cur.next(), Action: action, MatchKind: model.MatchPrefixList, Match: match}
	}

	for _, attr := range c.attributes(f) {
		for _, e := range attr.vals {
			pl := bgpName(attr.tmpl, name, dir, e.Value)
			c.prefixList(pl, e.Prefixes)
			clause := entry(model.Permit, pl)
			clause.SetAttr, clause.SetValue = attr.set, e.Value
			c.clause(clause)
		}
	}

	if len(f.Deny.Prefixes) > 0 {
		pl := bgpName(n.Deny, name, dir, "")
		c.prefixList(pl, spec.PrefixSet{Prefixes: f.Deny.Prefixes})
		c.clause(entry(model.Deny, pl))
	}
	if f.Deny.Default {
		c.clause(entry(model.Deny, c.useDefault(c.adv.DefaultPL.Default)))
	}

	switch {
	case len(f.Allow.Prefixes) > 0:
		pl := bgpName(n.Allow, name, dir, "")
		c.prefixList(pl, f.Allow)
		c.clause(entry(model.Permit, pl))
	case f.Allow.Default:
		c.clause(entry(model.Permit, c.useDefault(c.adv.DefaultPL.Default)))
	case f.Allow.Any:
		c.clause(entry(model.Permit, c.useDefault(c.adv.DefaultPL.AllowAny)))
	}

	if f.Deny.Any {
		c.clause(entry(model.Deny, c.useDefault(c.adv.DefaultPL.DenyAny)))
	}

	if !cur.emitted(0) {
		return "", nil
	}
	return rm, nil
}

// session copies the settings of a group or peer into a fresh record.
func session(s spec.BGPSession) model.BGPSession {
	return model.BGPSession{
		Description:      s.Description,
		RemoteAS:         s.RemoteAS,
		Timers:           append([]int(nil), s.Timers...),
		BFD:              s.BFD,
		Password:         s.Password,
		DefaultOriginate: s.DefaultOriginate,
		UpdateSource:     s.UpdateSource,
		EBGPMultihop:     s.EBGPMultihop,
		NextHopSelf:      s.NextHopSelf,
	}
}

// policies synthesizes both directions of a group or peer into s.
func (c *Context) policies(name string, src spec.BGPSession, s *model.BGPSession) {
	var err error
	if s.InboundRM, err = c.Filter(name, DirIn, src.Inbound); err != nil {
		c.errs = append(c.errs, err)
	}
	if s.OutboundRM, err = c.Filter(name, DirOut, src.Outbound); err != nil {
		c.errs = append(c.errs, err)
	}
}

// vrfs keeps the BGP VRFs of a device in first-seen order.
type vrfs struct {
	list  []*model.BGPVRF
	index map[string]*model.BGPVRF
}

func (v *vrfs) get(name string) *model.BGPVRF {
	if v.index == nil {
		v.index = map[string]*model.BGPVRF{}
	}
	if b, ok := v.index[name]; ok {
		return b
	}
	b := &model.BGPVRF{VRF: name}
	v.list = append(v.list, b)
	v.index[name] = b
	return b
}

func (v *vrfs) result() []model.BGPVRF {
	if len(v.list) == 0 {
		return nil
	}
	out := make([]model.BGPVRF, len(v.list))
	for i, b := range v.list {
		out[i] = *b
	}
	return out
}

// tenantsOf returns the VRFs an object is scoped to, global when none.
func tenantsOf(t spec.StringList) []string {
	if len(t) == 0 {
		return []string{model.GlobalVRF}
	}
	return t
}

// BGP resolves the groups, peers and tenant blocks that apply to device.
// A peer inherits switch and tenant scope from its group and is copied into
// every VRF it is scoped to.
func (c *Context) BGP(b spec.BGP, device string) []model.BGPVRF {
	var out vrfs

	for _, g := range b.Groups {
		// Group instances per VRF in first-use order.
		groups := map[string]*model.BGPGroup{}
		var order []string
		instance := func(vrf string) *model.BGPGroup {
			if grp, ok := groups[vrf]; ok {
				return grp
			}
			grp := &model.BGPGroup{Name: g.Name, BGPSession: session(g.BGPSession)}
			c.policies(g.Name, g.BGPSession, &grp.BGPSession)
			groups[vrf] = grp
			order = append(order, vrf)
			return grp
		}

		if g.Switch.Contains(device) {
			for _, vrf := range tenantsOf(g.Tenant) {
				instance(vrf)
			}
		}
		for _, p := range g.Peers {
			sw := p.Switch
			if len(sw) == 0 {
				sw = g.Switch
			}
			if !sw.Contains(device) {
				continue
			}
			tnts := p.Tenant
			if len(tnts) == 0 {
				tnts = g.Tenant
			}
			for _, vrf := range tenantsOf(tnts) {
				peer := model.BGPPeer{Name: p.Name, PeerIP: p.PeerIP, BGPSession: session(p.BGPSession)}
				c.policies(p.Name, p.BGPSession, &peer.BGPSession)
				grp := instance(vrf)
				grp.Peers = append(grp.Peers, peer)
			}
		}

		for _, vrf := range order {
			v := out.get(vrf)
			v.Groups = append(v.Groups, *groups[vrf])
		}
	}

	for _, t := range b.Tenants {
		if !t.Switch.Contains(device) {
			continue
		}
		v := out.get(t.Name)
		v.Networks = append(v.Networks, t.Network...)
		if len(t.Summary) > 0 {
			if v.Summary == nil {
				v.Summary = map[string]string{}
			}
			maps.Copy(v.Summary, t.Summary)
		}
		for _, r := range t.Redist {
			if len(r.Switch) > 0 && !r.Switch.Contains(device) {
				continue
			}
			v.Redist = append(v.Redist, model.Redist{Type: r.Type, RouteMap: c.Redistribute(r, ProtoBGP, t.Name)})
		}
	}

	util.WithDevice(device).Debugf("bgp: %d vrfs", len(out.list))
	return out.result()
}

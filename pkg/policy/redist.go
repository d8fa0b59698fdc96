package policy

import (
	"strconv"
	"strings"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
)

// Redistribute synthesizes the route-map redistributing r.Type into dst
// inside vrf and returns its name.
//
// Without allow and metric a single unmatched clause redistributes
// everything. Each metric value gets a prefix-list and a clause of its own.
// For connected routes the allow field lists interfaces: they are matched
// directly at model.SeqConnectedInterfaces and metric clauses follow from
// model.SeqFirstFree. For other sources the metric clauses come first and
// the allow prefix-list is matched after them.
func (c *Context) Redistribute(r spec.Redist, dst, vrf string) string {
	n := c.adv.RedistNaming
	rm := RedistRouteMap(n, r.Type, dst, vrf)
	connected := IsConnected(r.Type)

	if r.Allow.IsZero() && len(r.Metric) == 0 {
		seq := model.RouteMapStep
		if connected {
			seq = int(model.SeqConnectedInterfaces)
		}
		c.clause(model.RouteMapEntry{Name: rm, Seq: seq, Action: model.Permit})
		return rm
	}

	cur := startAt(0)
	if connected {
		cur = startAt(model.SeqConnectedInterfaces)
		if !r.Allow.IsZero() {
			c.clause(c.connectedClause(rm, r.Allow))
		}
	}

	for _, e := range r.Metric {
		pl := RedistMetricPrefixList(n, r.Type, dst, vrf, e.Value)
		c.prefixList(pl, e.Prefixes)
		c.clause(model.RouteMapEntry{
			Name:      rm,
			Seq:       cur.next(),
			Action:    model.Permit,
			MatchKind: model.MatchPrefixList,
			Match:     pl,
			SetAttr:   SetMetric,
			SetValue:  e.Value,
		})
	}

	if !connected && !r.Allow.IsZero() {
		pl := RedistPrefixList(n, r.Type, dst, vrf)
		c.prefixList(pl, r.Allow)
		c.clause(model.RouteMapEntry{Name: rm, Seq: cur.next(), Action: model.Permit, MatchKind: model.MatchPrefixList, Match: pl})
	}
	return rm
}

// connectedClause matches the allowed interfaces of a connected
// redistribution. "any" matches every connected route.
func (c *Context) connectedClause(rm string, allow spec.PrefixSet) model.RouteMapEntry {
	e := model.RouteMapEntry{Name: rm, Seq: int(model.SeqConnectedInterfaces), Action: model.Permit}
	if allow.Any || len(allow.Prefixes) == 0 {
		return e
	}
	e.MatchKind = model.MatchInterface
	e.Match = strings.Join(c.names.ExpandAll(allow.Prefixes), " ")
	return e
}

// TenantTag emits the tag match of a tenant's connected-to-BGP map. Tenants
// without redistributed VLANs get nothing.
func (c *Context) TenantTag(t model.Tenant) {
	if !t.Redist || t.RMName == "" {
		return
	}
	c.clause(model.RouteMapEntry{
		Name:      t.RMName,
		Seq:       int(model.SeqTagMatch),
		Action:    model.Permit,
		MatchKind: model.MatchTag,
		Match:     strconv.Itoa(t.BGPRedistTag),
	})
}

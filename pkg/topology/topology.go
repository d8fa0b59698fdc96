// Package topology derives the device inventory of the fabric: names,
// management and loopback addresses, fabric uplinks and MLAG peer-links.
package topology

import (
	"fmt"
	"net/netip"
	"regexp"
	"strconv"
	"strings"

	"github.com/newtron-network/fabricgen/pkg/alloc"
	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

var mlagPeerRe = regexp.MustCompile(`^(\d{1,3})-(\d{1,3})$`)

// Topology is the ordered device inventory: spines, then leafs, then borders.
type Topology struct {
	Devices []*model.Device
	byName  map[string]*model.Device
}

// Device returns the named device, or nil.
func (t *Topology) Device(name string) *model.Device {
	return t.byName[name]
}

// Has reports whether name is a device of the fabric.
func (t *Topology) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Role returns the devices of one role in ordinal order.
func (t *Topology) Role(role string) []*model.Device {
	var out []*model.Device
	for _, d := range t.Devices {
		if d.Role == role {
			out = append(out, d)
		}
	}
	return out
}

// Names returns every device name in build order.
func (t *Topology) Names() []string {
	names := make([]string, len(t.Devices))
	for i, d := range t.Devices {
		names[i] = d.Name
	}
	return names
}

// pools holds the parsed address pools.
type pools struct {
	lp, mgmt, mlag netip.Prefix
}

func parsePools(addr spec.Addr, needMLAG bool) (pools, error) {
	var p pools
	var err error
	if p.lp, err = util.ParsePool(addr.LpNet); err != nil {
		return p, util.NewMalformedError("bse.addr.lp_net", addr.LpNet, err.Error())
	}
	if p.mgmt, err = util.ParsePool(addr.MgmtNet); err != nil {
		return p, util.NewMalformedError("bse.addr.mgmt_net", addr.MgmtNet, err.Error())
	}
	if needMLAG {
		if p.mlag, err = util.ParsePool(addr.MlagNet); err != nil {
			return p, util.NewMalformedError("bse.addr.mlag_net", addr.MlagNet, err.Error())
		}
	}
	return p, nil
}

// ParseMLAGPeer splits the "a-b" peer-link member spec.
func ParseMLAGPeer(s string) ([]int, error) {
	m := mlagPeerRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, util.NewMalformedError("fbc.adv.bse_intf.mlag_peer", s, `must be "a-b"`)
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	return []int{a, b}, nil
}

// roleIncre holds the address increments of one role.
type roleIncre struct {
	ip, vtep, mlagLp, bgw, mlagIP int
}

func increFor(role string, a spec.AddrIncre) roleIncre {
	switch role {
	case spec.RoleSpine:
		return roleIncre{ip: a.SpineIP}
	case spec.RoleLeaf:
		return roleIncre{ip: a.LeafIP, vtep: a.LeafVtepLp, mlagLp: a.LeafMlagLp, mlagIP: a.MlagLeafIP}
	default:
		return roleIncre{ip: a.BorderIP, vtep: a.BorderVtepLp, mlagLp: a.BorderMlagLp, bgw: a.BorderBgwLp, mlagIP: a.MlagBorderIP}
	}
}

// Build derives every device of the fabric. Malformed pools or peer-link
// specs are fatal.
func Build(base spec.Base, fbc spec.Fabric) (*Topology, error) {
	size := fbc.NetworkSize
	for _, role := range spec.Roles {
		if n := size.Count(role); n < 0 || n > alloc.MaxOrdinal {
			return nil, util.NewMalformedError("fbc.network_size", strconv.Itoa(n),
				fmt.Sprintf("%s count must be 0-%d", role, alloc.MaxOrdinal))
		}
	}
	p, err := parsePools(base.Addr, size.NumLeafs+size.NumBorders > 0)
	if err != nil {
		return nil, err
	}
	var mlagPorts []int
	if size.NumLeafs+size.NumBorders > 0 {
		if mlagPorts, err = ParseMLAGPeer(fbc.Adv.BaseIntf.MLAGPeer); err != nil {
			return nil, err
		}
	}

	t := &Topology{byName: map[string]*model.Device{}}
	for _, role := range spec.Roles {
		for ord := 1; ord <= size.Count(role); ord++ {
			d, err := buildDevice(role, ord, base, fbc, p)
			if err != nil {
				return nil, err
			}
			t.Devices = append(t.Devices, d)
			t.byName[d.Name] = d
		}
	}

	for _, d := range t.Devices {
		links, err := fabricLinks(d, base.DeviceName, fbc)
		if err != nil {
			return nil, err
		}
		d.FabricLinks = links
		if d.HasMLAG() {
			if d.MLAGLinks, err = mlagLinks(d, fbc, mlagPorts); err != nil {
				return nil, err
			}
		}
		util.WithDevice(d.Name).Debugf("%d fabric links, %d peer-links", len(d.FabricLinks), len(d.MLAGLinks))
	}
	return t, nil
}

func buildDevice(role string, ord int, base spec.Base, fbc spec.Fabric, p pools) (*model.Device, error) {
	prefix := base.DeviceName.Get(role)
	name, err := alloc.DeviceName(prefix, ord)
	if err != nil {
		return nil, util.NewMalformedError("fbc.network_size", strconv.Itoa(fbc.NetworkSize.Count(role)), err.Error())
	}
	incr := increFor(role, fbc.Adv.AddrIncre)
	lpNames := fbc.Adv.Loopbacks

	d := &model.Device{
		Name:       name,
		Role:       role,
		Group:      alloc.RoleGroup(prefix),
		OS:         base.OS.Get(role),
		Ordinal:    ord,
		ASN:        fbc.Route.BGP.ASN,
		OSPFProc:   fbc.Route.OSPF.Process,
		OSPFArea:   fbc.Route.OSPF.Area,
		AcastGwMAC: fbc.AcastGwMAC,
	}

	mgmt, err := alloc.HostAddress(p.mgmt, incr.ip+ord-1)
	if err != nil {
		return nil, fmt.Errorf("%s: mgmt_net: %w", name, err)
	}
	d.MgmtIP = mgmt.String()

	rtr, err := alloc.Address(p.lp, incr.ip, ord)
	if err != nil {
		return nil, fmt.Errorf("%s: router loopback: %w", name, err)
	}
	d.Loopbacks = append(d.Loopbacks, model.Loopback{Name: lpNames.Rtr.Name, IP: rtr.String(), Descr: lpNames.Rtr.Descr})

	if role == spec.RoleSpine {
		return d, nil
	}

	// Shared addresses use the pair index so both members compute the same value.
	pair := alloc.PairIndex(ord)
	vtep, err := alloc.Address(p.lp, incr.vtep, ord)
	if err != nil {
		return nil, fmt.Errorf("%s: vtep loopback: %w", name, err)
	}
	mlagLp, err := alloc.Address(p.lp, incr.mlagLp, pair)
	if err != nil {
		return nil, fmt.Errorf("%s: mlag loopback: %w", name, err)
	}
	d.Loopbacks = append(d.Loopbacks, model.Loopback{
		Name:          lpNames.Vtep.Name,
		IP:            vtep.String(),
		Descr:         lpNames.Vtep.Descr,
		MLAGSecondary: mlagLp.String(),
	})

	if role == spec.RoleBorder {
		bgw, err := alloc.Address(p.lp, incr.bgw, pair)
		if err != nil {
			return nil, fmt.Errorf("%s: bgw loopback: %w", name, err)
		}
		d.Loopbacks = append(d.Loopbacks, model.Loopback{Name: lpNames.Bgw.Name, IP: bgw.String(), Descr: lpNames.Bgw.Descr})
	}

	peerIP, err := alloc.HostAddress(p.mlag, ord+incr.mlagIP-1)
	if err != nil {
		return nil, fmt.Errorf("%s: mlag_net: %w", name, err)
	}
	d.MLAGPeerIP = peerIP.String() + "/31"
	return d, nil
}

// fabricLinks builds the uplink map. Spines link to every leaf and border;
// leafs and borders link to every spine. The remote port number is derived
// from the local ordinal and the remote side's offset.
func fabricLinks(d *model.Device, names spec.RoleStrings, fbc spec.Fabric) ([]model.Link, error) {
	bi := fbc.Adv.BaseIntf
	size := fbc.NetworkSize

	type side struct {
		remoteRole string
		count      int
		localBase  int
		remoteBase int
	}
	var sides []side
	switch d.Role {
	case spec.RoleSpine:
		sides = []side{
			{spec.RoleLeaf, size.NumLeafs, bi.SpToLf, bi.LfToSp},
			{spec.RoleBorder, size.NumBorders, bi.SpToBdr, bi.BdrToSp},
		}
	case spec.RoleLeaf:
		sides = []side{{spec.RoleSpine, size.NumSpines, bi.LfToSp, bi.SpToLf}}
	case spec.RoleBorder:
		sides = []side{{spec.RoleSpine, size.NumSpines, bi.BdrToSp, bi.SpToBdr}}
	}

	var links []model.Link
	for _, s := range sides {
		for i := 0; i < s.count; i++ {
			remote, err := alloc.DeviceName(names.Get(s.remoteRole), i+1)
			if err != nil {
				return nil, err
			}
			links = append(links, model.Link{
				Name:  bi.IntfFmt + strconv.Itoa(s.localBase+i),
				Descr: fmt.Sprintf("UPLINK > %s %s%d", remote, bi.IntfShort, d.Ordinal+s.remoteBase-1),
			})
		}
	}
	return links, nil
}

// mlagLinks builds the peer-link map: both physical members and the
// peer-link port-channel, each described with the parity peer.
func mlagLinks(d *model.Device, fbc spec.Fabric, ports []int) ([]model.Link, error) {
	bi := fbc.Adv.BaseIntf
	peer, err := alloc.PeerName(d.Name)
	if err != nil {
		return nil, err
	}
	links := make([]model.Link, 0, len(ports)+1)
	for _, n := range ports {
		links = append(links, model.Link{
			Name:  bi.IntfFmt + strconv.Itoa(n),
			Descr: fmt.Sprintf("MLAG peer-link > %s %s%d", peer, bi.IntfShort, n),
		})
	}
	po := fbc.Adv.MLAG.PeerPO
	links = append(links, model.Link{
		Name:  bi.EcFmt + strconv.Itoa(po),
		Descr: fmt.Sprintf("MLAG peer-link > %s %s%d", peer, bi.EcShort, po),
	})
	return links, nil
}

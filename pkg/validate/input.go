package validate

import (
	"fmt"
	"net/netip"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/newtron-network/fabricgen/pkg/alloc"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

var (
	macRe      = regexp.MustCompile(`^([0-9A-Fa-f]{4}\.){2}[0-9A-Fa-f]{4}$`)
	mlagPeerRe = regexp.MustCompile(`^[0-9]{1,3}-[0-9]{1,3}$`)
)

var roleSuffix = map[string]string{
	spec.RoleSpine:  "-SPINE",
	spec.RoleLeaf:   "-LEAF",
	spec.RoleBorder: "-BORDER",
}

// Base checks base.yml: device name prefixes end in their role and every
// address pool is an IPv4 network without host bits.
func Base(b spec.Base) Result {
	v := &util.ValidationBuilder{}
	for _, role := range spec.Roles {
		name := b.DeviceName.Get(role)
		v.Add(strings.HasSuffix(name, roleSuffix[role]),
			"bse.device_name."+role+" ("+name+") must end in '"+roleSuffix[role]+"'")
	}

	pools := b.Addr.Named()
	for _, name := range sortedKeys(pools) {
		addr := pools[name]
		p, err := netip.ParsePrefix(addr)
		v.Add(err == nil && p.Addr().Is4() && p == p.Masked(),
			"bse.addr."+name+" ("+addr+") is not a valid IPv4 network address")
	}
	return result(spec.BaseFile, v)
}

// Fabric checks fabric.yml: device counts, underlay routing, the anycast
// gateway MAC, the peer-link members, loopback names, address increments
// and the MLAG settings.
func Fabric(f spec.Fabric) Result {
	v := &util.ValidationBuilder{}
	size := f.NetworkSize
	v.Add(size.NumSpines >= 1 && size.NumSpines <= alloc.MaxOrdinal,
		fmt.Sprintf("fbc.network_size.num_spines is %d, valid values are 1 to %d", size.NumSpines, alloc.MaxOrdinal))
	v.Add(size.NumLeafs >= 2 && size.NumLeafs < alloc.MaxOrdinal && size.NumLeafs%2 == 0,
		fmt.Sprintf("fbc.network_size.num_leafs is %d, must be an even number from 2 to %d", size.NumLeafs, alloc.MaxOrdinal-1))
	v.Add(size.NumBorders >= 0 && size.NumBorders < alloc.MaxOrdinal && size.NumBorders%2 == 0,
		fmt.Sprintf("fbc.network_size.num_borders is %d, must be an even number from 0 to %d", size.NumBorders, alloc.MaxOrdinal-1))

	v.Add(f.Route.OSPF.Process != "", "fbc.route.ospf.pro does not have a value")
	area, err := netip.ParseAddr(f.Route.OSPF.Area)
	v.Add(err == nil && area.Is4(),
		"fbc.route.ospf.area ("+f.Route.OSPF.Area+") is not a valid dotted decimal area")
	v.Add(f.Route.BGP.ASN != "", "fbc.route.bgp.as_num does not have a value")

	v.Add(macRe.MatchString(f.AcastGwMAC),
		"fbc.acast_gw_mac ("+f.AcastGwMAC+") is not valid, the format is xxxx.xxxx.xxxx")
	v.Add(mlagPeerRe.MatchString(f.Adv.BaseIntf.MLAGPeer),
		"fbc.adv.bse_intf.mlag_peer ("+f.Adv.BaseIntf.MLAGPeer+") must be in the format xxx-xxx")

	lp := f.Adv.Loopbacks
	if dups := lo.FindDuplicates([]string{lp.Rtr.Name, lp.Vtep.Name, lp.Bgw.Name}); len(dups) > 0 {
		v.AddErrorf("fbc.adv.lp %v is/are duplicated, all loopbacks should be unique", dups)
	}

	var incres []int
	named := f.Adv.AddrIncre.Named()
	for _, name := range sortedKeys(named) {
		// The MLAG peering offsets index a different pool.
		if strings.HasPrefix(name, "mlag") {
			continue
		}
		incres = append(incres, named[name])
	}
	if dups := lo.FindDuplicates(incres); len(dups) > 0 {
		v.AddErrorf("fbc.adv.addr_incre %v is/are duplicated, all address increments should be unique", dups)
	}

	v.Add(util.ValidateVLANID(f.Adv.MLAG.PeerVLAN) == nil,
		fmt.Sprintf("fbc.adv.mlag.peer_vlan (%d) is not a valid VLAN, valid values are 1 to 4094", f.Adv.MLAG.PeerVLAN))
	v.Add(f.Adv.MLAG.Domain > 0, "fbc.adv.mlag.domain does not have a value")
	v.Add(f.Adv.MLAG.PeerPO > 0, "fbc.adv.mlag.peer_po does not have a value")
	return result(spec.FabricFile, v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

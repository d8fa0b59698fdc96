package validate

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// Inventory answers whether a device name exists in the fabric.
type Inventory interface {
	Has(name string) bool
}

// Tenants checks services_tenant.yml: every tenant has VLANs, VLAN numbers
// are valid and unique within their tenant.
func Tenants(svc spec.TenantServices) Result {
	v := &util.ValidationBuilder{}
	for _, t := range svc.Tenants {
		if len(t.VLANs) == 0 {
			v.AddErrorf("svc_tnt.tnt %s has no vlans", t.Name)
			continue
		}
		nums := lo.Map(t.VLANs, func(vl spec.VLAN, _ int) int { return vl.Num })
		for _, n := range nums {
			if err := util.ValidateVLANID(n); err != nil {
				v.AddErrorf("svc_tnt.tnt %s: %v", t.Name, err)
			}
		}
		if dups := lo.FindDuplicates(nums); len(dups) > 0 {
			v.AddErrorf("svc_tnt.tnt %s: vlans %v are duplicated", t.Name, dups)
		}
	}
	return result(spec.TenantFile, v)
}

// Interfaces checks services_interface.yml: payloads match the interface
// type, routed interfaces are single-homed and every switch exists.
func Interfaces(svc spec.InterfaceServices, inv Inventory) Result {
	v := &util.ValidationBuilder{}
	for _, group := range svc.Intf.ByType() {
		for _, i := range group.Interfaces {
			where := fmt.Sprintf("svc_intf.intf.%s %q", group.Type, i.Descr)
			switch group.Type {
			case spec.IntfLayer3, spec.IntfLoopback:
				v.Add(util.IsValidIPv4CIDR(string(i.IPVLAN)), where+": ip_vlan "+string(i.IPVLAN)+" is not an IPv4 prefix")
				v.Add(i.DualHomed == nil || !*i.DualHomed, where+": "+group.Type+" interfaces cannot be dual-homed")
			case spec.IntfAccess:
				if _, err := i.IPVLAN.VLAN(); err != nil {
					v.Add(false, where+": "+err.Error())
				}
			default:
				_, err := i.IPVLAN.VLANs()
				v.Add(err == nil, where+": ip_vlan "+string(i.IPVLAN)+" is not a VLAN list")
			}
			checkSwitches(v, where, i.Switch, inv)
		}
	}
	return result(spec.InterfaceFile, v)
}

// Routing checks services_routing.yml: every switch a policy block is scoped
// to exists.
func Routing(rte spec.Routing, inv Inventory) Result {
	v := &util.ValidationBuilder{}
	for _, g := range rte.BGP.Groups {
		checkSwitches(v, "svc_rte.bgp.group "+g.Name, g.Switch, inv)
		for _, p := range g.Peers {
			checkSwitches(v, "svc_rte.bgp.group "+g.Name+" peer "+p.Name, p.Switch, inv)
		}
	}
	for _, t := range rte.BGP.Tenants {
		checkSwitches(v, "svc_rte.bgp.tenant "+t.Name, t.Switch, inv)
	}
	for _, p := range rte.OSPF {
		checkSwitches(v, "svc_rte.ospf "+p.Process, p.Switch, inv)
		for _, i := range p.Interfaces {
			checkSwitches(v, "svc_rte.ospf "+p.Process+" interface", i.Switch, inv)
		}
	}
	for i, s := range rte.Static {
		where := fmt.Sprintf("svc_rte.static_route[%d]", i)
		checkSwitches(v, where, s.Switch, inv)
		for _, r := range s.Routes {
			if r.NextHop != "" {
				v.Add(util.IsValidIPv4(r.NextHop), where+": next_hop "+r.NextHop+" is not an IPv4 address")
			}
			checkSwitches(v, where, r.Switch, inv)
		}
	}
	return result(spec.RoutingFile, v)
}

func checkSwitches(v *util.ValidationBuilder, where string, switches spec.StringList, inv Inventory) {
	for _, sw := range switches {
		v.Add(inv.Has(sw), where+": switch "+sw+" is not in the fabric")
	}
}

package policy

import (
	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// Resolve synthesizes the routing model of one device with a fresh Context.
// Ambiguous filters are reported in the error while everything else is
// still resolved. The result is nil when the device has no routing at all.
func Resolve(rte *spec.Routing, device string, tenants []model.Tenant, naming spec.BaseIntf) (*model.Routing, error) {
	var adv spec.RoutingAdv
	if rte != nil {
		adv = rte.Adv
	}
	c := NewContext(adv, util.NewInterfaceNames(naming.Abbreviations()))

	for _, t := range tenants {
		c.TenantTag(t)
	}

	r := &model.Routing{}
	if rte != nil {
		r.BGP = c.BGP(rte.BGP, device)
		r.OSPF = c.OSPF(rte.OSPF, device)
		r.Static = c.Static(rte.Static, device)
	}
	r.PrefixLists = c.PrefixLists()
	r.RouteMaps = c.RouteMaps()

	if r.IsEmpty() {
		return nil, c.Err()
	}
	util.WithDevice(device).Debugf("%d prefix-list entries, %d route-map clauses", len(r.PrefixLists), len(r.RouteMaps))
	return r, c.Err()
}

package policy

import (
	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
)

// Static resolves the static routes of device: one record per prefix and
// VRF, with the route's switch list inherited from its group.
func (c *Context) Static(groups []spec.StaticGroup, device string) []model.StaticRoute {
	var out []model.StaticRoute
	for _, g := range groups {
		for _, r := range g.Routes {
			if !scope(r.Switch, g.Switch).Contains(device) {
				continue
			}
			intf := r.Interface
			if intf != "" {
				intf = c.names.Expand(intf)
			}
			for _, vrf := range tenantsOf(g.Tenant) {
				for _, prefix := range r.Prefix {
					out = append(out, model.StaticRoute{
						VRF:        vrf,
						Prefix:     prefix,
						Interface:  intf,
						NextHop:    r.NextHop,
						NextHopVRF: r.NextHopVRF,
						AD:         r.AD,
					})
				}
			}
		}
	}
	return out
}

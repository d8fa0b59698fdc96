// Package tenant resolves tenants and their VLANs into per-role lists with
// derived VNIs and the trunk allowed-VLAN strings.
package tenant

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/policy"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// L3VNISuffix is appended to the tenant name for the synthetic L3VNI VLAN.
const L3VNISuffix = "_L3VNI"

// Result holds the tenants created on leafs and on borders and the compacted
// VLAN lists each role's trunks allow.
type Result struct {
	Leaf        []model.Tenant
	Border      []model.Tenant
	LeafVLANs   string
	BorderVLANs string
}

// ForRole returns the tenants and allowed VLANs of a role. Spines carry none.
func (r *Result) ForRole(role string) ([]model.Tenant, string) {
	switch role {
	case spec.RoleLeaf:
		return r.Leaf, r.LeafVLANs
	case spec.RoleBorder:
		return r.Border, r.BorderVLANs
	}
	return nil, ""
}

// counters are the three per-tenant VNI counters.
type counters struct {
	l3vni, l2vni, tntVLAN int
}

func (c *counters) advance(incr spec.VNIBase) {
	c.l2vni += incr.L2VNI
	c.l3vni += incr.L3VNI
	c.tntVLAN += incr.TntVLAN
}

// Resolve walks tenants in declaration order. A VLAN's VNI is the L2VNI
// counter at entry to its tenant plus the VLAN number; all counters advance
// once per tenant. A tenant without a VLAN list stops the walk: the tenants
// resolved so far are returned with a *util.MalformedError.
func Resolve(tenants []spec.Tenant, adv spec.TenantAdv, peerVLAN int, naming spec.RedistNaming) (*Result, error) {
	res := &Result{}
	c := counters{l3vni: adv.BaseVNI.L3VNI, l2vni: adv.BaseVNI.L2VNI, tntVLAN: adv.BaseVNI.TntVLAN}
	leafNums := []int{1, peerVLAN}
	borderNums := []int{1, peerVLAN}

	var err error
	for i, t := range tenants {
		if t.VLANs == nil {
			err = util.NewMalformedError(fmt.Sprintf("svc_tnt.tnt[%d].vlans", i), t.Name, "tenant has no vlans")
			break
		}
		leaf, border := resolveTenant(t, c, naming)
		if leaf != nil {
			res.Leaf = append(res.Leaf, *leaf)
			leafNums = append(leafNums, vlanNums(leaf)...)
		}
		if border != nil {
			res.Border = append(res.Border, *border)
			borderNums = append(borderNums, vlanNums(border)...)
		}
		util.WithComponent("tenant").Debugf("%s: l3vni %d, l2vni base %d", t.Name, c.l3vni, c.l2vni)
		c.advance(adv.VNIIncre)
	}

	res.LeafVLANs = util.CompactRange(leafNums)
	res.BorderVLANs = util.CompactRange(borderNums)
	return res, err
}

// resolveTenant builds the leaf and border views of one tenant. A role view
// is nil when no VLAN of the tenant is created on that role.
func resolveTenant(t spec.Tenant, c counters, naming spec.RedistNaming) (leaf, border *model.Tenant) {
	var leafVLANs, borderVLANs []model.TenantVLAN
	redist := false

	for _, v := range t.VLANs {
		tv := model.TenantVLAN{
			Num:    v.Num,
			Name:   v.Name,
			VNI:    c.l2vni + v.Num,
			IPAddr: v.IPAddr,
		}
		// No address means nothing to redistribute.
		if v.IPAddr != "" {
			tv.Redist = lo.FromPtrOr(v.Redist, true)
		}
		redist = redist || tv.Redist

		if lo.FromPtrOr(v.CreateOnBorder, false) {
			borderVLANs = append(borderVLANs, tv)
		}
		if lo.FromPtrOr(v.CreateOnLeaf, true) {
			leafVLANs = append(leafVLANs, tv)
		}
	}

	l3 := model.TenantVLAN{
		Num:    c.tntVLAN,
		Name:   t.Name + L3VNISuffix,
		VNI:    c.l3vni,
		IPAddr: model.L3VNIAddr,
		L3VNI:  true,
	}
	build := func(vlans []model.TenantVLAN) *model.Tenant {
		if len(vlans) == 0 {
			return nil
		}
		return &model.Tenant{
			Name:         t.Name,
			L3:           t.L3,
			L3VNI:        c.l3vni,
			TntVLAN:      c.tntVLAN,
			Redist:       redist,
			BGPRedistTag: lo.FromPtrOr(t.BGPRedistTag, c.l3vni),
			RMName:       policy.TenantRouteMap(naming, t.Name),
			VLANs:        append(vlans, l3),
		}
	}
	return build(leafVLANs), build(borderVLANs)
}

// vlanNums lists the VLANs a tenant adds to the trunk allowed list. The
// L3VNI VLAN is only carried for routed tenants.
func vlanNums(t *model.Tenant) []int {
	return lo.FilterMap(t.VLANs, func(v model.TenantVLAN, _ int) (int, bool) {
		return v.Num, !v.L3VNI || t.L3
	})
}

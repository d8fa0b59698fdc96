package validate

import (
	"errors"
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// Scope checks that everything a resolved device references exists on it:
// the VLANs its access and trunk interfaces carry and the VRFs its routed
// interfaces and routing policy use. Each kind is reported as one
// *util.LookupError listing every missing identifier.
func Scope(d *model.Device) error {
	vrfs := map[string]bool{model.GlobalVRF: true}
	for _, t := range d.Tenants {
		vrfs[t.Name] = true
	}
	carried := func(num int) bool {
		return lo.SomeBy(d.Tenants, func(t model.Tenant) bool { return t.HasVLAN(num) })
	}

	missingVLANs := map[int]bool{}
	missingVRFs := map[string]bool{}
	needVRF := func(vrf string) {
		if vrf != "" && !vrfs[vrf] {
			missingVRFs[vrf] = true
		}
	}

	for _, i := range d.Interfaces {
		if i.IsPortChannel() {
			continue
		}
		if i.IsRouted() {
			needVRF(i.Tenant)
			continue
		}
		if !i.IsTrunk() && i.Type != spec.IntfAccess {
			continue
		}
		nums, err := util.ExpandVLANRange(i.IPVLAN)
		if err != nil {
			continue
		}
		for _, n := range nums {
			if !carried(n) {
				missingVLANs[n] = true
			}
		}
	}

	if r := d.Routing; r != nil {
		for _, b := range r.BGP {
			needVRF(b.VRF)
		}
		for _, o := range r.OSPF {
			needVRF(o.VRF)
		}
		for _, s := range r.Static {
			needVRF(s.VRF)
		}
	}

	var errs []error
	if len(missingVLANs) > 0 {
		nums := lo.Keys(missingVLANs)
		sort.Ints(nums)
		errs = append(errs, util.NewLookupError("vlan", d.Name, lo.Map(nums, func(n int, _ int) string { return strconv.Itoa(n) })...))
	}
	if len(missingVRFs) > 0 {
		names := lo.Keys(missingVRFs)
		sort.Strings(names)
		errs = append(errs, util.NewLookupError("vrf", d.Name, names...))
	}
	return errors.Join(errs...)
}

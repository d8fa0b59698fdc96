// Package intf resolves service interface declarations for one device:
// homing defaults, device membership, number and port-channel assignment.
package intf

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/newtron-network/fabricgen/pkg/alloc"
	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// DefaultPOMode is the LACP mode of dual-homed members.
const DefaultPOMode = "active"

// record is one declaration with every default resolved. Records are built
// per call and never shared between devices.
type record struct {
	spec.Interface
	typ       string
	dualHomed bool
	stp       string
	poMode    string
	class     alloc.Class
}

var stpByType = map[string]string{
	spec.IntfAccess:      model.STPEdge,
	spec.IntfStpTrunk:    model.STPNetwork,
	spec.IntfNonStpTrunk: model.STPNormal,
}

// routed types cannot be dual-homed.
func routed(typ string) bool {
	return typ == spec.IntfLayer3 || typ == spec.IntfLoopback
}

// normalize resolves the defaults of one declaration. A routed interface
// declared dual-homed fails instead of being coerced.
func normalize(typ string, d spec.Interface) (record, error) {
	r := record{
		Interface: d,
		typ:       typ,
		dualHomed: lo.FromPtrOr(d.DualHomed, !routed(typ)),
		stp:       stpByType[typ],
	}
	if r.dualHomed && routed(typ) {
		return r, util.NewPreconditionError("resolve interface", d.Descr,
			typ+" interfaces are single-homed", "dual_homed: true is not allowed")
	}
	switch {
	case typ == spec.IntfLoopback:
		r.class = alloc.ClassLoopback
	case r.dualHomed:
		r.class = alloc.ClassDualHomed
		r.poMode = d.POMode
		if r.poMode == "" {
			r.poMode = DefaultPOMode
		}
	default:
		r.class = alloc.ClassSingleHomed
	}
	return r, nil
}

// onDevice reports whether the record is materialized on hostname. Dual-homed
// records belong to both members of the MLAG pair.
func (r *record) onDevice(hostname, peer string) bool {
	if r.Switch.Contains(hostname) {
		return true
	}
	return r.dualHomed && peer != "" && r.Switch.Contains(peer)
}

// inDomain reports whether the record draws a value from class. Dual-homed
// records draw both an interface and a port-channel number.
func (r *record) inDomain(class alloc.Class) bool {
	if class == alloc.ClassPortChannel {
		return r.dualHomed
	}
	return r.class == class
}

// Resolve returns the interfaces of hostname followed by the port-channels
// synthesized for its dual-homed members. Precondition and capacity
// failures are joined into the returned error; a class that ran out of
// numbers is left out while the other classes still resolve.
func Resolve(decls spec.Interfaces, hostname string, adv spec.InterfaceAdv, naming spec.BaseIntf) ([]model.Interface, error) {
	peer, err := alloc.PeerName(hostname)
	if err != nil {
		peer = ""
	}

	var errs []error
	var records []*record
	for _, group := range decls.ByType() {
		for _, d := range group.Interfaces {
			r, err := normalize(group.Type, d)
			if err != nil {
				// Routed declarations are single-homed: only their own
				// switches report them.
				if d.Switch.Contains(hostname) {
					errs = append(errs, err)
				}
				continue
			}
			if r.onDevice(hostname, peer) {
				records = append(records, &r)
			}
		}
	}

	nums := map[*record]int{}
	pos := map[*record]int{}
	failed := map[alloc.Class]bool{}

	assignClass := func(class alloc.Class, rng alloc.Range[int], pinned func(*record) *int, out map[*record]int) {
		members := lo.Filter(records, func(r *record, _ int) bool { return r.inDomain(class) })
		var static []int
		var pending []*record
		seen := map[int]string{}
		for _, r := range members {
			if p := pinned(r); p != nil {
				if prev, dup := seen[*p]; dup {
					errs = append(errs, util.NewPreconditionError("assign "+string(class), hostname,
						"unique numbers", fmt.Sprintf("%d pinned by both %q and %q", *p, prev, r.Descr)))
					failed[class] = true
					return
				}
				seen[*p] = r.Descr
				static = append(static, *p)
				out[r] = *p
				continue
			}
			pending = append(pending, r)
		}
		values, err := alloc.Assign(alloc.Domain{Device: hostname, Class: class}, rng, static, len(pending))
		if err != nil {
			errs = append(errs, err)
			failed[class] = true
			return
		}
		for i, r := range pending {
			out[r] = values[i]
		}
		util.WithDevice(hostname).WithField("class", class).Debugf("%d pinned, %d assigned", len(static), len(pending))
	}

	intfNum := func(r *record) *int { return r.IntfNum }
	poNum := func(r *record) *int { return r.PONum }
	assignClass(alloc.ClassLoopback, alloc.Range[int]{First: adv.SingleHomed.FirstLp, Last: adv.SingleHomed.LastLp}, intfNum, nums)
	assignClass(alloc.ClassSingleHomed, alloc.Range[int]{First: adv.SingleHomed.FirstIntf, Last: adv.SingleHomed.LastIntf}, intfNum, nums)
	assignClass(alloc.ClassDualHomed, alloc.Range[int]{First: adv.DualHomed.FirstIntf, Last: adv.DualHomed.LastIntf}, intfNum, nums)
	assignClass(alloc.ClassPortChannel, alloc.Range[int]{First: adv.DualHomed.FirstPO, Last: adv.DualHomed.LastPO}, poNum, pos)

	var out, portChannels []model.Interface
	for _, r := range records {
		if failed[r.class] || (r.dualHomed && failed[alloc.ClassPortChannel]) {
			continue
		}
		i, err := r.resolve(nums[r], pos[r], naming)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, i)
		if r.dualHomed {
			portChannels = append(portChannels, model.Interface{
				Name:      naming.EcFmt + strconv.Itoa(i.PONum),
				Type:      i.Type,
				Descr:     i.Descr,
				IPVLAN:    i.IPVLAN,
				STP:       i.STP,
				DualHomed: true,
				PONum:     i.PONum,
				POMode:    i.POMode,
				VPC:       i.PONum,
				Member:    i.Name,
			})
		}
	}
	return append(out, portChannels...), errors.Join(errs...)
}

// resolve builds the output record once numbers are known.
func (r *record) resolve(num, po int, naming spec.BaseIntf) (model.Interface, error) {
	i := model.Interface{
		Type:      r.typ,
		Descr:     r.Descr,
		IPVLAN:    string(r.IPVLAN),
		STP:       r.stp,
		Tenant:    r.Tenant,
		DualHomed: r.dualHomed,
		POMode:    r.poMode,
	}
	if r.class == alloc.ClassLoopback {
		i.Name = naming.LpFmt + strconv.Itoa(num)
	} else {
		i.Name = naming.IntfFmt + strconv.Itoa(num)
	}
	if r.dualHomed {
		i.PONum = po
	}

	switch r.typ {
	case spec.IntfStpTrunk, spec.IntfNonStpTrunk:
		vlans, err := r.IPVLAN.VLANs()
		if err != nil {
			return i, util.NewMalformedError("ip_vlan", string(r.IPVLAN), err.Error())
		}
		i.IPVLAN = util.CompactRange(vlans)
	case spec.IntfAccess:
		if _, err := r.IPVLAN.VLAN(); err != nil {
			return i, err
		}
	}
	return i, nil
}

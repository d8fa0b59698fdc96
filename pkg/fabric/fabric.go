// Package fabric builds the complete data model of every device of a fabric
// from a loaded vars directory.
package fabric

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/newtron-network/fabricgen/pkg/intf"
	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/policy"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/tenant"
	"github.com/newtron-network/fabricgen/pkg/topology"
	"github.com/newtron-network/fabricgen/pkg/util"
	"github.com/newtron-network/fabricgen/pkg/validate"
)

// Fabric is the result of one build.
type Fabric struct {
	Topology *topology.Topology
	Tenants  *tenant.Result
}

// Devices returns every device in build order.
func (f *Fabric) Devices() []*model.Device {
	return f.Topology.Devices
}

// Device returns the named device, or nil.
func (f *Fabric) Device(name string) *model.Device {
	return f.Topology.Device(name)
}

// Build derives the topology and tenants, then resolves the services and
// policy of every device concurrently. Devices share no mutable state: each
// gets its own tenant copies and policy context. Topology and tenant errors
// are fatal; per-device errors are joined and returned with the fabric so
// every problem is reported in one run.
func Build(ctx context.Context, vars *spec.Vars) (*Fabric, error) {
	topo, err := topology.Build(vars.Base, vars.Fabric)
	if err != nil {
		return nil, fmt.Errorf("topology: %w", err)
	}
	tnts, err := tenant.Resolve(vars.Tenants.Tenants, vars.Tenants.Adv, vars.Fabric.Adv.MLAG.PeerVLAN, vars.Routing.Adv.WithDefaults().RedistNaming)
	if err != nil {
		return nil, fmt.Errorf("tenants: %w", err)
	}
	f := &Fabric{Topology: topo, Tenants: tnts}

	errs := make([]error, len(topo.Devices))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, d := range topo.Devices {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			errs[i] = resolveDevice(d, vars, tnts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return f, errors.Join(errs...)
}

func resolveDevice(d *model.Device, vars *spec.Vars, tnts *tenant.Result) error {
	naming := vars.Fabric.Adv.BaseIntf
	log := util.WithDevice(d.Name)
	var errs []error

	roleTenants, allowed := tnts.ForRole(d.Role)
	d.Tenants = cloneTenants(roleTenants)
	d.AllowedVLANs = allowed

	intfs, err := intf.Resolve(vars.Interfaces.Intf, d.Name, vars.Interfaces.Adv, naming)
	if err != nil {
		errs = append(errs, err)
	}
	d.Interfaces = intfs

	if d.Routing, err = policy.Resolve(&vars.Routing, d.Name, d.Tenants, naming); err != nil {
		errs = append(errs, err)
	}

	if d.UnusedInterfaces, err = unusedInterfaces(d, vars.Fabric.NumIntf.Get(d.Role), naming.IntfFmt); err != nil {
		errs = append(errs, err)
	}

	if err := validate.Scope(d); err != nil {
		errs = append(errs, err)
	}

	log.Debugf("%d tenants, %d interfaces, %d unused", len(d.Tenants), len(d.Interfaces), len(d.UnusedInterfaces))
	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", d.Name, errors.Join(errs...))
	}
	return nil
}

func cloneTenants(in []model.Tenant) []model.Tenant {
	if in == nil {
		return nil
	}
	out := slices.Clone(in)
	for i := range out {
		out[i].VLANs = slices.Clone(out[i].VLANs)
	}
	return out
}

// unusedInterfaces lists the physical interfaces in the role's num_intf
// range ("first,last") that no fabric link, peer-link or service uses.
func unusedInterfaces(d *model.Device, numIntf, intfFmt string) ([]string, error) {
	if numIntf == "" {
		return nil, nil
	}
	bounds := util.SplitCommaSeparated(numIntf)
	if len(bounds) != 2 {
		return nil, util.NewMalformedError("fbc.num_intf."+d.Role, numIntf, `must be "first,last"`)
	}
	first, err1 := strconv.Atoi(bounds[0])
	last, err2 := strconv.Atoi(bounds[1])
	if err1 != nil || err2 != nil || first > last {
		return nil, util.NewMalformedError("fbc.num_intf."+d.Role, numIntf, `must be "first,last"`)
	}

	used := map[string]bool{}
	for _, name := range d.LinkNames() {
		used[name] = true
	}
	for _, i := range d.Interfaces {
		used[i.Name] = true
	}

	var unused []string
	for n := first; n <= last; n++ {
		name := intfFmt + strconv.Itoa(n)
		if !used[name] {
			unused = append(unused, name)
		}
	}
	return unused, nil
}

// Validate checks every input file. Service and routing checks need the
// device inventory, so they are skipped with a finding when the topology
// cannot be built.
func Validate(vars *spec.Vars) []validate.Result {
	results := []validate.Result{
		validate.Base(vars.Base),
		validate.Fabric(vars.Fabric),
		validate.Tenants(vars.Tenants),
	}
	topo, err := topology.Build(vars.Base, vars.Fabric)
	if err != nil {
		return append(results, validate.Result{
			File:     spec.InterfaceFile,
			Outcome:  validate.Fail,
			Findings: []string{"device inventory unavailable: " + err.Error()},
		})
	}
	return append(results,
		validate.Interfaces(vars.Interfaces, topo),
		validate.Routing(vars.Routing, topo),
	)
}

package policy

import (
	"github.com/samber/lo"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// scope returns the switch list of a block, inherited from its parent when
// the block declares none.
func scope(block, parent spec.StringList) spec.StringList {
	if len(block) > 0 {
		return block
	}
	return parent
}

// OSPF resolves the processes that apply to device. A process applies when
// its own switch list names the device or any of its blocks does.
func (c *Context) OSPF(procs []spec.OSPFProcess, device string) []model.OSPFProcess {
	var out []model.OSPFProcess
	for _, p := range procs {
		vrf := p.Tenant
		if vrf == "" {
			vrf = model.GlobalVRF
		}
		proc := model.OSPFProcess{
			Process:     p.Process,
			VRF:         vrf,
			RID:         p.RID,
			BFD:         p.BFD,
			DefaultOrig: p.DefaultOrig,
		}
		used := p.Switch.Contains(device)

		for _, i := range p.Interfaces {
			if !scope(i.Switch, p.Switch).Contains(device) {
				continue
			}
			used = true
			if proc.Interfaces == nil {
				proc.Interfaces = map[string]model.OSPFInterface{}
			}
			for _, name := range i.Name {
				proc.Interfaces[c.names.Expand(name)] = model.OSPFInterface{
					Area:           i.Area,
					Cost:           i.Cost,
					Type:           i.Type,
					Passive:        i.Passive,
					BFD:            lo.FromPtrOr(i.BFD, p.BFD),
					Authentication: i.Authentication,
				}
			}
			if i.AreaType != "" {
				if proc.AreaTypes == nil {
					proc.AreaTypes = map[string]string{}
				}
				proc.AreaTypes[i.Area] = i.AreaType
			}
			if i.Authentication != "" && !lo.Contains(proc.AuthAreas, i.Area) {
				proc.AuthAreas = append(proc.AuthAreas, i.Area)
			}
		}

		for _, s := range p.Summary {
			if !scope(s.Switch, p.Switch).Contains(device) {
				continue
			}
			used = true
			for _, prefix := range s.Prefix {
				sum := model.OSPFSummary{Prefix: prefix, Area: s.Area, Filter: s.Filter}
				if s.Area != "" {
					proc.AreaRanges = append(proc.AreaRanges, sum)
				} else {
					proc.Summaries = append(proc.Summaries, sum)
				}
			}
		}

		for _, r := range p.Redist {
			if !scope(r.Switch, p.Switch).Contains(device) {
				continue
			}
			used = true
			rm := c.Redistribute(r, ProtoOSPF+" "+p.Process, vrf)
			proc.Redist = append(proc.Redist, model.Redist{Type: r.Type, RouteMap: rm})
		}

		if used {
			util.WithDevice(device).Debugf("ospf %s: %d interfaces", p.Process, len(proc.Interfaces))
			out = append(out, proc)
		}
	}
	return out
}

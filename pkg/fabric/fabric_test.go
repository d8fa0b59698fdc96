package fabric

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
	"github.com/newtron-network/fabricgen/pkg/validate"
)

func loadSample(t *testing.T) *spec.Vars {
	t.Helper()
	vars, err := spec.NewLoader("../spec/testdata/vars").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return vars
}

func buildSample(t *testing.T) *Fabric {
	t.Helper()
	f, err := Build(context.Background(), loadSample(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return f
}

func interfaceNames(d *model.Device) []string {
	var names []string
	for _, i := range d.Interfaces {
		names = append(names, i.Name)
	}
	return names
}

func TestBuildSample(t *testing.T) {
	f := buildSample(t)
	if got := len(f.Devices()); got != 8 {
		t.Fatalf("devices = %d, want 8", got)
	}
	if f.Tenants.LeafVLANs != "1-2,10-11,20,24,30,210,3001" {
		t.Errorf("LeafVLANs = %q", f.Tenants.LeafVLANs)
	}
	if f.Tenants.BorderVLANs != "1-2,24,30,110,210,3001-3002" {
		t.Errorf("BorderVLANs = %q", f.Tenants.BorderVLANs)
	}
}

func TestBuildLeaf(t *testing.T) {
	f := buildSample(t)
	leaf := f.Device("DC1-N9K-LEAF01")
	if leaf == nil {
		t.Fatal("LEAF01 missing")
	}

	var tenants []string
	for _, tnt := range leaf.Tenants {
		tenants = append(tenants, tnt.Name)
	}
	if strings.Join(tenants, ",") != "BLU,AMB" {
		t.Errorf("tenants = %v, want [BLU AMB]", tenants)
	}
	if leaf.AllowedVLANs != f.Tenants.LeafVLANs {
		t.Errorf("allowed VLANs = %q", leaf.AllowedVLANs)
	}

	want := "Ethernet1/41,Ethernet1/42,Ethernet1/45,loopback11,Port-channel41,Port-channel25,Port-channel42"
	if got := strings.Join(interfaceNames(leaf), ","); got != want {
		t.Errorf("interfaces = %s\nwant %s", got, want)
	}

	// The peer's dual-homed interface is mirrored with the same numbers.
	peer := f.Device("DC1-N9K-LEAF02")
	if got := strings.Join(interfaceNames(peer), ","); got != "Ethernet1/41,Ethernet1/42,Ethernet1/45,Port-channel41,Port-channel25,Port-channel42" {
		t.Errorf("LEAF02 interfaces = %s", got)
	}

	if leaf.Routing == nil || len(leaf.Routing.RouteMaps) != 1 {
		t.Fatalf("routing = %+v, want the tenant tag clause only", leaf.Routing)
	}
	rm := leaf.Routing.RouteMaps[0]
	if rm.Name != "RM_CONN_to_BGPBLU" || rm.MatchKind != model.MatchTag || rm.Match != "3001" {
		t.Errorf("tag clause = %+v", rm)
	}

	if len(leaf.UnusedInterfaces) != 57 {
		t.Errorf("unused = %d, want 57", len(leaf.UnusedInterfaces))
	}
	for _, used := range []string{"Ethernet1/1", "Ethernet1/2", "Ethernet1/5", "Ethernet1/6", "Ethernet1/41", "Ethernet1/45"} {
		for _, u := range leaf.UnusedInterfaces {
			if u == used {
				t.Errorf("%s listed as unused", used)
			}
		}
	}
	if leaf.UnusedInterfaces[0] != "Ethernet1/3" || leaf.UnusedInterfaces[len(leaf.UnusedInterfaces)-1] != "Ethernet1/64" {
		t.Errorf("unused = %v", leaf.UnusedInterfaces)
	}
}

func TestBuildBorder(t *testing.T) {
	f := buildSample(t)
	border := f.Device("DC1-N9K-BORDER01")

	if border.Interfaces[0].Name != "Ethernet1/33" || border.Interfaces[0].Tenant != "BLU" {
		t.Errorf("layer3 interface = %+v", border.Interfaces[0])
	}

	r := border.Routing
	if r == nil || len(r.BGP) != 1 || r.BGP[0].VRF != "BLU" {
		t.Fatalf("bgp = %+v", r)
	}
	group := r.BGP[0].Groups[0]
	if group.InboundRM != "RM_INET_IN" || group.OutboundRM != "RM_INET_OUT" {
		t.Errorf("group route-maps = %q %q", group.InboundRM, group.OutboundRM)
	}
	if len(group.Peers) != 2 || group.Peers[0].InboundRM != "RM_ISP1_IN" || group.Peers[1].OutboundRM != "RM_ISP2_OUT" {
		t.Errorf("peers = %+v", group.Peers)
	}

	internal := 0
	for _, e := range r.PrefixLists {
		if e.Name == "PL_INET_OUT" {
			internal++
		}
	}
	if internal != 2 {
		t.Errorf("PL_INET_OUT entries = %d, want the 2 prefixes of @internal", internal)
	}

	if len(r.OSPF) != 1 || len(r.OSPF[0].Interfaces) != 3 {
		t.Errorf("ospf = %+v", r.OSPF)
	}
	if len(r.Static) != 1 || r.Static[0].Interface != "Ethernet1/33" {
		t.Errorf("static = %+v", r.Static)
	}

	// BORDER02 gets the group but not the BORDER01-only blocks.
	other := f.Device("DC1-N9K-BORDER02").Routing
	if len(other.BGP) != 1 || len(other.OSPF) != 0 || len(other.Static) != 0 {
		t.Errorf("BORDER02 routing = %+v", other)
	}
}

func TestBuildSpine(t *testing.T) {
	f := buildSample(t)
	spine := f.Device("DC1-N9K-SPINE01")
	if spine.Tenants != nil || spine.Interfaces != nil || spine.Routing != nil {
		t.Errorf("spine carries services: %+v", spine)
	}
	if len(spine.UnusedInterfaces) != 58 {
		t.Errorf("unused = %d, want 58", len(spine.UnusedInterfaces))
	}
}

func TestBuildTenantsNotShared(t *testing.T) {
	f := buildSample(t)
	a := f.Device("DC1-N9K-LEAF01")
	b := f.Device("DC1-N9K-LEAF02")
	a.Tenants[0].VLANs[0].Name = "changed"
	if b.Tenants[0].VLANs[0].Name == "changed" {
		t.Error("leafs share tenant VLAN storage")
	}
}

func TestBuildReportsDeviceErrors(t *testing.T) {
	vars := loadSample(t)
	yes := true
	vars.Interfaces.Intf.Layer3 = append(vars.Interfaces.Intf.Layer3, spec.Interface{
		Descr:     "bad",
		IPVLAN:    "10.1.1.1/30",
		Switch:    spec.StringList{"DC1-N9K-LEAF03"},
		DualHomed: &yes,
	})

	f, err := Build(context.Background(), vars)
	if !errors.Is(err, util.ErrPreconditionFailed) {
		t.Fatalf("Build() error = %v, want precondition failure", err)
	}
	if f == nil || f.Device("DC1-N9K-BORDER01").Routing == nil {
		t.Error("other devices not resolved")
	}
	if !strings.Contains(err.Error(), "DC1-N9K-LEAF01") {
		t.Errorf("error does not name the device: %v", err)
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, loadSample(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestValidate(t *testing.T) {
	vars := loadSample(t)
	if failed := validate.Failed(Validate(vars)); len(failed) != 0 {
		t.Errorf("sample failed validation: %+v", failed)
	}

	vars.Base.Addr.MgmtNet = "bogus"
	results := Validate(vars)
	failed := validate.Failed(results)
	if len(failed) != 2 {
		t.Fatalf("failed = %+v, want base.yml and the skipped inventory checks", failed)
	}
	if failed[0].File != spec.BaseFile {
		t.Errorf("first failure = %s", failed[0].File)
	}
}

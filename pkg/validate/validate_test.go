package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

func loadSample(t *testing.T) *spec.Vars {
	t.Helper()
	vars, err := spec.NewLoader("../spec/testdata/vars").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return vars
}

type inventory map[string]bool

func (i inventory) Has(name string) bool { return i[name] }

var sampleInventory = inventory{
	"DC1-N9K-BORDER01": true,
	"DC1-N9K-BORDER02": true,
	"DC1-N9K-LEAF01":   true,
	"DC1-N9K-LEAF02":   true,
}

func findingsContain(r Result, substr string) bool {
	for _, f := range r.Findings {
		if strings.Contains(f, substr) {
			return true
		}
	}
	return false
}

func TestSamplePasses(t *testing.T) {
	vars := loadSample(t)
	for _, r := range []Result{
		Base(vars.Base),
		Fabric(vars.Fabric),
		Tenants(vars.Tenants),
		Interfaces(vars.Interfaces, sampleInventory),
		Routing(vars.Routing, sampleInventory),
	} {
		if r.Outcome != Pass {
			t.Errorf("%s: outcome %v, findings %v", r.File, r.Outcome, r.Findings)
		}
		if r.Err() != nil {
			t.Errorf("%s: Err() = %v on pass", r.File, r.Err())
		}
	}
}

func TestBase(t *testing.T) {
	vars := loadSample(t)
	b := vars.Base
	b.DeviceName.Leaf = "DC1-N9K-LF"
	b.Addr.MgmtNet = "10.10.108.5/24"
	b.Addr.MlagNet = "10.255.255.0/33"

	r := Base(b)
	if r.Outcome != Fail {
		t.Fatalf("outcome = %v, want fail", r.Outcome)
	}
	if len(r.Findings) != 3 {
		t.Errorf("findings = %v, want 3", r.Findings)
	}
	for _, want := range []string{"bse.device_name.leaf", "bse.addr.mgmt_net", "bse.addr.mlag_net"} {
		if !findingsContain(r, want) {
			t.Errorf("no finding for %s in %v", want, r.Findings)
		}
	}
	if !errors.Is(r.Err(), util.ErrValidationFailed) {
		t.Errorf("Err() = %v, want ErrValidationFailed", r.Err())
	}
}

func TestFabric(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *spec.Fabric)
		want   string
	}{
		{"odd leafs", func(f *spec.Fabric) { f.NetworkSize.NumLeafs = 3 }, "num_leafs"},
		{"no spines", func(f *spec.Fabric) { f.NetworkSize.NumSpines = 0 }, "num_spines"},
		{"too many borders", func(f *spec.Fabric) { f.NetworkSize.NumBorders = 100 }, "num_borders"},
		{"ospf area", func(f *spec.Fabric) { f.Route.OSPF.Area = "0" }, "fbc.route.ospf.area"},
		{"ospf process", func(f *spec.Fabric) { f.Route.OSPF.Process = "" }, "fbc.route.ospf.pro"},
		{"asn", func(f *spec.Fabric) { f.Route.BGP.ASN = "" }, "as_num"},
		{"mac", func(f *spec.Fabric) { f.AcastGwMAC = "00:00:22:22:33:33" }, "acast_gw_mac"},
		{"mlag peer", func(f *spec.Fabric) { f.Adv.BaseIntf.MLAGPeer = "5,6" }, "mlag_peer"},
		{"loopbacks", func(f *spec.Fabric) { f.Adv.Loopbacks.Bgw.Name = "loopback1" }, "[loopback1]"},
		{"increments", func(f *spec.Fabric) { f.Adv.AddrIncre.LeafVtepLp = 11 }, "addr_incre [11]"},
		{"peer vlan", func(f *spec.Fabric) { f.Adv.MLAG.PeerVLAN = 4095 }, "peer_vlan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := loadSample(t).Fabric
			tt.modify(&f)
			r := Fabric(f)
			if r.Outcome != Fail || len(r.Findings) != 1 || !findingsContain(r, tt.want) {
				t.Errorf("Fabric() = %v %v, want one finding about %q", r.Outcome, r.Findings, tt.want)
			}
		})
	}
}

func TestFabricMLAGIncrementsMayRepeat(t *testing.T) {
	f := loadSample(t).Fabric
	f.Adv.AddrIncre.MlagLeafIP = 11
	f.Adv.AddrIncre.MlagBorderIP = 11
	if r := Fabric(f); r.Outcome != Pass {
		t.Errorf("findings = %v", r.Findings)
	}
}

func TestTenants(t *testing.T) {
	svc := spec.TenantServices{Tenants: []spec.Tenant{
		{Name: "BLU", VLANs: []spec.VLAN{{Num: 10}, {Num: 10}, {Num: 4095}}},
		{Name: "GRN"},
	}}
	r := Tenants(svc)
	if r.Outcome != Fail {
		t.Fatalf("outcome = %v", r.Outcome)
	}
	for _, want := range []string{"vlans [10] are duplicated", "4095", "GRN has no vlans"} {
		if !findingsContain(r, want) {
			t.Errorf("no finding %q in %v", want, r.Findings)
		}
	}
}

func TestInterfaces(t *testing.T) {
	yes := true
	svc := spec.InterfaceServices{Intf: spec.Interfaces{
		Layer3: []spec.Interface{{Descr: "wan", IPVLAN: "10.1.1.1", Switch: spec.StringList{"DC1-N9K-BORDER01"}, DualHomed: &yes}},
		Access: []spec.Interface{
			{Descr: "lb", IPVLAN: "30", Switch: spec.StringList{"DC1-N9K-LEAF09"}},
			{Descr: "fw", IPVLAN: "vlan30", Switch: spec.StringList{"DC1-N9K-LEAF01"}},
		},
		StpTrunk: []spec.Interface{{Descr: "esx", IPVLAN: "10,x", Switch: spec.StringList{"DC1-N9K-LEAF01"}}},
	}}
	r := Interfaces(svc, sampleInventory)
	for _, want := range []string{"not an IPv4 prefix", "cannot be dual-homed", "DC1-N9K-LEAF09 is not in the fabric", "not a VLAN list", `svc_intf.intf.access "fw": `} {
		if !findingsContain(r, want) {
			t.Errorf("no finding %q in %v", want, r.Findings)
		}
	}
	if len(r.Findings) != 5 {
		t.Errorf("findings = %v, want 5", r.Findings)
	}
}

func TestRouting(t *testing.T) {
	rte := loadSample(t).Routing
	rte.BGP.Groups[0].Peers[0].Switch = spec.StringList{"DC1-N9K-BORDER03"}
	r := Routing(rte, sampleInventory)
	if r.Outcome != Fail || !findingsContain(r, "peer ISP1: switch DC1-N9K-BORDER03") {
		t.Errorf("Routing() = %v %v", r.Outcome, r.Findings)
	}

	rte = loadSample(t).Routing
	rte.Static[0].Routes[0].NextHop = "10.255.99"
	r = Routing(rte, sampleInventory)
	if r.Outcome != Fail || !findingsContain(r, "next_hop 10.255.99 is not an IPv4 address") {
		t.Errorf("Routing() = %v %v", r.Outcome, r.Findings)
	}
}

func TestScope(t *testing.T) {
	d := &model.Device{
		Name: "DC1-N9K-LEAF01",
		Tenants: []model.Tenant{
			{Name: "BLU", VLANs: []model.TenantVLAN{{Num: 10}, {Num: 20}, {Num: 3001, L3VNI: true}}},
		},
		Interfaces: []model.Interface{
			{Name: "Ethernet1/33", Type: spec.IntfAccess, IPVLAN: "20"},
			{Name: "Ethernet1/41", Type: spec.IntfStpTrunk, IPVLAN: "10-12,40"},
			{Name: "Port-channel41", Type: spec.IntfStpTrunk, IPVLAN: "99", Member: "Ethernet1/41"},
			{Name: "Ethernet1/34", Type: spec.IntfLayer3, IPVLAN: "10.1.1.1/30", Tenant: "RED"},
			{Name: "loopback11", Type: spec.IntfLoopback, IPVLAN: "10.9.9.9/32", Tenant: "BLU"},
		},
		Routing: &model.Routing{
			Static: []model.StaticRoute{{VRF: model.GlobalVRF}, {VRF: "GRN"}},
		},
	}

	err := Scope(d)
	if !errors.Is(err, util.ErrLookup) {
		t.Fatalf("Scope() = %v, want lookup error", err)
	}

	found := map[string][]string{}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		t.Fatalf("Scope() = %T, want joined errors", err)
	}
	for _, e := range joined.Unwrap() {
		var le *util.LookupError
		if errors.As(e, &le) {
			if le.Scope != d.Name {
				t.Errorf("scope = %q", le.Scope)
			}
			found[le.Kind] = le.Missing
		}
	}
	if got := strings.Join(found["vlan"], ","); got != "11,12,40" {
		t.Errorf("missing vlans = %s, want 11,12,40", got)
	}
	if got := strings.Join(found["vrf"], ","); got != "GRN,RED" {
		t.Errorf("missing vrfs = %s, want GRN,RED", got)
	}

	d.Interfaces = d.Interfaces[:1]
	d.Routing = nil
	if err := Scope(d); err != nil {
		t.Errorf("Scope() = %v, want nil", err)
	}
}

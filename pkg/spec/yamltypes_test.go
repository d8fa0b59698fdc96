package spec

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want StringList
	}{
		{"v: LEAF01", StringList{"LEAF01"}},
		{"v: [LEAF01, LEAF02]", StringList{"LEAF01", "LEAF02"}},
		{"v: ~", nil},
	}
	for _, tt := range tests {
		var doc struct {
			V StringList `yaml:"v"`
		}
		if err := yaml.Unmarshal([]byte(tt.in), &doc); err != nil {
			t.Errorf("Unmarshal(%q) error = %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(doc.V, tt.want) {
			t.Errorf("Unmarshal(%q) = %v, want %v", tt.in, doc.V, tt.want)
		}
	}

	var bad struct {
		V StringList `yaml:"v"`
	}
	if err := yaml.Unmarshal([]byte("v: {a: b}"), &bad); err == nil {
		t.Error("expected error for mapping")
	}
}

func TestIPVLAN(t *testing.T) {
	var doc struct {
		A IPVLAN `yaml:"a"`
		B IPVLAN `yaml:"b"`
		C IPVLAN `yaml:"c"`
	}
	in := "a: 30\nb: [10, 20-22]\nc: 10.1.1.1/30\n"
	if err := yaml.Unmarshal([]byte(in), &doc); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if n, err := doc.A.VLAN(); err != nil || n != 30 {
		t.Errorf("VLAN() = %d, %v, want 30", n, err)
	}
	vlans, err := doc.B.VLANs()
	if err != nil || !reflect.DeepEqual(vlans, []int{10, 20, 21, 22}) {
		t.Errorf("VLANs() = %v, %v", vlans, err)
	}
	if _, err := doc.C.VLAN(); err == nil {
		t.Error("expected error reading an IP as a VLAN")
	}
}

func TestNamedLoopback(t *testing.T) {
	var lp NamedLoopback
	if err := yaml.Unmarshal([]byte("loopback1: LP > RID"), &lp); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if lp.Name != "loopback1" || lp.Descr != "LP > RID" {
		t.Errorf("got %+v", lp)
	}
	if err := yaml.Unmarshal([]byte("{lo1: a, lo2: b}"), &lp); err == nil {
		t.Error("expected error for two keys")
	}
}

func TestPrefixSet(t *testing.T) {
	tests := []struct {
		in        string
		wantKinds []string
		wantPfx   []string
	}{
		{"any", []string{"any"}, nil},
		{"default", []string{"default"}, nil},
		{"[10.0.0.0/8, 172.16.0.0/12]", []string{"list"}, []string{"10.0.0.0/8", "172.16.0.0/12"}},
		{"[10.0.0.0/8, Any]", []string{"list", "any"}, []string{"10.0.0.0/8"}},
		{"[default, any]", []string{"default", "any"}, nil},
	}
	for _, tt := range tests {
		var set PrefixSet
		if err := yaml.Unmarshal([]byte(tt.in), &set); err != nil {
			t.Errorf("Unmarshal(%q) error = %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(set.Kinds(), tt.wantKinds) {
			t.Errorf("Unmarshal(%q).Kinds() = %v, want %v", tt.in, set.Kinds(), tt.wantKinds)
		}
		if !reflect.DeepEqual(set.Prefixes, tt.wantPfx) {
			t.Errorf("Unmarshal(%q).Prefixes = %v, want %v", tt.in, set.Prefixes, tt.wantPfx)
		}
	}
	if !(PrefixSet{}).IsZero() {
		t.Error("zero PrefixSet not IsZero")
	}
}

func TestAttrMapKeepsOrder(t *testing.T) {
	var m AttrMap
	in := "300: any\n100: [10.1.0.0/16]\n200: default\n"
	if err := yaml.Unmarshal([]byte(in), &m); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	var values []string
	for _, e := range m {
		values = append(values, e.Value)
	}
	if !reflect.DeepEqual(values, []string{"300", "100", "200"}) {
		t.Errorf("order = %v", values)
	}
	if !m[0].Prefixes.Any || !m[2].Prefixes.Default {
		t.Errorf("tokens not classified: %+v", m)
	}
}

func TestResolverExpandPrefixSet(t *testing.T) {
	r := NewResolver(map[string][]string{"rfc1918": {"10.0.0.0/8", "172.16.0.0/12"}})

	got, missing := r.ExpandPrefixSet(NewPrefixSet("@rfc1918", "192.168.0.0/16", "@nope"))
	if !reflect.DeepEqual(got.Prefixes, []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}) {
		t.Errorf("Prefixes = %v", got.Prefixes)
	}
	if !reflect.DeepEqual(missing, []string{"nope"}) {
		t.Errorf("missing = %v", missing)
	}

	got, missing = r.ExpandPrefixSet(NewPrefixSet("any"))
	if !got.Any || missing != nil {
		t.Errorf("token set changed: %+v %v", got, missing)
	}
}

func TestRoutingAdvDefaults(t *testing.T) {
	adv := RoutingAdv{BGPNaming: BGPNaming{RouteMap: "RMAP_{name}"}}.WithDefaults()
	if adv.BGPNaming.RouteMap != "RMAP_{name}" {
		t.Errorf("override lost: %q", adv.BGPNaming.RouteMap)
	}
	if adv.BGPNaming.Deny != "PL_{name}_{dir}_DENY" {
		t.Errorf("deny template = %q", adv.BGPNaming.Deny)
	}
	if adv.DefaultPL.AllowAny != "PL_ALLOW_ANY" {
		t.Errorf("allow any = %q", adv.DefaultPL.AllowAny)
	}
}

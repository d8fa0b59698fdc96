package util

import (
	"reflect"
	"testing"
)

func TestInterfaceNamesExpand(t *testing.T) {
	names := NewInterfaceNames(map[string]string{
		"Eth1/": "Ethernet1/",
		"Po":    "Port-channel",
		"lo":    "loopback",
	})

	tests := []struct {
		in   string
		want string
	}{
		{"eth1/5", "Ethernet1/5"},
		{"Eth1/33", "Ethernet1/33"},
		{"Ethernet1/5", "Ethernet1/5"},
		{"ethernet1/5", "Ethernet1/5"},
		{"po10", "Port-channel10"},
		{"Port-channel10", "Port-channel10"},
		{"lo3", "loopback3"},
		{"loopback3", "loopback3"},
		{"vlan10", "Vlan10"},
		{"vl10", "Vlan10"},
		{"Vlan10", "Vlan10"},
		{" eth1/7 ", "Ethernet1/7"},
		{"tunnel1", "tunnel1"},
		{"po", "po"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := names.Expand(tt.in); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInterfaceNamesExpandAll(t *testing.T) {
	names := NewInterfaceNames(map[string]string{"Eth1/": "Ethernet1/"})
	got := names.ExpandAll([]string{"eth1/1", "vlan20"})
	want := []string{"Ethernet1/1", "Vlan20"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandAll = %v, want %v", got, want)
	}
}

package alloc

import (
	"net/netip"
	"testing"
)

func TestDeviceName(t *testing.T) {
	tests := []struct {
		prefix  string
		ordinal int
		want    string
		wantErr bool
	}{
		{"DC1-N9K-LEAF", 1, "DC1-N9K-LEAF01", false},
		{"DC1-N9K-SPINE", 12, "DC1-N9K-SPINE12", false},
		{"DC1-N9K-BORDER", 99, "DC1-N9K-BORDER99", false},
		{"DC1-N9K-LEAF", 0, "", true},
		{"DC1-N9K-LEAF", 100, "", true},
	}

	for _, tt := range tests {
		got, err := DeviceName(tt.prefix, tt.ordinal)
		if (err != nil) != tt.wantErr {
			t.Errorf("DeviceName(%q, %d) error = %v, wantErr %v", tt.prefix, tt.ordinal, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("DeviceName(%q, %d) = %q, want %q", tt.prefix, tt.ordinal, got, tt.want)
		}
	}
}

func TestOrdinalRoundTrip(t *testing.T) {
	for ordinal := 1; ordinal <= MaxOrdinal; ordinal++ {
		name, err := DeviceName("DC1-N9K-LEAF", ordinal)
		if err != nil {
			t.Fatalf("DeviceName(%d): %v", ordinal, err)
		}
		got, err := Ordinal(name)
		if err != nil || got != ordinal {
			t.Fatalf("Ordinal(%q) = %d, %v, want %d", name, got, err, ordinal)
		}
	}

	if _, err := Ordinal("LEAFX"); err == nil {
		t.Error("Ordinal(LEAFX) should fail")
	}
	if _, err := Ordinal("1"); err == nil {
		t.Error("Ordinal(1) should fail")
	}
}

func TestRoleGroup(t *testing.T) {
	tests := map[string]string{
		"DC1-N9K-SPINE":  "spine",
		"DC1-N9K-BORDER": "border",
		"LEAF":           "leaf",
	}
	for prefix, want := range tests {
		if got := RoleGroup(prefix); got != want {
			t.Errorf("RoleGroup(%q) = %q, want %q", prefix, got, want)
		}
	}
}

func TestPeerName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"DC1-N9K-LEAF01", "DC1-N9K-LEAF02"},
		{"DC1-N9K-LEAF02", "DC1-N9K-LEAF01"},
		{"DC1-N9K-BORDER03", "DC1-N9K-BORDER04"},
		{"DC1-N9K-BORDER10", "DC1-N9K-BORDER09"},
	}
	for _, tt := range tests {
		got, err := PeerName(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("PeerName(%q) = %q, %v, want %q", tt.name, got, err, tt.want)
		}
	}
}

func TestPairIndex(t *testing.T) {
	want := []int{0, 1, 1, 2, 2, 3, 3}
	for ordinal := 1; ordinal < len(want); ordinal++ {
		if got := PairIndex(ordinal); got != want[ordinal] {
			t.Errorf("PairIndex(%d) = %d, want %d", ordinal, got, want[ordinal])
		}
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		pool      string
		increment int
		ordinal   int
		want      string
		wantErr   bool
	}{
		{"192.168.101.0/32", 11, 1, "192.168.101.11/32", false},
		{"192.168.101.0/32", 21, 4, "192.168.101.24/32", false},
		{"10.10.108.0/24", 16, 2, "10.10.108.17/24", false},
		{"10.10.108.0/28", 16, 1, "", true},
	}

	for _, tt := range tests {
		got, err := Address(netip.MustParsePrefix(tt.pool), tt.increment, tt.ordinal)
		if (err != nil) != tt.wantErr {
			t.Errorf("Address(%s, %d, %d) error = %v, wantErr %v", tt.pool, tt.increment, tt.ordinal, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got.String() != tt.want {
			t.Errorf("Address(%s, %d, %d) = %s, want %s", tt.pool, tt.increment, tt.ordinal, got, tt.want)
		}
	}
}

func TestHostAddress(t *testing.T) {
	got, err := HostAddress(netip.MustParsePrefix("10.255.255.0/28"), 3)
	if err != nil || got.String() != "10.255.255.3" {
		t.Errorf("HostAddress = %s, %v, want 10.255.255.3", got, err)
	}
	if _, err := HostAddress(netip.MustParsePrefix("10.255.255.0/28"), 16); err == nil {
		t.Error("HostAddress past the pool should fail")
	}
}

package model

// Tenant is a tenant as created on one device role.
type Tenant struct {
	Name         string       `json:"tnt_name" yaml:"tnt_name"`
	L3           bool         `json:"l3_tnt" yaml:"l3_tnt"`
	L3VNI        int          `json:"l3vni" yaml:"l3vni"`
	TntVLAN      int          `json:"tnt_vlan" yaml:"tnt_vlan"`
	Redist       bool         `json:"tnt_redist" yaml:"tnt_redist"`
	BGPRedistTag int          `json:"bgp_redist_tag" yaml:"bgp_redist_tag"`
	RMName       string       `json:"rm_name,omitempty" yaml:"rm_name,omitempty"`
	VLANs        []TenantVLAN `json:"vlans" yaml:"vlans"`
}

// L3VNIAddr marks the synthetic L3VNI VLAN in place of an address.
const L3VNIAddr = "l3_vni"

// TenantVLAN is a VLAN with its derived VNI. The synthetic L3VNI VLAN has
// L3VNI set.
type TenantVLAN struct {
	Num    int    `json:"num" yaml:"num"`
	Name   string `json:"name" yaml:"name"`
	VNI    int    `json:"vni" yaml:"vni"`
	IPAddr string `json:"ip_addr,omitempty" yaml:"ip_addr,omitempty"`
	Redist bool   `json:"ipv4_bgp_redist" yaml:"ipv4_bgp_redist"`
	L3VNI  bool   `json:"l3vni,omitempty" yaml:"l3vni,omitempty"`
}

// HasVLAN reports whether the tenant carries VLAN num.
func (t *Tenant) HasVLAN(num int) bool {
	for _, v := range t.VLANs {
		if v.Num == num {
			return true
		}
	}
	return false
}

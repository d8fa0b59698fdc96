// Package model defines the resolved per-device fabric data model.
package model

// Device is the fully resolved data model of one switch.
type Device struct {
	Name    string `json:"name" yaml:"name"`
	Role    string `json:"role" yaml:"role"`   // spine, leaf, border
	Group   string `json:"group" yaml:"group"` // lowercased name suffix
	OS      string `json:"os,omitempty" yaml:"os,omitempty"`
	Ordinal int    `json:"ordinal" yaml:"ordinal"`

	MgmtIP     string     `json:"mgmt_ip" yaml:"mgmt_ip"`
	Loopbacks  []Loopback `json:"loopbacks" yaml:"loopbacks"`
	MLAGPeerIP string     `json:"mlag_peer_ip,omitempty" yaml:"mlag_peer_ip,omitempty"`

	FabricLinks []Link `json:"intf_fbc" yaml:"intf_fbc"`
	MLAGLinks   []Link `json:"intf_mlag,omitempty" yaml:"intf_mlag,omitempty"`

	ASN        string `json:"bgp_as" yaml:"bgp_as"`
	OSPFProc   string `json:"ospf_pro" yaml:"ospf_pro"`
	OSPFArea   string `json:"ospf_area" yaml:"ospf_area"`
	AcastGwMAC string `json:"acast_gw_mac,omitempty" yaml:"acast_gw_mac,omitempty"`

	Tenants      []Tenant `json:"tenants,omitempty" yaml:"tenants,omitempty"`
	AllowedVLANs string   `json:"allowed_vlans,omitempty" yaml:"allowed_vlans,omitempty"`

	Interfaces       []Interface `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	UnusedInterfaces []string    `json:"intf_cleanup,omitempty" yaml:"intf_cleanup,omitempty"`

	Routing *Routing `json:"routing,omitempty" yaml:"routing,omitempty"`
}

// Loopback is a loopback interface with its address. MLAGSecondary is the
// address shared by both members of an MLAG pair.
type Loopback struct {
	Name          string `json:"name" yaml:"name"`
	IP            string `json:"ip" yaml:"ip"`
	Descr         string `json:"descr" yaml:"descr"`
	MLAGSecondary string `json:"mlag_lp_addr,omitempty" yaml:"mlag_lp_addr,omitempty"`
}

// Link is a fabric or peer-link interface and its description.
type Link struct {
	Name  string `json:"name" yaml:"name"`
	Descr string `json:"descr" yaml:"descr"`
}

// HasMLAG returns true for leaf and border devices, which carry tenants
// and an MLAG pair.
func (d *Device) HasMLAG() bool {
	return d.Role == "leaf" || d.Role == "border"
}

// Tenant returns the named tenant on this device, or nil.
func (d *Device) Tenant(name string) *Tenant {
	for i := range d.Tenants {
		if d.Tenants[i].Name == name {
			return &d.Tenants[i]
		}
	}
	return nil
}

// LinkNames returns the names of all fabric and peer-link interfaces.
func (d *Device) LinkNames() []string {
	names := make([]string, 0, len(d.FabricLinks)+len(d.MLAGLinks))
	for _, l := range d.FabricLinks {
		names = append(names, l.Name)
	}
	for _, l := range d.MLAGLinks {
		names = append(names, l.Name)
	}
	return names
}

package model

// STP classes derived from the interface type.
const (
	STPEdge    = "edge"
	STPNetwork = "network"
	STPNormal  = "normal"
)

// Interface is a resolved service interface. Port-channels synthesized for
// dual-homed members carry the member in Member and VPC == PONum.
type Interface struct {
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"intf_type" yaml:"intf_type"` // layer3, access, stp_trunk, non_stp_trunk, loopback
	Descr     string `json:"descr" yaml:"descr"`
	IPVLAN    string `json:"ip_vlan" yaml:"ip_vlan"`
	STP       string `json:"stp,omitempty" yaml:"stp,omitempty"`
	Tenant    string `json:"tenant,omitempty" yaml:"tenant,omitempty"`
	DualHomed bool   `json:"dual_homed" yaml:"dual_homed"`
	PONum     int    `json:"po_num,omitempty" yaml:"po_num,omitempty"`
	POMode    string `json:"po_mode,omitempty" yaml:"po_mode,omitempty"`
	VPC       int    `json:"vpc_num,omitempty" yaml:"vpc_num,omitempty"`
	Member    string `json:"member,omitempty" yaml:"member,omitempty"`
}

// IsPortChannel returns true for a synthesized port-channel
func (i *Interface) IsPortChannel() bool {
	return i.Member != ""
}

// IsTrunk returns true for both trunk types
func (i *Interface) IsTrunk() bool {
	return i.Type == "stp_trunk" || i.Type == "non_stp_trunk"
}

// IsRouted returns true if the payload is an IP address
func (i *Interface) IsRouted() bool {
	return i.Type == "layer3" || i.Type == "loopback"
}

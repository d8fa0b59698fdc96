package model

// StaticRoute is one static route.
type StaticRoute struct {
	VRF        string `json:"vrf" yaml:"vrf"`
	Prefix     string `json:"prefix" yaml:"prefix"`
	Interface  string `json:"interface,omitempty" yaml:"interface,omitempty"`
	NextHop    string `json:"next_hop,omitempty" yaml:"next_hop,omitempty"`
	NextHopVRF string `json:"next_hop_vrf,omitempty" yaml:"next_hop_vrf,omitempty"`
	AD         int    `json:"ad,omitempty" yaml:"ad,omitempty"`
}

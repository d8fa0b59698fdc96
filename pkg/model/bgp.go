package model

// GlobalVRF is the VRF of objects not bound to a tenant.
const GlobalVRF = "global"

// Routing holds everything the policy synthesizer resolved for one device.
type Routing struct {
	PrefixLists []PrefixListEntry `json:"prefix_lists,omitempty" yaml:"prefix_lists,omitempty"`
	RouteMaps   []RouteMapEntry   `json:"route_maps,omitempty" yaml:"route_maps,omitempty"`
	BGP         []BGPVRF          `json:"bgp,omitempty" yaml:"bgp,omitempty"`
	OSPF        []OSPFProcess     `json:"ospf,omitempty" yaml:"ospf,omitempty"`
	Static      []StaticRoute     `json:"static_route,omitempty" yaml:"static_route,omitempty"`
}

// IsEmpty reports whether nothing was resolved.
func (r *Routing) IsEmpty() bool {
	return r == nil || (len(r.PrefixLists) == 0 && len(r.RouteMaps) == 0 &&
		len(r.BGP) == 0 && len(r.OSPF) == 0 && len(r.Static) == 0)
}

// BGPVRF is the BGP configuration of one VRF.
type BGPVRF struct {
	VRF      string            `json:"vrf" yaml:"vrf"`
	Groups   []BGPGroup        `json:"groups,omitempty" yaml:"groups,omitempty"`
	Networks []string          `json:"network,omitempty" yaml:"network,omitempty"`
	Summary  map[string]string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Redist   []Redist          `json:"redist,omitempty" yaml:"redist,omitempty"`
}

// BGPSession holds the session settings shared by groups and peers.
type BGPSession struct {
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
	RemoteAS         string `json:"remote_as,omitempty" yaml:"remote_as,omitempty"`
	Timers           []int  `json:"timers,omitempty" yaml:"timers,omitempty"`
	BFD              bool   `json:"bfd,omitempty" yaml:"bfd,omitempty"`
	Password         string `json:"password,omitempty" yaml:"password,omitempty"`
	DefaultOriginate bool   `json:"default,omitempty" yaml:"default,omitempty"`
	UpdateSource     string `json:"update_source,omitempty" yaml:"update_source,omitempty"`
	EBGPMultihop     int    `json:"ebgp_multihop,omitempty" yaml:"ebgp_multihop,omitempty"`
	NextHopSelf      bool   `json:"next_hop_self,omitempty" yaml:"next_hop_self,omitempty"`
	InboundRM        string `json:"inbound_rm,omitempty" yaml:"inbound_rm,omitempty"`
	OutboundRM       string `json:"outbound_rm,omitempty" yaml:"outbound_rm,omitempty"`
}

// BGPGroup is a peer group instance inside one VRF.
type BGPGroup struct {
	Name       string `json:"name" yaml:"name"`
	BGPSession `json:",inline" yaml:",inline"`
	Peers      []BGPPeer `json:"peers,omitempty" yaml:"peers,omitempty"`
}

// BGPPeer is a neighbor instance inside one VRF.
type BGPPeer struct {
	Name       string `json:"name" yaml:"name"`
	PeerIP     string `json:"peer_ip" yaml:"peer_ip"`
	BGPSession `json:",inline" yaml:",inline"`
}

// Redist is a redistribution statement and the route-map it applies.
type Redist struct {
	Type     string `json:"type" yaml:"type"`
	RouteMap string `json:"rm_name" yaml:"rm_name"`
}

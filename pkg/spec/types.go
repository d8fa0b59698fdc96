// Package spec defines the declarative fabric input (the vars directory) and
// loads it from YAML.
package spec

// Vars is the complete input of one fabric build.
type Vars struct {
	Base       Base
	Fabric     Fabric
	Tenants    TenantServices
	Interfaces InterfaceServices
	Routing    Routing
}

// ============================================================================
// base.yml
// ============================================================================

// Base holds naming and address pools shared by every device.
type Base struct {
	DeviceName RoleStrings `yaml:"device_name"`
	OS         RoleStrings `yaml:"os,omitempty"`
	Addr       Addr        `yaml:"addr"`
}

// RoleStrings carries one value per device role.
type RoleStrings struct {
	Spine  string `yaml:"spine"`
	Leaf   string `yaml:"leaf"`
	Border string `yaml:"border"`
}

// Get returns the value for role ("spine", "leaf" or "border").
func (r RoleStrings) Get(role string) string {
	switch role {
	case RoleSpine:
		return r.Spine
	case RoleLeaf:
		return r.Leaf
	case RoleBorder:
		return r.Border
	}
	return ""
}

// Device roles.
const (
	RoleSpine  = "spine"
	RoleLeaf   = "leaf"
	RoleBorder = "border"
)

// Roles lists the device roles in build order.
var Roles = []string{RoleSpine, RoleLeaf, RoleBorder}

// Addr holds the address pools. lp_net is a /32 base that loopbacks are
// offset from; the other pools are indexed networks.
type Addr struct {
	LpNet   string `yaml:"lp_net"`
	MgmtNet string `yaml:"mgmt_net"`
	MlagNet string `yaml:"mlag_net"`
}

// Named returns the pools keyed by their YAML names.
func (a Addr) Named() map[string]string {
	return map[string]string{
		"lp_net":   a.LpNet,
		"mgmt_net": a.MgmtNet,
		"mlag_net": a.MlagNet,
	}
}

// ============================================================================
// fabric.yml
// ============================================================================

// Fabric holds sizing, underlay routing and the fabric numbering scheme.
type Fabric struct {
	NetworkSize NetworkSize `yaml:"network_size"`
	NumIntf     RoleStrings `yaml:"num_intf,omitempty"`
	Route       Route       `yaml:"route"`
	AcastGwMAC  string      `yaml:"acast_gw_mac"`
	Adv         FabricAdv   `yaml:"adv"`
}

// NetworkSize is the number of devices per role.
type NetworkSize struct {
	NumSpines  int `yaml:"num_spines"`
	NumLeafs   int `yaml:"num_leafs"`
	NumBorders int `yaml:"num_borders"`
}

// Count returns the device count for role.
func (n NetworkSize) Count(role string) int {
	switch role {
	case RoleSpine:
		return n.NumSpines
	case RoleLeaf:
		return n.NumLeafs
	case RoleBorder:
		return n.NumBorders
	}
	return 0
}

// Route holds the underlay routing settings.
type Route struct {
	OSPF struct {
		Process string `yaml:"pro"`
		Area    string `yaml:"area"`
	} `yaml:"ospf"`
	BGP struct {
		ASN string `yaml:"as_num"`
	} `yaml:"bgp"`
}

// FabricAdv holds the advanced numbering settings.
type FabricAdv struct {
	BaseIntf  BaseIntf      `yaml:"bse_intf"`
	Loopbacks LoopbackNames `yaml:"lp"`
	MLAG      MLAG          `yaml:"mlag"`
	AddrIncre AddrIncre     `yaml:"addr_incre"`
}

// BaseIntf defines interface naming and the fabric link offsets.
type BaseIntf struct {
	IntfFmt   string `yaml:"intf_fmt"`
	IntfShort string `yaml:"intf_short"`
	EcFmt     string `yaml:"ec_fmt"`
	EcShort   string `yaml:"ec_short"`
	LpFmt     string `yaml:"lp_fmt"`
	SpToLf    int    `yaml:"sp_to_lf"`
	SpToBdr   int    `yaml:"sp_to_bdr"`
	LfToSp    int    `yaml:"lf_to_sp"`
	BdrToSp   int    `yaml:"bdr_to_sp"`
	MLAGPeer  string `yaml:"mlag_peer"`
}

// Abbreviations returns the short -> long interface prefixes of the fabric.
func (b BaseIntf) Abbreviations() map[string]string {
	abbr := map[string]string{
		b.IntfShort: b.IntfFmt,
		b.EcShort:   b.EcFmt,
	}
	if b.LpFmt != "" {
		abbr["lo"] = b.LpFmt
	}
	return abbr
}

// LoopbackNames names the router, VTEP and BGW loopbacks.
type LoopbackNames struct {
	Rtr  NamedLoopback `yaml:"rtr"`
	Vtep NamedLoopback `yaml:"vtep"`
	Bgw  NamedLoopback `yaml:"bgw"`
}

// NamedLoopback is a single-entry {interface: description} mapping.
type NamedLoopback struct {
	Name  string
	Descr string
}

// MLAG holds the peer-link settings.
type MLAG struct {
	Domain   int `yaml:"domain"`
	PeerPO   int `yaml:"peer_po"`
	PeerVLAN int `yaml:"peer_vlan"`
}

// AddrIncre holds the per-role offsets into the address pools.
type AddrIncre struct {
	SpineIP      int `yaml:"spine_ip"`
	BorderIP     int `yaml:"border_ip"`
	LeafIP       int `yaml:"leaf_ip"`
	BorderVtepLp int `yaml:"border_vtep_lp"`
	LeafVtepLp   int `yaml:"leaf_vtep_lp"`
	BorderMlagLp int `yaml:"border_mlag_lp"`
	LeafMlagLp   int `yaml:"leaf_mlag_lp"`
	BorderBgwLp  int `yaml:"border_bgw_lp"`
	MlagLeafIP   int `yaml:"mlag_leaf_ip"`
	MlagBorderIP int `yaml:"mlag_border_ip"`
}

// Named returns the increments keyed by their YAML names.
func (a AddrIncre) Named() map[string]int {
	return map[string]int{
		"spine_ip":       a.SpineIP,
		"border_ip":      a.BorderIP,
		"leaf_ip":        a.LeafIP,
		"border_vtep_lp": a.BorderVtepLp,
		"leaf_vtep_lp":   a.LeafVtepLp,
		"border_mlag_lp": a.BorderMlagLp,
		"leaf_mlag_lp":   a.LeafMlagLp,
		"border_bgw_lp":  a.BorderBgwLp,
		"mlag_leaf_ip":   a.MlagLeafIP,
		"mlag_border_ip": a.MlagBorderIP,
	}
}

// ============================================================================
// services_tenant.yml
// ============================================================================

// TenantServices is the svc_tnt document.
type TenantServices struct {
	Tenants []Tenant  `yaml:"tnt"`
	Adv     TenantAdv `yaml:"adv"`
}

// Tenant is one declared tenant (VRF) and its VLANs.
type Tenant struct {
	Name         string `yaml:"tenant_name"`
	L3           bool   `yaml:"l3_tenant"`
	BGPRedistTag *int   `yaml:"bgp_redist_tag,omitempty"`
	VLANs        []VLAN `yaml:"vlans"`
}

// VLAN is a VLAN declared inside a tenant. Nil pointers mean "not set".
type VLAN struct {
	Num            int    `yaml:"num"`
	Name           string `yaml:"name"`
	IPAddr         string `yaml:"ip_addr,omitempty"`
	Redist         *bool  `yaml:"ipv4_bgp_redist,omitempty"`
	CreateOnLeaf   *bool  `yaml:"create_on_leaf,omitempty"`
	CreateOnBorder *bool  `yaml:"create_on_border,omitempty"`
}

// TenantAdv holds the VNI numbering.
type TenantAdv struct {
	BaseVNI  VNIBase `yaml:"bse_vni"`
	VNIIncre VNIBase `yaml:"vni_incre"`
}

// VNIBase is a set of VNI counters (or their increments).
type VNIBase struct {
	TntVLAN int `yaml:"tnt_vlan"`
	L3VNI   int `yaml:"l3vni"`
	L2VNI   int `yaml:"l2vni"`
}

// ============================================================================
// services_interface.yml
// ============================================================================

// InterfaceServices is the svc_intf document.
type InterfaceServices struct {
	Intf Interfaces   `yaml:"intf"`
	Adv  InterfaceAdv `yaml:"adv"`
}

// Interface types.
const (
	IntfLayer3      = "layer3"
	IntfAccess      = "access"
	IntfStpTrunk    = "stp_trunk"
	IntfNonStpTrunk = "non_stp_trunk"
	IntfLoopback    = "loopback"
)

// Interfaces groups declarations by interface type.
type Interfaces struct {
	Layer3      []Interface `yaml:"layer3,omitempty"`
	Access      []Interface `yaml:"access,omitempty"`
	StpTrunk    []Interface `yaml:"stp_trunk,omitempty"`
	NonStpTrunk []Interface `yaml:"non_stp_trunk,omitempty"`
	Loopback    []Interface `yaml:"loopback,omitempty"`
}

// TypedInterfaces is one type's declarations.
type TypedInterfaces struct {
	Type       string
	Interfaces []Interface
}

// ByType returns the declarations in a fixed type order so allocation is
// deterministic.
func (i Interfaces) ByType() []TypedInterfaces {
	return []TypedInterfaces{
		{IntfLayer3, i.Layer3},
		{IntfAccess, i.Access},
		{IntfStpTrunk, i.StpTrunk},
		{IntfNonStpTrunk, i.NonStpTrunk},
		{IntfLoopback, i.Loopback},
	}
}

// Interface is one declared service interface.
type Interface struct {
	Descr     string     `yaml:"descr"`
	IPVLAN    IPVLAN     `yaml:"ip_vlan"`
	Switch    StringList `yaml:"switch"`
	Tenant    string     `yaml:"tenant,omitempty"`
	DualHomed *bool      `yaml:"dual_homed,omitempty"`
	IntfNum   *int       `yaml:"intf_num,omitempty"`
	PONum     *int       `yaml:"po_num,omitempty"`
	POMode    string     `yaml:"po_mode,omitempty"`
}

// InterfaceAdv holds the reserved auto-assignment ranges.
type InterfaceAdv struct {
	SingleHomed HomingRange `yaml:"single_homed"`
	DualHomed   HomingRange `yaml:"dual_homed"`
}

// HomingRange is the set of ranges one homing class allocates from.
type HomingRange struct {
	FirstIntf int `yaml:"first_intf"`
	LastIntf  int `yaml:"last_intf"`
	FirstLp   int `yaml:"first_lp,omitempty"`
	LastLp    int `yaml:"last_lp,omitempty"`
	FirstPO   int `yaml:"first_po,omitempty"`
	LastPO    int `yaml:"last_po,omitempty"`
}

// ============================================================================
// services_routing.yml
// ============================================================================

// Routing is the svc_rte document.
type Routing struct {
	BGP    BGP           `yaml:"bgp,omitempty"`
	OSPF   []OSPFProcess `yaml:"ospf,omitempty"`
	Static []StaticGroup `yaml:"static_route,omitempty"`
	Adv    RoutingAdv    `yaml:"adv,omitempty"`
}

// BGP holds peer groups and per-tenant BGP settings.
type BGP struct {
	Groups  []BGPGroup  `yaml:"group,omitempty"`
	Tenants []BGPTenant `yaml:"tenant,omitempty"`
}

// BGPSession holds settings shared by groups and peers.
type BGPSession struct {
	Description      string     `yaml:"description,omitempty"`
	RemoteAS         string     `yaml:"remote_as,omitempty"`
	Timers           []int      `yaml:"timers,omitempty"`
	BFD              bool       `yaml:"bfd,omitempty"`
	Password         string     `yaml:"password,omitempty"`
	DefaultOriginate bool       `yaml:"default,omitempty"`
	UpdateSource     string     `yaml:"update_source,omitempty"`
	EBGPMultihop     int        `yaml:"ebgp_multihop,omitempty"`
	NextHopSelf      bool       `yaml:"next_hop_self,omitempty"`
	Switch           StringList `yaml:"switch,omitempty"`
	Tenant           StringList `yaml:"tenant,omitempty"`
	Inbound          *Filter    `yaml:"inbound,omitempty"`
	Outbound         *Filter    `yaml:"outbound,omitempty"`
}

// BGPGroup is a peer group.
type BGPGroup struct {
	Name       string `yaml:"name"`
	BGPSession `yaml:",inline"`
	Peers      []BGPPeer `yaml:"peer"`
}

// BGPPeer is a single neighbor.
type BGPPeer struct {
	Name       string `yaml:"name"`
	PeerIP     string `yaml:"peer_ip"`
	BGPSession `yaml:",inline"`
}

// Filter is the policy of one direction.
type Filter struct {
	Weight    AttrMap   `yaml:"weight,omitempty"`
	Pref      AttrMap   `yaml:"pref,omitempty"`
	MED       AttrMap   `yaml:"med,omitempty"`
	ASPrepend AttrMap   `yaml:"as_prepend,omitempty"`
	Allow     PrefixSet `yaml:"allow,omitempty"`
	Deny      PrefixSet `yaml:"deny,omitempty"`
}

// BGPTenant holds the BGP settings of one VRF.
type BGPTenant struct {
	Name    string            `yaml:"name"`
	Switch  StringList        `yaml:"switch,omitempty"`
	Network []string          `yaml:"network,omitempty"`
	Summary map[string]string `yaml:"summary,omitempty"`
	Redist  []Redist          `yaml:"redist,omitempty"`
}

// Redist redistributes one source protocol into the enclosing protocol.
// For connected routes Allow lists interfaces, otherwise prefixes.
type Redist struct {
	Type   string     `yaml:"type"`
	Metric AttrMap    `yaml:"metric,omitempty"`
	Allow  PrefixSet  `yaml:"allow,omitempty"`
	Switch StringList `yaml:"switch,omitempty"`
}

// OSPFProcess is one OSPF instance.
type OSPFProcess struct {
	Process     string          `yaml:"process"`
	Tenant      string          `yaml:"tenant,omitempty"`
	RID         string          `yaml:"rid,omitempty"`
	BFD         bool            `yaml:"bfd,omitempty"`
	DefaultOrig string          `yaml:"default_orig,omitempty"`
	Switch      StringList      `yaml:"switch"`
	Interfaces  []OSPFInterface `yaml:"interface,omitempty"`
	Summary     []OSPFSummary   `yaml:"summary,omitempty"`
	Redist      []Redist        `yaml:"redist,omitempty"`
}

// OSPFInterface applies the same settings to a list of interfaces.
type OSPFInterface struct {
	Name           StringList `yaml:"name"`
	Area           string     `yaml:"area"`
	AreaType       string     `yaml:"area_type,omitempty"`
	Cost           int        `yaml:"cost,omitempty"`
	Type           string     `yaml:"type,omitempty"`
	Passive        bool       `yaml:"passive,omitempty"`
	BFD            *bool      `yaml:"bfd,omitempty"`
	Authentication string     `yaml:"authentication,omitempty"`
	Switch         StringList `yaml:"switch,omitempty"`
}

// OSPFSummary is an area range (Area set) or a summary address.
type OSPFSummary struct {
	Prefix StringList `yaml:"prefix"`
	Area   string     `yaml:"area,omitempty"`
	Filter string     `yaml:"filter,omitempty"`
	Switch StringList `yaml:"switch,omitempty"`
}

// StaticGroup is a set of static routes shared by tenants and switches.
type StaticGroup struct {
	Tenant StringList    `yaml:"tenant,omitempty"`
	Switch StringList    `yaml:"switch"`
	Routes []StaticRoute `yaml:"route"`
}

// StaticRoute is one or more prefixes with the same next hop.
type StaticRoute struct {
	Prefix     StringList `yaml:"prefix"`
	Interface  string     `yaml:"interface,omitempty"`
	NextHop    string     `yaml:"next_hop,omitempty"`
	NextHopVRF string     `yaml:"next_hop_vrf,omitempty"`
	AD         int        `yaml:"ad,omitempty"`
	Switch     StringList `yaml:"switch,omitempty"`
}

// RoutingAdv holds policy naming and named prefix lists.
type RoutingAdv struct {
	DefaultPL    DefaultPL           `yaml:"dflt_pl,omitempty"`
	BGPNaming    BGPNaming           `yaml:"bgp_naming,omitempty"`
	RedistNaming RedistNaming        `yaml:"redist_naming,omitempty"`
	PrefixLists  map[string][]string `yaml:"prefix_lists,omitempty"`
}

// DefaultPL names the pre-existing catch-all prefix lists.
type DefaultPL struct {
	AllowAny string `yaml:"allow_any,omitempty"`
	Default  string `yaml:"default,omitempty"`
	DenyAny  string `yaml:"deny_any,omitempty"`
}

// BGPNaming holds name templates for BGP policy. Placeholders: {name} (group
// or peer), {dir} (IN or OUT) and {val} (attribute value).
type BGPNaming struct {
	RouteMap  string `yaml:"rm,omitempty"`
	Allow     string `yaml:"pl_allow,omitempty"`
	Deny      string `yaml:"pl_deny,omitempty"`
	Weight    string `yaml:"pl_weight,omitempty"`
	Pref      string `yaml:"pl_pref,omitempty"`
	MED       string `yaml:"pl_med,omitempty"`
	ASPrepend string `yaml:"pl_as_prepend,omitempty"`
}

// RedistNaming holds name templates for redistribution. Placeholders: {src},
// {dst} and {val}.
type RedistNaming struct {
	RouteMap     string `yaml:"rm_name,omitempty"`
	PrefixList   string `yaml:"pl_name,omitempty"`
	MetricPrefix string `yaml:"pl_metric_name,omitempty"`
}

// WithDefaults fills every unset template and default list name.
func (a RoutingAdv) WithDefaults() RoutingAdv {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	def(&a.DefaultPL.AllowAny, "PL_ALLOW_ANY")
	def(&a.DefaultPL.Default, "PL_DEFAULT")
	def(&a.DefaultPL.DenyAny, "PL_DENY_ALL")

	def(&a.BGPNaming.RouteMap, "RM_{name}_{dir}")
	def(&a.BGPNaming.Allow, "PL_{name}_{dir}")
	def(&a.BGPNaming.Deny, "PL_{name}_{dir}_DENY")
	def(&a.BGPNaming.Weight, "PL_{name}_WGHT{val}_{dir}")
	def(&a.BGPNaming.Pref, "PL_{name}_PREF{val}_{dir}")
	def(&a.BGPNaming.MED, "PL_{name}_MED{val}_{dir}")
	def(&a.BGPNaming.ASPrepend, "PL_{name}_AS{val}_{dir}")

	def(&a.RedistNaming.RouteMap, "RM_{src}_to_{dst}")
	def(&a.RedistNaming.PrefixList, "PL_{src}_to_{dst}")
	def(&a.RedistNaming.MetricPrefix, "PL_{src}_to_{dst}_M{val}")
	return a
}

package policy

import (
	"strings"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// Protocol tags used in redistribution names.
const (
	ProtoConnected = "connected"
	ProtoBGP       = "bgp"
	ProtoOSPF      = "ospf"
	ProtoStatic    = "static"
)

// Directions.
const (
	DirIn  = "IN"
	DirOut = "OUT"
)

// NormalizeProto turns a protocol tag into its name form: underscores and
// spaces stripped, uppercased, "connected" shortened to CONN. BGP is suffixed
// with the VRF so per-VRF maps do not collide.
//
//	NormalizeProto("ospf_99", "BLU")   -> "OSPF99"
//	NormalizeProto("connected", "BLU") -> "CONN"
//	NormalizeProto("bgp", "BLU")       -> "BGPBLU"
func NormalizeProto(tag, vrf string) string {
	n := strip(tag)
	if n == "CONNECTED" {
		return "CONN"
	}
	if strings.HasPrefix(n, "BGP") && vrf != "" && vrf != model.GlobalVRF {
		n += strip(vrf)
	}
	return n
}

func strip(s string) string {
	return strings.ToUpper(strings.NewReplacer("_", "", " ", "").Replace(s))
}

// IsConnected reports whether a redistribution source is connected routes.
func IsConnected(tag string) bool {
	return NormalizeProto(tag, "") == "CONN"
}

// RedistRouteMap returns the route-map name redistributing src into dst.
func RedistRouteMap(naming spec.RedistNaming, src, dst, vrf string) string {
	return util.ExpandTemplate(naming.RouteMap, redistVars(src, dst, vrf, ""))
}

// RedistPrefixList returns the allow prefix-list name of a redistribution.
func RedistPrefixList(naming spec.RedistNaming, src, dst, vrf string) string {
	return util.ExpandTemplate(naming.PrefixList, redistVars(src, dst, vrf, ""))
}

// RedistMetricPrefixList returns the prefix-list name of one metric value.
func RedistMetricPrefixList(naming spec.RedistNaming, src, dst, vrf, val string) string {
	return util.ExpandTemplate(naming.MetricPrefix, redistVars(src, dst, vrf, val))
}

func redistVars(src, dst, vrf, val string) map[string]string {
	return map[string]string{
		"src": NormalizeProto(src, vrf),
		"dst": NormalizeProto(dst, vrf),
		"val": strings.ReplaceAll(val, " ", "_"),
	}
}

// TenantRouteMap returns the connected-to-BGP map of a tenant, the map the
// tenant's tag match and connected interface clauses share.
func TenantRouteMap(naming spec.RedistNaming, tenant string) string {
	return RedistRouteMap(naming, ProtoConnected, ProtoBGP, tenant)
}

// bgpName expands a BGP naming template for one group or peer.
func bgpName(tmpl, name, dir, val string) string {
	return util.ExpandTemplate(tmpl, map[string]string{
		"name": name,
		"dir":  dir,
		"val":  strings.ReplaceAll(val, " ", "_"),
	})
}

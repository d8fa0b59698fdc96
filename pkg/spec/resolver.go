package spec

import (
	"sort"
	"strings"

	"github.com/newtron-network/fabricgen/pkg/util"
)

// Resolver expands references to named prefix lists.
type Resolver struct {
	prefixLists map[string][]string
}

// NewResolver creates a new resolver with the given prefix list map
func NewResolver(prefixLists map[string][]string) *Resolver {
	if prefixLists == nil {
		prefixLists = map[string][]string{}
	}
	return &Resolver{prefixLists: prefixLists}
}

// ExpandPrefixLists expands all prefix list references in a string slice.
// An entry starting with "@" is a reference; unknown references are returned
// in missing and dropped from the result.
func (r *Resolver) ExpandPrefixLists(entries []string) (result, missing []string) {
	for _, entry := range entries {
		if !strings.HasPrefix(entry, "@") {
			result = append(result, entry)
			continue
		}
		listName := entry[1:]
		if list, ok := r.prefixLists[listName]; ok {
			result = append(result, list...)
		} else {
			missing = append(missing, listName)
		}
	}
	return result, missing
}

// ExpandPrefixSet expands references inside a prefix set.
func (r *Resolver) ExpandPrefixSet(set PrefixSet) (PrefixSet, []string) {
	if len(set.Prefixes) == 0 {
		return set, nil
	}
	expanded, missing := r.ExpandPrefixLists(set.Prefixes)
	out := NewPrefixSet(expanded...)
	out.Any = out.Any || set.Any
	out.Default = out.Default || set.Default
	return out, missing
}

// ExpandRouting rewrites every prefix set of the routing document in place.
// It reports all unresolved references at once.
func (r *Resolver) ExpandRouting(rte *Routing) error {
	missing := map[string]bool{}
	expand := func(set *PrefixSet) {
		out, m := r.ExpandPrefixSet(*set)
		*set = out
		for _, name := range m {
			missing[name] = true
		}
	}
	expandAttr := func(m AttrMap) {
		for i := range m {
			expand(&m[i].Prefixes)
		}
	}
	expandFilter := func(f *Filter) {
		if f == nil {
			return
		}
		expandAttr(f.Weight)
		expandAttr(f.Pref)
		expandAttr(f.MED)
		expandAttr(f.ASPrepend)
		expand(&f.Allow)
		expand(&f.Deny)
	}
	expandRedist := func(rs []Redist) {
		for i := range rs {
			expandAttr(rs[i].Metric)
			if !strings.EqualFold(rs[i].Type, "connected") {
				expand(&rs[i].Allow)
			}
		}
	}

	for gi := range rte.BGP.Groups {
		g := &rte.BGP.Groups[gi]
		expandFilter(g.Inbound)
		expandFilter(g.Outbound)
		for pi := range g.Peers {
			expandFilter(g.Peers[pi].Inbound)
			expandFilter(g.Peers[pi].Outbound)
		}
	}
	for ti := range rte.BGP.Tenants {
		expandRedist(rte.BGP.Tenants[ti].Redist)
	}
	for oi := range rte.OSPF {
		expandRedist(rte.OSPF[oi].Redist)
	}

	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return util.NewLookupError("prefix-list", "svc_rte.adv.prefix_lists", names...)
}

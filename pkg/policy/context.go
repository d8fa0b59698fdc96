// Package policy synthesizes the prefix-lists and route-maps of one device
// from the routing declarations: BGP group and peer filters, redistribution
// between protocols, OSPF processes and static routes.
package policy

import (
	"errors"
	"sort"

	"github.com/samber/lo"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/spec"
	"github.com/newtron-network/fabricgen/pkg/util"
)

// Context accumulates the policy of one device. It is not safe for
// concurrent use; every device gets its own.
type Context struct {
	adv   spec.RoutingAdv
	names *util.InterfaceNames

	prefixLists map[model.PrefixListEntry]struct{}
	routeMaps   map[model.RouteMapEntry]struct{}
	defaults    map[string]bool
	errs        []error
}

// NewContext returns an empty accumulator. Interface names in policy are
// expanded with names; a nil names leaves them as declared.
func NewContext(adv spec.RoutingAdv, names *util.InterfaceNames) *Context {
	if names == nil {
		names = util.NewInterfaceNames(nil)
	}
	return &Context{
		adv:         adv.WithDefaults(),
		names:       names,
		prefixLists: map[model.PrefixListEntry]struct{}{},
		routeMaps:   map[model.RouteMapEntry]struct{}{},
		defaults:    map[string]bool{},
	}
}

// PrefixLists returns every prefix-list entry, pre-named lists included,
// deduplicated and sorted.
func (c *Context) PrefixLists() []model.PrefixListEntry {
	all := lo.Keys(c.prefixLists)
	for _, d := range c.defaultLists() {
		if c.defaults[d.Name] {
			all = append(all, d)
		}
	}
	if len(all) == 0 {
		return nil
	}
	all = lo.Uniq(all)
	sort.Slice(all, func(i, j int) bool { return model.LessPrefixList(all[i], all[j]) })
	return all
}

// RouteMaps returns every route-map clause, deduplicated and sorted.
func (c *Context) RouteMaps() []model.RouteMapEntry {
	if len(c.routeMaps) == 0 {
		return nil
	}
	all := lo.Keys(c.routeMaps)
	sort.Slice(all, func(i, j int) bool { return model.LessRouteMap(all[i], all[j]) })
	return all
}

// Err joins every error recorded while synthesizing.
func (c *Context) Err() error {
	return errors.Join(c.errs...)
}

// defaultLists are the pre-named catch-all lists. They are only emitted
// once a clause references them.
func (c *Context) defaultLists() []model.PrefixListEntry {
	d := c.adv.DefaultPL
	return []model.PrefixListEntry{
		{Name: d.AllowAny, Seq: model.PrefixListStep, Action: model.Permit, Prefix: model.PrefixAny},
		{Name: d.Default, Seq: model.PrefixListStep, Action: model.Permit, Prefix: model.PrefixDefault},
		{Name: d.DenyAny, Seq: model.PrefixListStep, Action: model.Permit, Prefix: model.PrefixAny},
	}
}

// prefixList adds one list. Sequence numbers restart for every list so the
// same list built twice collapses into one.
func (c *Context) prefixList(name string, set spec.PrefixSet) {
	for i, p := range prefixes(set) {
		c.prefixLists[model.PrefixListEntry{
			Name:   name,
			Seq:    (i + 1) * model.PrefixListStep,
			Action: model.Permit,
			Prefix: p,
		}] = struct{}{}
	}
}

func (c *Context) clause(e model.RouteMapEntry) {
	c.routeMaps[e] = struct{}{}
}

// useDefault marks a pre-named list as referenced and returns its name.
func (c *Context) useDefault(name string) string {
	c.defaults[name] = true
	return name
}

// prefixes turns a set into prefix-list payloads: the wildcards first, then
// the literal prefixes.
func prefixes(set spec.PrefixSet) []string {
	var out []string
	if set.Any {
		out = append(out, model.PrefixAny)
	}
	if set.Default {
		out = append(out, model.PrefixDefault)
	}
	return append(out, set.Prefixes...)
}

// cursor is a route-map sequence cursor. It only moves when a clause is
// emitted.
type cursor struct {
	seq model.Seq
}

func startAt(seq model.Seq) *cursor { return &cursor{seq: seq} }

func (c *cursor) next() int {
	c.seq += model.RouteMapStep
	return int(c.seq)
}

// emitted reports whether any clause moved the cursor past start.
func (c *cursor) emitted(start model.Seq) bool {
	return c.seq > start
}

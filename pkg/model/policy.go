package model

import (
	"strings"

	"github.com/maruel/natural"
)

// Actions of prefix-list and route-map entries.
const (
	Permit = "permit"
	Deny   = "deny"
)

// Wildcard prefixes.
const (
	PrefixAny     = "0.0.0.0/0 le 32"
	PrefixDefault = "0.0.0.0/0"
)

// Sequence steps.
const (
	PrefixListStep = 5
	RouteMapStep   = 10
)

// Seq is a route-map sequence number.
type Seq int

// Reserved route-map slots of the connected-to-BGP redistribution map. The
// tenant tag match owns SeqTagMatch; the connected interface list owns
// SeqConnectedInterfaces. Any other clause of that map starts at
// SeqFirstFree.
const (
	SeqTagMatch            Seq = 10
	SeqConnectedInterfaces Seq = 20
	SeqFirstFree           Seq = 30
)

// Match kinds of a route-map clause.
const (
	MatchNone       = ""
	MatchPrefixList = "prefix-list"
	MatchInterface  = "interface"
	MatchTag        = "tag"
)

// PrefixListEntry is one prefix-list line. It is comparable so identical
// entries instantiated for several peers collapse.
type PrefixListEntry struct {
	Name   string `json:"name" yaml:"name"`
	Seq    int    `json:"seq" yaml:"seq"`
	Action string `json:"action" yaml:"action"`
	Prefix string `json:"prefix" yaml:"prefix"`
}

// RouteMapEntry is one route-map clause. Match holds a prefix-list name, a
// tag, or a space separated interface list depending on MatchKind.
type RouteMapEntry struct {
	Name      string `json:"name" yaml:"name"`
	Seq       int    `json:"seq" yaml:"seq"`
	Action    string `json:"action" yaml:"action"`
	MatchKind string `json:"match_kind,omitempty" yaml:"match_kind,omitempty"`
	Match     string `json:"match,omitempty" yaml:"match,omitempty"`
	SetAttr   string `json:"set_attr,omitempty" yaml:"set_attr,omitempty"`
	SetValue  string `json:"set_value,omitempty" yaml:"set_value,omitempty"`
}

// MatchInterfaces splits an interface match back into names.
func (e RouteMapEntry) MatchInterfaces() []string {
	if e.MatchKind != MatchInterface {
		return nil
	}
	return strings.Fields(e.Match)
}

// LessPrefixList orders entries by list name then sequence.
func LessPrefixList(a, b PrefixListEntry) bool {
	if a.Name != b.Name {
		return natural.Less(a.Name, b.Name)
	}
	if a.Seq != b.Seq {
		return a.Seq < b.Seq
	}
	if a.Action != b.Action {
		return a.Action < b.Action
	}
	return a.Prefix < b.Prefix
}

// LessRouteMap orders clauses by map name then sequence.
func LessRouteMap(a, b RouteMapEntry) bool {
	if a.Name != b.Name {
		return natural.Less(a.Name, b.Name)
	}
	if a.Seq != b.Seq {
		return a.Seq < b.Seq
	}
	if a.Match != b.Match {
		return a.Match < b.Match
	}
	if a.SetAttr != b.SetAttr {
		return a.SetAttr < b.SetAttr
	}
	return a.SetValue < b.SetValue
}

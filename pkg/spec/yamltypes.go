package spec

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/fabricgen/pkg/util"
)

// Prefix-set tokens.
const (
	TokenAny     = "any"
	TokenDefault = "default"
)

// StringList accepts either a scalar or a sequence of scalars.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*s = nil
			return nil
		}
		*s = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*s = items
		return nil
	}
	return fmt.Errorf("line %d: expected string or list of strings", value.Line)
}

// Contains reports whether v is in the list.
func (s StringList) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// IPVLAN is the payload of a service interface: an IP prefix for layer3 and
// loopback interfaces, a VLAN for access ports, and a VLAN list for trunks.
// Sequences are joined with commas.
type IPVLAN string

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *IPVLAN) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = IPVLAN(value.Value)
		return nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(value.Content))
		for _, n := range value.Content {
			if n.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: ip_vlan list items must be scalars", n.Line)
			}
			parts = append(parts, n.Value)
		}
		*p = IPVLAN(strings.Join(parts, ","))
		return nil
	}
	return fmt.Errorf("line %d: ip_vlan must be a scalar or a list", value.Line)
}

// VLAN returns the payload as a single VLAN number.
func (p IPVLAN) VLAN() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(p)))
	if err != nil {
		return 0, util.NewMalformedError("ip_vlan", string(p), "not a VLAN number")
	}
	return n, nil
}

// VLANs expands the payload as a VLAN list ("10,20-22").
func (p IPVLAN) VLANs() ([]int, error) {
	return util.ExpandVLANRange(string(p))
}

// NamedLoopback is decoded from a single-key mapping {lo1: "description"}.
func (n *NamedLoopback) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: loopback must be a single {name: description} mapping", value.Line)
	}
	n.Name = value.Content[0].Value
	n.Descr = value.Content[1].Value
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n NamedLoopback) MarshalYAML() (interface{}, error) {
	return map[string]string{n.Name: n.Descr}, nil
}

// PrefixSet is a filter value: the tokens "any" and "default", literal
// prefixes, or "@name" references to named lists. A scalar is a one-element
// set.
type PrefixSet struct {
	Any      bool
	Default  bool
	Prefixes []string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PrefixSet) UnmarshalYAML(value *yaml.Node) error {
	var items StringList
	if err := items.UnmarshalYAML(value); err != nil {
		return err
	}
	*p = NewPrefixSet(items...)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p PrefixSet) MarshalYAML() (interface{}, error) {
	return p.Items(), nil
}

// NewPrefixSet classifies items into tokens and prefixes.
func NewPrefixSet(items ...string) PrefixSet {
	var p PrefixSet
	for _, item := range items {
		item = strings.TrimSpace(item)
		switch strings.ToLower(item) {
		case TokenAny:
			p.Any = true
		case TokenDefault:
			p.Default = true
		case "":
		default:
			p.Prefixes = append(p.Prefixes, item)
		}
	}
	return p
}

// Items returns the set back in its declared form.
func (p PrefixSet) Items() []string {
	var out []string
	if p.Any {
		out = append(out, TokenAny)
	}
	if p.Default {
		out = append(out, TokenDefault)
	}
	return append(out, p.Prefixes...)
}

// IsZero reports whether nothing is set.
func (p PrefixSet) IsZero() bool {
	return !p.Any && !p.Default && len(p.Prefixes) == 0
}

// Kinds names every form present ("list", "default", "any").
func (p PrefixSet) Kinds() []string {
	var kinds []string
	if len(p.Prefixes) > 0 {
		kinds = append(kinds, "list")
	}
	if p.Default {
		kinds = append(kinds, TokenDefault)
	}
	if p.Any {
		kinds = append(kinds, TokenAny)
	}
	return kinds
}

// AttrEntry is one attribute value and the routes it applies to.
type AttrEntry struct {
	Value    string
	Prefixes PrefixSet
}

// AttrMap is an attribute mapping {value: prefix-set} kept in declared order.
type AttrMap []AttrEntry

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *AttrMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a {value: prefixes} mapping", value.Line)
	}
	out := make(AttrMap, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var set PrefixSet
		if err := set.UnmarshalYAML(value.Content[i+1]); err != nil {
			return err
		}
		out = append(out, AttrEntry{Value: value.Content[i].Value, Prefixes: set})
	}
	*m = out
	return nil
}

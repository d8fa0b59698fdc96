package util

import (
	"sort"
	"strings"
)

// DefaultInterfaceAbbrevs are always understood on top of the fabric's own
// short forms.
var DefaultInterfaceAbbrevs = map[string]string{
	"vlan": "Vlan",
	"vl":   "Vlan",
	"mgmt": "mgmt",
}

// InterfaceNames expands abbreviated interface names (eth1/5, po10, lo3) to
// the long form used as keys in the generated model.
type InterfaceNames struct {
	long    map[string]string // lowercased abbreviation -> long prefix
	abbrevs []string          // longest first so "vlan" wins over "vl"
	canon   []string          // long prefixes, longest first
}

// NewInterfaceNames builds an expander from short -> long prefix pairs.
// DefaultInterfaceAbbrevs are merged underneath the supplied pairs.
func NewInterfaceNames(shortToLong map[string]string) *InterfaceNames {
	n := &InterfaceNames{long: map[string]string{}}
	for short, long := range DefaultInterfaceAbbrevs {
		n.long[strings.ToLower(short)] = long
	}
	for short, long := range shortToLong {
		if short == "" || long == "" {
			continue
		}
		n.long[strings.ToLower(short)] = long
	}

	seen := map[string]bool{}
	for abbr, long := range n.long {
		n.abbrevs = append(n.abbrevs, abbr)
		if !seen[long] {
			seen[long] = true
			n.canon = append(n.canon, long)
		}
	}
	byLength := func(s []string) {
		sort.Slice(s, func(i, j int) bool {
			if len(s[i]) != len(s[j]) {
				return len(s[i]) > len(s[j])
			}
			return s[i] < s[j]
		})
	}
	byLength(n.abbrevs)
	byLength(n.canon)
	return n
}

// Expand returns the long form of name. Names already in long form are
// returned with the canonical prefix casing; unknown names are returned as-is.
func (n *InterfaceNames) Expand(name string) string {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)

	for _, long := range n.canon {
		if strings.HasPrefix(lower, strings.ToLower(long)) && startsWithDigit(name[len(long):]) {
			return long + name[len(long):]
		}
	}
	for _, abbr := range n.abbrevs {
		if strings.HasPrefix(lower, abbr) && startsWithDigit(name[len(abbr):]) {
			return n.long[abbr] + name[len(abbr):]
		}
	}
	return name
}

// ExpandAll expands every name in names.
func (n *InterfaceNames) ExpandAll(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = n.Expand(name)
	}
	return out
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

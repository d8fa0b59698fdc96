package util

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// VLAN ID bounds accepted on trunk and access ports.
const (
	MinVLANID = 1
	MaxVLANID = 4094
)

// ExpandRange expands switch range notation into sorted, unique values:
// "1-3,5,7-9" -> [1 2 3 5 7 8 9]. Spaces around tokens are ignored.
func ExpandRange(s string) ([]int, error) {
	var out []int
	for _, tok := range SplitCommaSeparated(s) {
		first, last, err := parseSpan(tok)
		if err != nil {
			return nil, err
		}
		for v := first; v <= last; v++ {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// parseSpan parses "first-last" or a single number.
func parseSpan(tok string) (first, last int, err error) {
	a, b, isSpan := strings.Cut(tok, "-")
	if first, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", tok)
	}
	if !isSpan {
		return first, first, nil
	}
	if last, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", tok)
	}
	if first > last {
		return 0, 0, fmt.Errorf("invalid range %q: %d is greater than %d", tok, first, last)
	}
	return first, last, nil
}

// CompactRange is the inverse of ExpandRange: runs of consecutive values
// become "first-last", others stay bare. Order and duplicates in values
// do not matter.
func CompactRange(values []int) string {
	sorted := slices.Compact(slices.Sorted(slices.Values(values)))
	var b strings.Builder
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(sorted[i]))
		if j > i {
			fmt.Fprintf(&b, "-%d", sorted[j])
		}
		i = j + 1
	}
	return b.String()
}

// ValidateVLANID checks a VLAN ID is usable on a switch port.
func ValidateVLANID(vlan int) error {
	if vlan < MinVLANID || vlan > MaxVLANID {
		return fmt.Errorf("VLAN ID must be between %d and %d, got %d", MinVLANID, MaxVLANID, vlan)
	}
	return nil
}

// ExpandVLANRange is ExpandRange restricted to valid VLAN IDs.
func ExpandVLANRange(s string) ([]int, error) {
	vlans, err := ExpandRange(s)
	if err != nil {
		return nil, err
	}
	for _, vlan := range vlans {
		if err := ValidateVLANID(vlan); err != nil {
			return nil, err
		}
	}
	return vlans, nil
}

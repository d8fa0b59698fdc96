// Package alloc derives device identifiers and hands out free values from
// reserved numeric ranges.
package alloc

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/newtron-network/fabricgen/pkg/util"
)

// MaxOrdinal is the highest ordinal a two digit device suffix can carry.
const MaxOrdinal = 99

// DeviceName returns <prefix><NN> for a 1-based ordinal.
func DeviceName(prefix string, ordinal int) (string, error) {
	if ordinal < 1 || ordinal > MaxOrdinal {
		return "", errors.Errorf("ordinal %d for %s outside 1-%d", ordinal, prefix, MaxOrdinal)
	}
	return fmt.Sprintf("%s%02d", prefix, ordinal), nil
}

// Ordinal parses the ordinal back out of a device name.
func Ordinal(name string) (int, error) {
	if len(name) < 2 {
		return 0, errors.Errorf("device name %q has no ordinal suffix", name)
	}
	n, err := strconv.Atoi(name[len(name)-2:])
	if err != nil {
		return 0, errors.Errorf("device name %q does not end in two digits", name)
	}
	return n, nil
}

// RoleGroup returns the lowercased suffix after the last '-' of a device
// name prefix: "DC1-N9K-LEAF" -> "leaf".
func RoleGroup(prefix string) string {
	if i := strings.LastIndex(prefix, "-"); i >= 0 {
		prefix = prefix[i+1:]
	}
	return strings.ToLower(prefix)
}

// IsOdd reports whether ordinal is the first member of an MLAG pair.
func IsOdd(ordinal int) bool {
	return ordinal%2 != 0
}

// PairIndex returns the 1-based index of the MLAG pair an ordinal belongs to.
// Ordinals 1 and 2 are pair 1, 3 and 4 are pair 2.
func PairIndex(ordinal int) int {
	return (ordinal + 1) / 2
}

// PeerName flips the ordinal parity of name to get its MLAG partner.
func PeerName(name string) (string, error) {
	n, err := Ordinal(name)
	if err != nil {
		return "", err
	}
	peer := n + 1
	if !IsOdd(n) {
		peer = n - 1
	}
	return DeviceName(name[:len(name)-2], peer)
}

// Address returns pool base + increment + (ordinal - 1) with the pool's
// prefix length. Pools shorter than /32 must contain the result; a /32 pool is
// a loopback base and is offset freely.
func Address(pool netip.Prefix, increment, ordinal int) (netip.Prefix, error) {
	offset := increment + ordinal - 1
	addr, err := util.OffsetAddr(pool, offset)
	if err != nil {
		return netip.Prefix{}, err
	}
	if pool.Bits() < 32 && !pool.Contains(addr) {
		first, last := util.PoolRange(pool)
		return netip.Prefix{}, errors.Errorf("address %s (offset %d) outside pool %s (%s-%s, %d addresses)",
			addr, offset, pool, first, last, util.PoolSize(pool))
	}
	return netip.PrefixFrom(addr, pool.Bits()), nil
}

// HostAddress returns the index-th address inside pool.
func HostAddress(pool netip.Prefix, index int) (netip.Addr, error) {
	return util.HostIndex(pool, index)
}

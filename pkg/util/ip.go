package util

import (
	"math/big"
	"net"
	"net/netip"
	"strings"

	cidrlib "github.com/apparentlymart/go-cidr/cidr"
	"github.com/pkg/errors"
	"go4.org/netipx"
)

// ParsePool parses an IPv4 network in CIDR notation. Host bits are masked off,
// so "10.1.1.5/24" yields 10.1.1.0/24.
func ParsePool(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(strings.TrimSpace(s))
	if err != nil {
		return netip.Prefix{}, errors.Wrapf(err, "failed to parse pool %s", s)
	}
	if !p.Addr().Is4() {
		return netip.Prefix{}, errors.Errorf("pool %s is not an IPv4 network", s)
	}
	return p.Masked(), nil
}

// HostIndex returns the index-th address of pool, where 0 is the network
// address. Indexes past the end of the pool are an error.
func HostIndex(pool netip.Prefix, index int) (netip.Addr, error) {
	ip, err := cidrlib.Host(netipx.PrefixIPNet(pool.Masked()), index)
	if err != nil {
		return netip.Addr{}, errors.Wrapf(err, "address %d of %s (last %s)", index, pool, netipx.PrefixLastIP(pool))
	}
	addr, ok := netipx.FromStdIP(ip)
	if !ok {
		return netip.Addr{}, errors.Errorf("address %d of %s is not a valid IP", index, pool)
	}
	return addr, nil
}

// OffsetAddr returns the address offset positions above the pool's network
// base. Unlike HostIndex the result may fall outside the pool: loopback pools
// are written as a single /32 base and grow upwards from it.
func OffsetAddr(pool netip.Prefix, offset int) (netip.Addr, error) {
	if offset < 0 {
		return netip.Addr{}, errors.Errorf("negative offset %d from %s", offset, pool)
	}
	// Count from 0.0.0.0/0 so the offset may run past the pool.
	base := pool.Masked().Addr()
	index := new(big.Int).SetBytes(base.AsSlice())
	index.Add(index, big.NewInt(int64(offset)))
	ip, err := cidrlib.HostBig(netipx.PrefixIPNet(netip.PrefixFrom(base, 0).Masked()), index)
	if err != nil {
		return netip.Addr{}, errors.Wrapf(err, "offset %d from %s overflows the IPv4 space", offset, pool)
	}
	addr, ok := netipx.FromStdIP(ip)
	if !ok {
		return netip.Addr{}, errors.Errorf("offset %d from %s is not a valid IP", offset, pool)
	}
	return addr, nil
}

// PoolSize returns the number of addresses in pool.
func PoolSize(pool netip.Prefix) uint64 {
	return cidrlib.AddressCount(netipx.PrefixIPNet(pool.Masked()))
}

// PoolRange returns the first and last address of pool as strings.
func PoolRange(pool netip.Prefix) (string, string) {
	first, last := cidrlib.AddressRange(netipx.PrefixIPNet(pool.Masked()))
	return first.String(), last.String()
}

// IsValidIPv4 checks if a string is a valid IPv4 address
func IsValidIPv4(ipStr string) bool {
	addr, err := netip.ParseAddr(ipStr)
	return err == nil && addr.Is4()
}

// IsValidIPv4CIDR checks if a string is a valid IPv4 CIDR notation
func IsValidIPv4CIDR(cidr string) bool {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return false
	}
	return ipNet.IP.To4() != nil
}

// Package netutil provides small CIDR matching helpers.
package netutil

import (
	"fmt"
	"net/netip"
)

// Set is a collection of network prefixes supporting membership checks.
type Set struct {
	prefixes []netip.Prefix
}

// ParsePrefixes parses a list of CIDR strings into a Set. A bare address
// is treated as a single-address prefix.
func ParsePrefixes(cidrs ...string) (*Set, error) {
	set := &Set{prefixes: make([]netip.Prefix, 0, len(cidrs))}
	for _, cidr := range cidrs {
		prefix, err := netip.ParsePrefix(cidr)
		if err != nil {
			addr, addrErr := netip.ParseAddr(cidr)
			if addrErr != nil {
				return nil, fmt.Errorf("parsing %q: %w", cidr, err)
			}
			prefix = netip.PrefixFrom(addr, addr.BitLen())
		}
		set.prefixes = append(set.prefixes, prefix.Masked())
	}
	return set, nil
}

// Contains reports whether the address belongs to any prefix in the set.
func (s *Set) Contains(addr netip.Addr) bool {
	for _, prefix := range s.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ContainsString reports whether the address string belongs to any
// prefix in the set. Unparseable addresses are not contained in any set.
func (s *Set) ContainsString(addr string) bool {
	parsed, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	return s.Contains(parsed)
}

// Len returns the number of prefixes in the set.
func (s *Set) Len() int {
	return len(s.prefixes)
}

// Package allowlist contains the address matching rules shared by
// all the providers to maintain allowlist entries.
package allowlist

import (
	"net/netip"
	"strings"
)

// HostPrefix returns the prefix designating only the given IP address,
// which is a /32 for an IPv4 address and a /128 for an IPv6 address.
func HostPrefix(ip netip.Addr) netip.Prefix {
	ip = ip.Unmap()
	return netip.PrefixFrom(ip, ip.BitLen())
}

// Matches returns true if the allowlist entry value designates
// exactly the IP address given, either as a bare address such as
// 203.0.113.7 or as its host prefix such as 203.0.113.7/32.
func Matches(value string, ip netip.Addr) bool {
	if !ip.IsValid() {
		return false
	}
	ip = ip.Unmap()

	value = strings.TrimSpace(value)
	if strings.Contains(value, "/") {
		prefix, err := netip.ParsePrefix(value)
		if err != nil {
			return false
		}
		return prefix.Bits() == ip.BitLen() && prefix.Addr().Unmap() == ip
	}

	address, err := netip.ParseAddr(value)
	if err != nil {
		return false
	}
	return address.Unmap() == ip
}

// ContainsIP returns true if at least one of the values matches the IP address.
func ContainsIP(values []string, ip netip.Addr) bool {
	for _, value := range values {
		if Matches(value, ip) {
			return true
		}
	}
	return false
}

// Update returns a copy of the entries where entries matching the old IP
// address are removed, and where exactly one entry matches the new IP address.
// If no entry matches the new IP address, its host prefix is appended.
// All other entries are left untouched and keep their order.
// The old IP address can be the zero value if there is no old address.
func Update(entries []string, oldIP, newIP netip.Addr) (updated []string, changed bool) {
	updated = make([]string, 0, len(entries)+1)
	removeOld := oldIP.IsValid() && oldIP.Unmap() != newIP.Unmap()
	newFound := false
	for _, entry := range entries {
		switch {
		case Matches(entry, newIP):
			if newFound { // duplicate entry
				changed = true
				continue
			}
			newFound = true
			updated = append(updated, entry)
		case removeOld && Matches(entry, oldIP):
			changed = true
		default:
			updated = append(updated, entry)
		}
	}

	if !newFound {
		updated = append(updated, HostPrefix(newIP).String())
		changed = true
	}

	return updated, changed
}

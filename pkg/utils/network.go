package utils

import (
	"net"
	"strings"
)

// IsLinkLocalV6 reports whether ip is a textual fe80::/10 literal
func IsLinkLocalV6(ip string) bool {
	return len(ip) >= 5 && strings.EqualFold(ip[:5], "fe80:")
}

// IsLoopback reports whether ip is ::1 or falls under the 127. prefix
func IsLoopback(ip string) bool {
	return ip == "::1" || strings.HasPrefix(ip, "127.")
}

// IsIPLiteral checks that ip parses as an IPv4 or IPv6 address.
// Zone suffixes (fe80::1%eth0) are accepted.
func IsIPLiteral(ip string) bool {
	if idx := strings.IndexByte(ip, '%'); idx >= 0 {
		ip = ip[:idx]
	}
	return net.ParseIP(ip) != nil
}

// IsReportable checks if an address belongs in a snapshot
func IsReportable(ip string) bool {
	if !IsIPLiteral(ip) {
		return false
	}
	return !IsLinkLocalV6(ip) && !IsLoopback(ip)
}

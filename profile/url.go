package profile

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Pre-compiled CIDR networks for private/reserved IP ranges.
var (
	cgnat    *net.IPNet // 100.64.0.0/10 - Carrier-grade NAT
	v6unique *net.IPNet // fc00::/7 - IPv6 unique local
	v6link   *net.IPNet // fe80::/10 - IPv6 link-local
)

func init() {
	var err error
	if _, cgnat, err = net.ParseCIDR("100.64.0.0/10"); err != nil {
		panic(fmt.Sprintf("profile: parse CGNAT CIDR: %v", err))
	}
	if _, v6unique, err = net.ParseCIDR("fc00::/7"); err != nil {
		panic(fmt.Sprintf("profile: parse IPv6 unique local CIDR: %v", err))
	}
	if _, v6link, err = net.ParseCIDR("fe80::/10"); err != nil {
		panic(fmt.Sprintf("profile: parse IPv6 link-local CIDR: %v", err))
	}
}

// ValidateURL rejects URLs the enricher must not fetch: non-HTTPS schemes,
// localhost variants, local domains, and private or reserved addresses.
// Reviewer-supplied links are untrusted input, so the same checks run again
// on every redirect hop and resolved IP.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q (https required)", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("missing host")
	}
	if host == "localhost" || strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return fmt.Errorf("local host %q is not allowed", host)
	}
	if ip := net.ParseIP(host); ip != nil && IsPrivateIP(ip) {
		return fmt.Errorf("private address %s is not allowed", ip)
	}
	return nil
}

// IsPrivateIP reports whether the IP falls in a private, loopback, link-local,
// or otherwise reserved range.
func IsPrivateIP(ip net.IP) bool {
	if ip == nil {
		return false
	}
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsPrivate() {
		return true
	}
	if ip4 := ip.To4(); ip4 != nil {
		return cgnat.Contains(ip4)
	}
	return v6unique.Contains(ip) || v6link.Contains(ip)
}

package enrichment

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/idna"
)

var blockedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// normalizeDomain returns the ASCII form of a public DNS name. Ports, IP
// literals, single-label hosts and the localhost zone are rejected.
func normalizeDomain(domain string) (string, error) {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if domain == "" || strings.ContainsAny(domain, ":/?#@[]% \\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}

	if _, err := netip.ParseAddr(domain); err == nil {
		return "", fmt.Errorf("%w: %q is an address literal", ErrBlockedAddress, domain)
	}

	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDomain, err)
	}

	labels := strings.Split(ascii, ".")
	if len(labels) < 2 {
		return "", fmt.Errorf("%w: %q has no public suffix", ErrInvalidDomain, domain)
	}

	tld := labels[len(labels)-1]
	if tld == "localhost" || strings.Trim(tld, "0123456789") == "" {
		return "", fmt.Errorf("%w: %q", ErrBlockedAddress, domain)
	}

	return ascii, nil
}

// publicAddr reports whether a is routable on the public internet.
func publicAddr(a netip.Addr) bool {
	a = a.Unmap()
	if !a.IsGlobalUnicast() || a.IsPrivate() {
		return false
	}
	for _, p := range blockedPrefixes {
		if p.Contains(a) {
			return false
		}
	}
	return true
}

// dialGuard runs after name resolution on every connection attempt,
// including redirects, so hostnames that resolve to internal addresses
// are refused at connect time.
func dialGuard(network, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	if !publicAddr(ap.Addr()) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ap.Addr())
	}
	return nil
}

func newClient(cfg *Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.TimeoutDuration(),
		KeepAlive: 30 * time.Second,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.AllowPrivateNetworks {
		dialer.Control = dialGuard
		transport.Proxy = nil
	}
	transport.DialContext = dialer.DialContext

	return &http.Client{
		Timeout:   cfg.TimeoutDuration(),
		Transport: transport,
	}
}

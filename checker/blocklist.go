package checker

import (
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/lukemcguire/linkcheck/urlutil"
)

// HostList is a set of domains used for host based policies such as the
// automation denylist.
//
// A host matches an entry when it equals the entry, is a subdomain of it, or
// shares its registrable domain (so "www.example.com" also covers
// "api.example.com").
type HostList []string

// ParseHostList splits a comma separated list of domains, dropping blanks.
func ParseHostList(raw string) HostList {
	var hosts HostList
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(part)), ".")
		if part != "" {
			hosts = append(hosts, part)
		}
	}
	return hosts
}

// Matches reports whether host is covered by any entry of the list.
func (l HostList) Matches(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" || len(l) == 0 {
		return false
	}

	site := registrableDomain(host)
	for _, entry := range l {
		if urlutil.HostMatches(host, entry) {
			return true
		}
		if site != "" && site == registrableDomain(entry) {
			return true
		}
	}
	return false
}

// String renders the list as accepted by ParseHostList.
func (l HostList) String() string {
	return strings.Join(l, ",")
}

// registrableDomain returns the eTLD+1 of host, or "" for hosts without one
// (IP addresses, single-label names, bare public suffixes).
func registrableDomain(host string) string {
	if net.ParseIP(host) != nil {
		return ""
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		return ""
	}
	return site
}

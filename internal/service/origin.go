package service

import (
	"net/url"
	"strings"
)

// OriginAllowed reports whether a request hostname is admitted by an agent's
// allow-list. An empty list allows every origin: embeds work before any
// domain is configured, and first-party callers send no Origin at all. An
// empty hostname is likewise allowed (non-browser or first-party caller).
// A hostname is admitted when it equals an entry, is a subdomain of an
// entry, or the entry is "localhost" and the hostname is localhost or
// 127.0.0.1.
func OriginAllowed(hostname string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	if hostname == "" {
		return true
	}

	hostname = strings.ToLower(hostname)
	for _, entry := range allowed {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if hostname == entry {
			return true
		}
		if strings.HasSuffix(hostname, "."+entry) {
			return true
		}
		if entry == "localhost" && (hostname == "localhost" || hostname == "127.0.0.1") {
			return true
		}
	}

	return false
}

// OriginHostname extracts the hostname from an Origin header, falling back
// to Referer. Unparsable values yield "" so they pass the guard.
func OriginHostname(origin, referer string) string {
	for _, raw := range []string{origin, referer} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if host := u.Hostname(); host != "" {
			return host
		}
	}
	return ""
}

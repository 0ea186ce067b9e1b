package auth

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// SessionIDParam is the marker the identity provider appends to redirect URLs.
const SessionIDParam = "session_id"

// HasSessionMarker reports whether a raw URL carries the session_id marker at
// all. Deep-link handlers use it to decide whether to engage.
func HasSessionMarker(rawURL string) bool {
	return strings.Contains(rawURL, SessionIDParam)
}

// ExtractSessionID parses the short-lived session identifier out of a
// redirect URL. The identifier is recognized in either a fragment-style
// ("#session_id=...") or query-style ("?session_id=...") position. Values are
// URL parameters, so "&" terminates them; an id cannot itself contain "&".
func ExtractSessionID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	if id := u.Query().Get(SessionIDParam); id != "" {
		return id, true
	}

	// Hosted providers deliver the id in the fragment so it never reaches
	// server logs. The fragment body is itself query-encoded.
	frag := u.Fragment
	if i := strings.Index(frag, "?"); i >= 0 {
		frag = frag[i+1:]
	}
	vals, err := url.ParseQuery(frag)
	if err != nil {
		return "", false
	}
	if id := vals.Get(SessionIDParam); id != "" {
		return id, true
	}
	return "", false
}

// RedirectPolicy decides whether an incoming redirect URL is an acceptable
// callback target. Loopback hosts and the app's custom URI scheme are always
// acceptable; anything else must share a registered domain with an allowed
// origin.
type RedirectPolicy struct {
	// Scheme is the custom URI scheme registered for native deep links.
	Scheme string
	// AllowedOrigins are additional acceptable callback origins
	// (e.g. "https://app.paisawise.app").
	AllowedOrigins []string
}

// Allows reports whether the redirect URL may be consumed.
func (p RedirectPolicy) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	if p.Scheme != "" && strings.EqualFold(u.Scheme, p.Scheme) {
		return true
	}

	host := u.Hostname()
	if isLoopbackHost(host) {
		return true
	}

	want := registeredDomain(host)
	if want == "" {
		return false
	}
	for _, origin := range p.AllowedOrigins {
		ou, oerr := url.Parse(origin)
		if oerr != nil {
			continue
		}
		if registeredDomain(ou.Hostname()) == want {
			return true
		}
	}
	return false
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

// registeredDomain returns the eTLD+1 for a hostname, or the host itself for
// IP literals where the public suffix list does not apply.
func registeredDomain(host string) string {
	if host == "" {
		return ""
	}
	if net.ParseIP(host) != nil {
		return host
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		return strings.ToLower(host)
	}
	return etld1
}

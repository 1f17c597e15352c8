// Package identity resolves inbound credentials to verified principals
// using the hosted auth provider.
package identity

import (
	"net/http"
	"strings"
)

// CredentialSource records which carrier a credential was extracted from.
type CredentialSource string

const (
	SourceHeader CredentialSource = "header"
	SourceCookie CredentialSource = "cookie"
)

// Credential is a raw, unverified token pulled from a request carrier.
type Credential struct {
	Token  string
	Source CredentialSource
}

// ExtractCredential pulls zero-or-one raw credential from the request.
//
// The Authorization header takes precedence over the session cookie: a
// header credential is an explicit, short-lived delegation while the cookie
// is the ambient browser session, so a caller presenting both wants the
// explicit one honored. A malformed header (missing Bearer prefix, empty
// token) is absence of credentials, not a credential error.
func ExtractCredential(r *http.Request, cookieName string) (Credential, bool) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, token, ok := strings.Cut(auth, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return Credential{Token: token, Source: SourceHeader}, true
			}
		}
	}

	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil {
			if token := strings.TrimSpace(cookie.Value); token != "" {
				return Credential{Token: token, Source: SourceCookie}, true
			}
		}
	}

	return Credential{}, false
}

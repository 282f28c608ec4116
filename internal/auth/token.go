package auth

import (
	"net/http"
	"strings"
)

const (
	SessionCookieName  = "session_token"
	SessionTokenHeader = "X-Session-Token"
)

// TokenFromRequest reads the session token from the bearer Authorization header, the
// X-Session-Token header or the session cookie, in that order.
func TokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		scheme, token, found := strings.Cut(authz, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}

	if token := strings.TrimSpace(r.Header.Get(SessionTokenHeader)); token != "" {
		return token
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}

package auth

import (
	"net/http"
	"strings"
)

// ExtractToken reads a JWT from the Authorization header (Bearer scheme,
// case-insensitive) and falls back to the named query parameter. Returns an
// empty string when neither carries a token.
func ExtractToken(r *http.Request, queryParam string) string {
	if r == nil {
		return ""
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	if queryParam == "" {
		queryParam = "token"
	}
	return strings.TrimSpace(r.URL.Query().Get(queryParam))
}

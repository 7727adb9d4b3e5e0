package sdk

import "strings"

// BareToken strips a case-insensitive "Bearer" scheme and surrounding space
// from an Authorization value. A value without the scheme is returned trimmed.
func BareToken(token string) string {
	t := strings.TrimSpace(token)
	const scheme = "bearer"
	if len(t) >= len(scheme) && strings.EqualFold(t[:len(scheme)], scheme) {
		rest := t[len(scheme):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			return strings.TrimSpace(rest)
		}
	}
	return t
}

package firebase

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const maxIDBytes = 1500

// normalizeID puts id into NFC so visually identical ids address the same
// document, and rejects ids Firestore cannot store.
func normalizeID(id string) (string, error) {
	n := norm.NFC.String(id)
	switch {
	case strings.TrimSpace(n) == "":
		return "", fmt.Errorf("document id must not be empty")
	case strings.Contains(n, "/"):
		return "", fmt.Errorf("document id %q must not contain '/'", id)
	case n == "." || n == "..":
		return "", fmt.Errorf("document id %q is reserved", id)
	case strings.HasPrefix(n, "__") && strings.HasSuffix(n, "__") && len(n) >= 4:
		return "", fmt.Errorf("document id %q is reserved", id)
	case len(n) > maxIDBytes:
		return "", fmt.Errorf("document id is longer than %d bytes", maxIDBytes)
	}
	return n, nil
}

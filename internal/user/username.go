package user

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// NormalizeRef trims whitespace and one leading '@' from a user reference
func NormalizeRef(ref string) string {
	return strings.TrimPrefix(strings.TrimSpace(ref), "@")
}

// UsernameKey returns the case-folded lookup key of a username or @mention
func UsernameKey(username string) string {
	return folder.String(NormalizeRef(username))
}

func isNumericID(ref string) bool {
	if ref == "" {
		return false
	}
	for _, r := range ref {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package service

import "strings"

// NormalizeReviewer canonicalizes a free-text username so that counts and
// history lookups are case and whitespace insensitive. The same
// normalization is applied at write time and at query time.
func NormalizeReviewer(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package schema

import "strings"

// Normalize strips prefix from identifier. The identifier is returned
// unchanged when prefix is empty or not a literal prefix of it.
func Normalize(identifier, prefix string) string {
	if prefix == "" {
		return identifier
	}
	return strings.TrimPrefix(identifier, prefix)
}

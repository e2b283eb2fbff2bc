package common

import (
	"strconv"
	"strings"
)

// CanonicalID normalizes an entity identifier to its canonical string form.
// Identifiers historically crossed layers both as numbers and as strings
// ("7" vs 7 vs " 007"), so every comparison must go through this function.
// Purely numeric identifiers are reformatted via int64 round-trip; anything
// else is returned trimmed.
func CanonicalID(id string) string {
	s := strings.TrimSpace(id)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return s
}

// SameID reports whether two identifiers refer to the same record after
// normalization.
func SameID(a, b string) bool {
	return CanonicalID(a) == CanonicalID(b)
}

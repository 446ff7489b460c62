// Package normalize provides pure string canonicalization for team names
// and event identifiers. Every other matching component builds on it.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents strips combining marks so "Montréal" and "Montreal" compare equal.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the input, folds accents, drops every character
// outside [a-z0-9] and whitespace, and collapses whitespace runs to a
// single space. It is total: empty input yields the empty string, and
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s, _, _ = transform.String(foldAccents, s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Slugify converts an official team name into a stable identifier:
// normalized, with spaces replaced by underscores. Slugs are for keys,
// not for fuzzy comparison.
func Slugify(fullName string) string {
	return strings.ReplaceAll(Normalize(fullName), " ", "_")
}

// TeamSetKey joins two team slugs into an order-independent key: the
// lexicographically smaller slug always comes first. Callers must pass
// already-slugified IDs.
func TeamSetKey(idA, idB string) string {
	if idA <= idB {
		return idA + "|" + idB
	}
	return idB + "|" + idA
}

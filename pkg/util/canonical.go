package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CanonicalKey derives the dedup identity key for a place from its name and
// address. The algorithm is load-bearing: existing shop rows store its
// output, so changing it requires a data migration.
//
// Steps per part: lower-case, NFD-normalize and strip combining marks,
// "&" becomes "and", every non-alphanumeric run collapses to a single
// space, words join with "_". The two parts join with "__".
func CanonicalKey(name, address string) string {
	return canonicalPart(name) + "__" + canonicalPart(address)
}

func canonicalPart(s string) string {
	s = strings.ToLower(s)
	s = stripDiacritics(s)
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "_")
}

func stripDiacritics(s string) string {
	// The chain carries internal buffers, so build it per call rather than
	// sharing one across goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

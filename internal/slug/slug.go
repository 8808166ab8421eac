// Package slug derives URL-safe identifiers from display names and resolves
// collisions against the set of slugs already present in a collection.
//
// Slug generation is an explicit step of the create/update services, not a
// persistence-layer hook: the caller fetches the matching existing slugs and
// passes them in, keeping this package a pure function of its inputs.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMarks decomposes accented characters and strips the combining marks,
// so "Saké" folds to "Sake" before the ASCII pass.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make transliterates a display name to a lowercase, hyphen-separated ASCII
// token: diacritics stripped, runs of whitespace and punctuation collapsed to
// single hyphens, leading and trailing hyphens trimmed. An empty result is
// possible for names with no ASCII-representable characters; required-field
// validation upstream is expected to reject empty names before this point.
func Make(name string) string {
	folded, _, err := transform.String(foldMarks, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// Pattern returns the case-insensitive anchored regular expression matching a
// base slug and any of its numeric-suffixed variants ("base", "base-2", ...).
// The repository passes it to the store's regex matcher when collecting the
// existing slugs for NextUnique.
func Pattern(base string) string {
	return "(?i)^" + regexp.QuoteMeta(base) + "(-[0-9]*)?$"
}

// NextUnique returns the slug to persist given the base slug and the existing
// slugs that matched Pattern(base). With no matches the base is used
// verbatim; with N matches the result is "base-(N+1)".
//
// The suffix is derived from the count of matches, not the lowest free
// integer. After out-of-order deletions this can skip numbers or collide with
// a surviving suffixed slug. That is accepted: these are human-facing
// identifiers, and the behavior matches what the site has always done.
func NextUnique(base string, existing []string) string {
	if len(existing) == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, len(existing)+1)
}

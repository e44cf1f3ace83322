// Package search implements the in-memory query engines of the formulary
// API: wildcard pattern compilation, medicine and cosmetic filtering,
// alternative-drug matching and insurance coverage grouping. All engines are
// pure functions over catalog slices owned by the data container; they never
// mutate their inputs.
package search

import (
	"regexp"
	"strings"
)

// Matcher tests lower-cased candidate strings against a compiled search term.
type Matcher struct {
	re      *regexp.Regexp
	literal string // substring fallback when the pattern failed to compile
}

// Test reports whether the candidate satisfies the compiled term. The
// candidate must already be lower-cased by the caller; the engines in this
// package do that consistently.
func (m Matcher) Test(candidate string) bool {
	if m.re != nil {
		return m.re.MatchString(candidate)
	}
	return strings.Contains(candidate, m.literal)
}

// Compile turns a raw search term into a Matcher. The term is expected to be
// trimmed and lower-cased by the caller.
//
// Without a '%' the term compiles to prefix semantics: short unqualified
// queries act as starts-with search, not substring search. With one or more
// '%' the term splits into literal segments joined by ".*", anchored to the
// start of the string unless the term itself begins with '%'. Literal
// segments are always regex-escaped so user input containing regex syntax
// cannot crash or widen the match.
func Compile(term string) Matcher {
	var pattern string

	if strings.Contains(term, "%") {
		segments := strings.Split(term, "%")
		for i := range segments {
			segments[i] = regexp.QuoteMeta(segments[i])
		}
		pattern = strings.Join(segments, ".*")
		if !strings.HasPrefix(term, "%") {
			pattern = "^" + pattern
		}
	} else {
		pattern = "^" + regexp.QuoteMeta(term)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		// Never surface a compile failure to the caller: fall back to a
		// literal substring match with the wildcards stripped.
		return Matcher{literal: strings.ReplaceAll(term, "%", "")}
	}

	return Matcher{re: re}
}

// EffectiveLength returns the length of the term once every '%' is removed
// and surrounding whitespace is trimmed. Queries with an effective length of
// 1 or 2 are rejected by the engines so partial typing does not flood the
// caller with noise.
func EffectiveLength(term string) int {
	return len([]rune(strings.TrimSpace(strings.ReplaceAll(term, "%", ""))))
}

// minSearchLength is the effective-length gate shared by every text search.
const minSearchLength = 3

// searchable reports whether the term passes the effective-length gate.
func searchable(term string) bool {
	return EffectiveLength(term) >= minSearchLength
}

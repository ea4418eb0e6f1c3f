// Package query normalizes raw customer queries for lexical matching.
package query

import (
	"strings"
	"unicode"
)

// Tokens shorter than this carry no signal for substring matching.
const minTokenLen = 3

// Normalized is a query prepared for scoring: the full lowered string for
// substring checks plus the filtered token list.
type Normalized struct {
	Lowered string
	Tokens  []string
}

// Empty reports whether the query carried no usable text. Scoring
// short-circuits on empty queries to avoid vacuous substring matches.
func (n Normalized) Empty() bool {
	return n.Lowered == ""
}

// Normalize lowercases the query, strips punctuation and tokenizes on
// whitespace, discarding tokens shorter than three runes. Punctuation is
// removed rather than split on, so "what's" becomes "whats".
func Normalize(raw string) Normalized {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return Normalized{}
	}

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	var tokens []string
	for _, tok := range strings.Fields(b.String()) {
		if len([]rune(tok)) >= minTokenLen {
			tokens = append(tokens, tok)
		}
	}
	return Normalized{Lowered: lowered, Tokens: tokens}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

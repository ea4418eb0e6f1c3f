// Package scoring computes integer relevance scores for FAQ items against a
// normalized customer query.
//
// Scoring is a pure function of (query, item, mode). The baseline pass sums
// independent lexical contributions; the adjusted pass layers the
// specificity rule tables on top. The two passes are a deliberate policy
// split: the top-K retrieval path uses ModeAdjusted so device-specific
// repair questions win over generic service items, while the single
// best-answer path stays on ModeBaseline.
package scoring

import (
	"strings"

	"github.com/fixdesklabs/kbengine/internal/knowledge"
	"github.com/fixdesklabs/kbengine/internal/query"
)

// Mode selects which scoring policy is applied.
type Mode int

const (
	// ModeBaseline sums only the lexical contributions.
	ModeBaseline Mode = iota
	// ModeAdjusted adds the specificity boosts and penalties.
	ModeAdjusted
)

// Baseline contribution weights.
const (
	weightExactMatch        = 100
	weightKeywordOverlap    = 10
	weightQuestionSubstring = 15
	weightTokenInQuestion   = 4
	weightTokenInAnswer     = 1
)

// Weight of the device-family repair disambiguation boost.
const weightFamilyRepairBoost = 100

// Score computes the relevance score of item for q under the given mode.
// An empty query scores zero for every item.
func Score(q query.Normalized, item *knowledge.Item, mode Mode) int {
	if q.Empty() {
		return 0
	}

	score := baseline(q, item)
	if mode == ModeAdjusted {
		score += adjust(q, item)
	}
	return score
}

func baseline(q query.Normalized, item *knowledge.Item) int {
	question := strings.ToLower(item.Question)
	answer := strings.ToLower(item.Answer)

	var score int
	if question == q.Lowered {
		score += weightExactMatch
	}

	for _, kw := range item.Keywords {
		lower := strings.ToLower(kw)
		if strings.Contains(q.Lowered, lower) || strings.Contains(lower, q.Lowered) {
			score += weightKeywordOverlap
		}
	}

	if strings.Contains(question, q.Lowered) {
		score += weightQuestionSubstring
	}

	for _, tok := range q.Tokens {
		if strings.Contains(question, tok) {
			score += weightTokenInQuestion
		}
		if strings.Contains(answer, tok) {
			score += weightTokenInAnswer
		}
	}
	return score
}

// adjust runs the specificity rule tables: the device-family repair boost,
// then the generic penalty and topical boost rules.
func adjust(q query.Normalized, item *knowledge.Item) int {
	qp := ProfileQuery(q)
	ip := ProfileItem(item)

	var delta int
	if qp.HasSpecificDevice && qp.HasRepairIntent && ip.IsSpecific {
		for _, family := range deviceFamilies {
			if family.queryTerms.anyToken(q.Tokens) && family.matchesKeywords(item.Keywords) {
				delta += weightFamilyRepairBoost
			}
		}
	}

	for _, rule := range penaltyRules {
		if rule.fires(q.Tokens, item.Keywords) {
			delta += rule.weight
		}
	}
	for _, rule := range topicalRules {
		if rule.fires(q.Tokens, item.Keywords) {
			delta += rule.weight
		}
	}
	return delta
}

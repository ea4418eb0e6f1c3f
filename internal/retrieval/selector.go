// Package retrieval ranks scored FAQ items and selects results.
//
// Two retrieval modes are exposed: TopMatches returns the k best items under
// the specificity-adjusted scoring policy, BestAnswer returns the single
// highest baseline-scored item above a confidence threshold. Both are pure
// functions over an immutable knowledge snapshot.
package retrieval

import (
	"sort"

	"github.com/fixdesklabs/kbengine/internal/knowledge"
	"github.com/fixdesklabs/kbengine/internal/query"
	"github.com/fixdesklabs/kbengine/internal/scoring"
)

const (
	// DefaultTopK bounds context-assembly retrieval.
	DefaultTopK = 5
	// BestAnswerThreshold is the minimum baseline score for a confident
	// single answer. Below it the caller gets an explicit no-match.
	BestAnswerThreshold = 10
)

// scoredItem pairs an item with its score for one ranking pass. It never
// leaves this package.
type scoredItem struct {
	item  knowledge.Item
	score int
}

// TopMatches scores the corpus under the adjusted policy and returns up to
// k items ordered by descending score. Items scoring zero or below are
// excluded; equal scores keep corpus insertion order.
func TopMatches(snap *knowledge.Snapshot, rawQuery string, k int) []knowledge.Item {
	if snap == nil || k <= 0 {
		return nil
	}

	q := query.Normalize(rawQuery)
	if q.Empty() {
		return nil
	}

	scored := make([]scoredItem, 0, len(snap.Items))
	for i := range snap.Items {
		s := scoring.Score(q, &snap.Items[i], scoring.ModeAdjusted)
		if s <= 0 {
			continue
		}
		scored = append(scored, scoredItem{item: snap.Items[i], score: s})
	}

	// Stable sort keeps corpus order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if k > len(scored) {
		k = len(scored)
	}
	items := make([]knowledge.Item, k)
	for i := 0; i < k; i++ {
		items[i] = scored[i].item
	}
	return items
}

// BestAnswer scores the corpus under the baseline policy and returns the
// highest-scoring item when its score reaches BestAnswerThreshold. The
// boolean is false when no item qualifies; that is a normal outcome, not an
// error. Ties resolve to the earliest item in corpus order.
func BestAnswer(snap *knowledge.Snapshot, rawQuery string) (knowledge.Item, bool) {
	if snap == nil {
		return knowledge.Item{}, false
	}

	q := query.Normalize(rawQuery)
	if q.Empty() {
		return knowledge.Item{}, false
	}

	bestIdx := -1
	bestScore := 0
	for i := range snap.Items {
		s := scoring.Score(q, &snap.Items[i], scoring.ModeBaseline)
		if s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore < BestAnswerThreshold {
		return knowledge.Item{}, false
	}
	return snap.Items[bestIdx], true
}

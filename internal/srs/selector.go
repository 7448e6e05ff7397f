package srs

import (
	"math/rand"
	"time"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/memo"
)

const (
	// DefaultSessionSize is the number of memos picked for a review session
	// when no size is configured.
	DefaultSessionSize = 3

	// UncertainConfidence is the tag confidence below which a memo counts as
	// uncertainly classified and gets selection priority.
	UncertainConfidence = 70
)

// SelectReviewItems picks up to limit memos for a review session.
//
// The candidate pool is every unprocessed memo plus every done memo whose
// next review time has passed. Candidates are ranked in four tiers, each
// excluding memos already picked by an earlier tier:
//
//  1. due: next review time has passed
//  2. weak: last score below PassScore
//  3. uncertain: tag confidence below UncertainConfidence
//  4. random fill: remaining candidates, shuffled
//
// The first three tiers preserve the input order, so the result is
// deterministic up to the fill tier. Fewer than limit candidates are
// returned as-is, without padding or duplicates.
func SelectReviewItems(pool []memo.Memo, now time.Time, limit int) []memo.Memo {
	if limit <= 0 {
		limit = DefaultSessionSize
	}

	candidates := make([]memo.Memo, 0, len(pool))
	for _, m := range pool {
		if m.Status == memo.StatusUnprocessed || (m.Status == memo.StatusDone && m.IsDue(now)) {
			candidates = append(candidates, m)
		}
	}

	selected := make([]memo.Memo, 0, len(candidates))
	picked := make(map[string]struct{}, len(candidates))
	pick := func(match func(memo.Memo) bool) {
		for _, m := range candidates {
			if _, ok := picked[m.ID]; ok {
				continue
			}
			if !match(m) {
				continue
			}
			picked[m.ID] = struct{}{}
			selected = append(selected, m)
		}
	}

	pick(func(m memo.Memo) bool { return m.IsDue(now) })
	pick(func(m memo.Memo) bool { return m.LastScore != nil && *m.LastScore < PassScore })
	pick(func(m memo.Memo) bool { return m.TagConfidence != nil && *m.TagConfidence < UncertainConfidence })

	fill := make([]memo.Memo, 0, len(candidates)-len(selected))
	for _, m := range candidates {
		if _, ok := picked[m.ID]; !ok {
			fill = append(fill, m)
		}
	}
	rand.Shuffle(len(fill), func(i, j int) {
		fill[i], fill[j] = fill[j], fill[i]
	})
	selected = append(selected, fill...)

	if len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

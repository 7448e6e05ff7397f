package statistics

import (
	"sort"
	"time"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/memo"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/srs"
)

// TagCount pairs a tag value with how many memos carry it.
type TagCount struct {
	Name  string
	Count int
}

// MemoStatistics summarizes the state of the whole memo collection.
type MemoStatistics struct {
	Total          int
	Done           int        // graduated memos
	Tagged         int        // memos with a topic or pattern tag
	DueNow         int        // memos whose next review is at or before now
	Weak           int        // memos whose last score was below the pass line
	Uncertain      int        // memos tagged with low model confidence
	AverageScore   float64    // mean of last scores, 0 when nothing was graded
	CompletionRate float64    // done / total, 0 when empty
	TopTopics      []TagCount // up to 5, most frequent first
	TopPatterns    []TagCount // up to 5, most frequent first
}

// topTagLimit caps the topic and pattern rankings.
const topTagLimit = 5

// Calculate computes collection-wide statistics. It is a pure function
// over the memos it is given.
func Calculate(memos []memo.Memo, now time.Time) MemoStatistics {
	stats := MemoStatistics{Total: len(memos)}
	if len(memos) == 0 {
		return stats
	}

	topicCounts := make(map[string]int)
	patternCounts := make(map[string]int)
	scoreSum := 0
	scored := 0

	for _, m := range memos {
		if m.Status == memo.StatusDone {
			stats.Done++
		}
		if m.TagTopic != nil || m.TagPattern != nil {
			stats.Tagged++
		}
		if m.IsDue(now) {
			stats.DueNow++
		}
		if m.LastScore != nil {
			scoreSum += *m.LastScore
			scored++
			if *m.LastScore < srs.PassScore {
				stats.Weak++
			}
		}
		if m.TagConfidence != nil && *m.TagConfidence < srs.UncertainConfidence {
			stats.Uncertain++
		}
		if m.TagTopic != nil && *m.TagTopic != "" {
			topicCounts[*m.TagTopic]++
		}
		if m.TagPattern != nil && *m.TagPattern != "" {
			patternCounts[*m.TagPattern]++
		}
	}

	if scored > 0 {
		stats.AverageScore = float64(scoreSum) / float64(scored)
	}
	stats.CompletionRate = float64(stats.Done) / float64(stats.Total)
	stats.TopTopics = topTags(topicCounts)
	stats.TopPatterns = topTags(patternCounts)
	return stats
}

// topTags ranks tags by count, breaking ties by name for stable output.
func topTags(counts map[string]int) []TagCount {
	ranked := make([]TagCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, TagCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topTagLimit {
		ranked = ranked[:topTagLimit]
	}
	return ranked
}

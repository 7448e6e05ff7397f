// Package srs implements the spaced-repetition scheduling policy: the level
// transition after a graded review and the selection of memos for a session.
package srs

import "time"

// ReviewIntervals is the interval table in days, indexed by level.
// A memo starts at level 0 and climbs one level per passing review:
// 0 (new) -> 1 (1d) -> 2 (3d) -> 3 (7d) -> 4 (14d) -> 5 (30d) -> graduated.
var ReviewIntervals = []int{0, 1, 3, 7, 14, 30}

const (
	// PassScore is the minimum score that advances a memo to the next level.
	PassScore = 80
	// FailScore is the score below which a memo regresses a level.
	// Scores in [FailScore, PassScore) hold the level and reschedule for
	// tomorrow.
	FailScore = 50
)

// Result holds the scheduling outcome of a graded review.
type Result struct {
	Level        int
	IntervalDays int
	NextReviewAt time.Time
	Graduated    bool
}

// Advance computes the next level, interval and review time from the current
// level and a 0-100 grading score. It is pure and deterministic: the same
// (level, score, now) always produces the same result.
//
// A pass at the highest table level graduates the memo: the level clamps to
// len(ReviewIntervals) as a sentinel and the interval is 0. Re-grading a
// graduated memo goes through the same policy from that frozen level.
func Advance(currentLevel, score int, now time.Time) Result {
	if currentLevel < 0 {
		currentLevel = 0
	}

	level := currentLevel
	interval := 0
	graduated := false

	switch {
	case score >= PassScore:
		level = currentLevel + 1
		if level >= len(ReviewIntervals) {
			level = len(ReviewIntervals)
			graduated = true
		} else {
			interval = ReviewIntervals[level]
		}
	case score < FailScore:
		level = currentLevel - 1
		if level < 0 {
			level = 0
		}
		interval = 1
	default:
		interval = 1
	}

	return Result{
		Level:        level,
		IntervalDays: interval,
		NextReviewAt: now.AddDate(0, 0, interval),
		Graduated:    graduated,
	}
}

package grading

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=grader.go -destination=../mocks/grading/mock_grader.go -package=mock_grading Grader

// ErrUnavailable is returned when a grader cannot reach its backing
// model and the caller may fall back to another grader.
var ErrUnavailable = errors.New("grader unavailable")

// ErrInvalidScore is returned when a grader produces a score outside
// the 0-100 range. The result must not be used for scheduling.
var ErrInvalidScore = errors.New("score out of range")

// Request holds a single graded attempt: the Japanese prompt, the
// stored reference translation, and what the user typed.
type Request struct {
	Question        string
	ReferenceAnswer string
	UserAnswer      string
}

// Result is a normalized grade regardless of which grader produced it.
type Result struct {
	Score           int
	Feedback        string
	CorrectedAnswer string
}

// Grader scores a user's English answer against a reference answer.
type Grader interface {
	Grade(ctx context.Context, req Request) (Result, error)
}

// validateScore rejects scores a model hallucinated outside 0-100.
func validateScore(score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}
	return nil
}

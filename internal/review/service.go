// Package review orchestrates a review session: selecting which memos to
// quiz, grading the answers, and persisting the resulting schedule.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/grading"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/memo"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/srs"
)

// Prompt is a single quiz question presented to the user.
type Prompt struct {
	MemoID          string
	SourceText      string
	ReferenceAnswer string
	Level           int
}

// SubmitResult bundles the grade and the schedule produced by one attempt.
type SubmitResult struct {
	Grade    grading.Result
	Schedule srs.Result
	Memo     memo.Memo
}

// Service runs review sessions over the memo store.
type Service struct {
	store       memo.Repository
	grader      grading.Grader
	sessionSize int
}

func NewService(store memo.Repository, grader grading.Grader, sessionSize int) *Service {
	if sessionSize <= 0 {
		sessionSize = srs.DefaultSessionSize
	}
	return &Service{
		store:       store,
		grader:      grader,
		sessionSize: sessionSize,
	}
}

// StartSession selects the memos to review now and returns them as prompts.
// Memos without a reference answer cannot be graded and are skipped.
func (s *Service) StartSession(ctx context.Context, now time.Time) ([]Prompt, error) {
	memos, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.FindAll > %w", err)
	}

	gradable := make([]memo.Memo, 0, len(memos))
	for _, m := range memos {
		if m.HasReferenceAnswer() {
			gradable = append(gradable, m)
		}
	}

	selected := srs.SelectReviewItems(gradable, now, s.sessionSize)
	prompts := make([]Prompt, 0, len(selected))
	for _, m := range selected {
		prompts = append(prompts, Prompt{
			MemoID:          m.ID,
			SourceText:      m.SourceText,
			ReferenceAnswer: *m.ReferenceAnswer,
			Level:           m.Level,
		})
	}
	return prompts, nil
}

// SubmitAnswer grades one answer and advances the memo's schedule.
// If grading fails, the memo's schedule is left untouched so the caller
// can retry with the same inputs.
func (s *Service) SubmitAnswer(ctx context.Context, memoID string, userAnswer string, now time.Time) (SubmitResult, error) {
	m, err := s.store.GetByID(ctx, memoID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("store.GetByID > %w", err)
	}
	if !m.HasReferenceAnswer() {
		return SubmitResult{}, fmt.Errorf("memo %s has no reference answer to grade against", memoID)
	}

	grade, err := s.grader.Grade(ctx, grading.Request{
		Question:        m.SourceText,
		ReferenceAnswer: *m.ReferenceAnswer,
		UserAnswer:      userAnswer,
	})
	if err != nil {
		return SubmitResult{}, fmt.Errorf("grader.Grade > %w", err)
	}

	schedule := srs.Advance(m.Level, grade.Score, now)

	// Graduation moves a memo out of the active queue. The reverse never
	// happens here: a done memo that regresses stays done and re-enters
	// through its due date.
	status := m.Status
	if schedule.Graduated {
		status = memo.StatusDone
	}

	updated, err := s.store.UpdateReview(ctx, memoID, memo.ReviewPatch{
		Status:       status,
		Level:        schedule.Level,
		IntervalDays: schedule.IntervalDays,
		NextReviewAt: schedule.NextReviewAt,
		LastScore:    grade.Score,
	})
	if err != nil {
		return SubmitResult{}, fmt.Errorf("store.UpdateReview > %w", err)
	}

	return SubmitResult{
		Grade:    grade,
		Schedule: schedule,
		Memo:     updated,
	}, nil
}

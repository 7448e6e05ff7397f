// Package memo provides the memo domain model and its repository.
package memo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a memo.
type Status string

const (
	// StatusUnprocessed means the memo has not graduated from active review.
	StatusUnprocessed Status = "unprocessed"
	// StatusDone means the memo graduated out of the active queue. It keeps
	// its scheduling state so it can re-enter rotation when due again.
	StatusDone Status = "done"
)

// Memo is a native-language phrase the user could not express, together with
// its generated reference answer and spaced-repetition state.
type Memo struct {
	ID              string  `db:"id"`
	SourceText      string  `db:"source_text"`
	ReferenceAnswer *string `db:"reference_answer"`
	// AlternativesJSON holds alternative phrasings as a JSON array of strings.
	AlternativesJSON *string `db:"alternatives"`
	NotesJA          *string `db:"notes_ja"`
	ExampleEN        *string `db:"example_en"`
	ExampleJA        *string `db:"example_ja"`

	Status       Status     `db:"status"`
	Level        int        `db:"level"`
	IntervalDays int        `db:"interval_days"`
	NextReviewAt *time.Time `db:"next_review_at"`
	LastScore    *int       `db:"last_score"`

	TagTopic      *string `db:"tag_topic"`
	TagPattern    *string `db:"tag_pattern"`
	TagConfidence *int    `db:"tag_confidence"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// New creates an unprocessed memo at level 0 for the given source text.
func New(sourceText string) Memo {
	return Memo{
		ID:         uuid.NewString(),
		SourceText: sourceText,
		Status:     StatusUnprocessed,
	}
}

// IsDue reports whether the memo's next review time has passed.
// A memo without a scheduled review is never due.
func (m Memo) IsDue(now time.Time) bool {
	return m.NextReviewAt != nil && !m.NextReviewAt.After(now)
}

// HasReferenceAnswer reports whether a reference answer has been generated.
func (m Memo) HasReferenceAnswer() bool {
	return m.ReferenceAnswer != nil && *m.ReferenceAnswer != ""
}

// Alternatives decodes the stored alternative phrasings.
// Returns nil when none are stored or the stored value is malformed.
func (m Memo) Alternatives() []string {
	if m.AlternativesJSON == nil || *m.AlternativesJSON == "" {
		return nil
	}
	var alts []string
	if err := json.Unmarshal([]byte(*m.AlternativesJSON), &alts); err != nil {
		return nil
	}
	return alts
}

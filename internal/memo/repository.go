package memo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/memo/mock_repository.go -package=mock_memo

// ErrNotFound is returned when a memo does not exist in the store.
var ErrNotFound = errors.New("memo not found")

// ReviewPatch holds the scheduling fields written back after a graded review.
type ReviewPatch struct {
	Status       Status
	Level        int
	IntervalDays int
	NextReviewAt time.Time
	LastScore    int
}

// GenerationPatch holds the fields produced by reference answer generation.
type GenerationPatch struct {
	ReferenceAnswer string
	Alternatives    []string
	NotesJA         string
	ExampleEN       string
	ExampleJA       string
}

// TagPatch holds the classification fields produced by tagging.
type TagPatch struct {
	Topic      string
	Pattern    string
	Confidence int
}

// Repository defines operations for managing memos.
type Repository interface {
	FindAll(ctx context.Context) ([]Memo, error)
	FindByStatus(ctx context.Context, status Status) ([]Memo, error)
	FindDue(ctx context.Context, now time.Time) ([]Memo, error)
	GetByID(ctx context.Context, id string) (Memo, error)
	Create(ctx context.Context, m *Memo) error
	UpdateReview(ctx context.Context, id string, patch ReviewPatch) (Memo, error)
	UpdateGeneration(ctx context.Context, id string, patch GenerationPatch) (Memo, error)
	UpdateTag(ctx context.Context, id string, patch TagPatch) (Memo, error)
	SetStatus(ctx context.Context, id string, status Status) (Memo, error)
	Delete(ctx context.Context, id string) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns all memos, newest first.
func (r *DBRepository) FindAll(ctx context.Context) ([]Memo, error) {
	var memos []Memo
	if err := r.db.SelectContext(ctx, &memos, "SELECT * FROM memos ORDER BY created_at DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(memos) > %w", err)
	}
	return memos, nil
}

// FindByStatus returns all memos with the given status, newest first.
func (r *DBRepository) FindByStatus(ctx context.Context, status Status) ([]Memo, error) {
	var memos []Memo
	if err := r.db.SelectContext(ctx, &memos,
		"SELECT * FROM memos WHERE status = ? ORDER BY created_at DESC", status); err != nil {
		return nil, fmt.Errorf("db.SelectContext(memos by status) > %w", err)
	}
	return memos, nil
}

// FindDue returns reviewed memos whose next review date has arrived, the most
// overdue first.
func (r *DBRepository) FindDue(ctx context.Context, now time.Time) ([]Memo, error) {
	var memos []Memo
	if err := r.db.SelectContext(ctx, &memos,
		"SELECT * FROM memos WHERE next_review_at IS NOT NULL AND next_review_at <= ? ORDER BY next_review_at ASC", now); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due memos) > %w", err)
	}
	return memos, nil
}

// GetByID returns the memo with the given id or ErrNotFound.
func (r *DBRepository) GetByID(ctx context.Context, id string) (Memo, error) {
	var m Memo
	err := r.db.GetContext(ctx, &m, "SELECT * FROM memos WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Memo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Memo{}, fmt.Errorf("db.GetContext(memo) > %w", err)
	}
	return m, nil
}

// Create inserts a new memo.
func (r *DBRepository) Create(ctx context.Context, m *Memo) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO memos (id, source_text, status, level, interval_days) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.SourceText, m.Status, m.Level, m.IntervalDays); err != nil {
		return fmt.Errorf("db.ExecContext(insert memo) > %w", err)
	}
	return nil
}

// UpdateReview writes the scheduling state after a graded review and returns
// the updated memo. Only the review fields are touched.
func (r *DBRepository) UpdateReview(ctx context.Context, id string, patch ReviewPatch) (Memo, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return Memo{}, err
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE memos SET status = ?, level = ?, interval_days = ?, next_review_at = ?, last_score = ? WHERE id = ?`,
		patch.Status, patch.Level, patch.IntervalDays, patch.NextReviewAt, patch.LastScore, id); err != nil {
		return Memo{}, fmt.Errorf("db.ExecContext(update memo review) > %w", err)
	}
	return r.GetByID(ctx, id)
}

// UpdateGeneration writes the generated reference answer and returns the
// updated memo.
func (r *DBRepository) UpdateGeneration(ctx context.Context, id string, patch GenerationPatch) (Memo, error) {
	alternatives, err := json.Marshal(patch.Alternatives)
	if err != nil {
		return Memo{}, fmt.Errorf("json.Marshal(alternatives) > %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return Memo{}, err
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE memos SET reference_answer = ?, alternatives = ?, notes_ja = ?, example_en = ?, example_ja = ? WHERE id = ?`,
		patch.ReferenceAnswer, string(alternatives), patch.NotesJA, patch.ExampleEN, patch.ExampleJA, id); err != nil {
		return Memo{}, fmt.Errorf("db.ExecContext(update memo generation) > %w", err)
	}
	return r.GetByID(ctx, id)
}

// UpdateTag writes the classification fields and returns the updated memo.
func (r *DBRepository) UpdateTag(ctx context.Context, id string, patch TagPatch) (Memo, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return Memo{}, err
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE memos SET tag_topic = ?, tag_pattern = ?, tag_confidence = ? WHERE id = ?",
		patch.Topic, patch.Pattern, patch.Confidence, id); err != nil {
		return Memo{}, fmt.Errorf("db.ExecContext(update memo tag) > %w", err)
	}
	return r.GetByID(ctx, id)
}

// SetStatus updates the memo status and returns the updated memo.
func (r *DBRepository) SetStatus(ctx context.Context, id string, status Status) (Memo, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return Memo{}, err
	}
	if _, err := r.db.ExecContext(ctx, "UPDATE memos SET status = ? WHERE id = ?", status, id); err != nil {
		return Memo{}, fmt.Errorf("db.ExecContext(update memo status) > %w", err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a memo. Deletion is a user-initiated operation; the review
// flow itself never deletes memos.
func (r *DBRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM memos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete memo) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

package memo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestNew(t *testing.T) {
	m := New("傘を持ってくればよかった。")

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "傘を持ってくればよかった。", m.SourceText)
	assert.Equal(t, StatusUnprocessed, m.Status)
	assert.Equal(t, 0, m.Level)
	assert.Equal(t, 0, m.IntervalDays)
	assert.Nil(t, m.NextReviewAt)
	assert.Nil(t, m.ReferenceAnswer)

	other := New("傘を持ってくればよかった。")
	assert.NotEqual(t, m.ID, other.ID)
}

func TestMemo_IsDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		nextReviewAt *time.Time
		want         bool
	}{
		{name: "no schedule", nextReviewAt: nil, want: false},
		{name: "in the past", nextReviewAt: timePtr(now.Add(-time.Minute)), want: true},
		{name: "exactly now", nextReviewAt: timePtr(now), want: true},
		{name: "in the future", nextReviewAt: timePtr(now.Add(time.Minute)), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := Memo{NextReviewAt: tc.nextReviewAt}
			assert.Equal(t, tc.want, m.IsDue(now))
		})
	}
}

func TestMemo_HasReferenceAnswer(t *testing.T) {
	assert.False(t, Memo{}.HasReferenceAnswer())
	assert.False(t, Memo{ReferenceAnswer: strPtr("")}.HasReferenceAnswer())
	assert.True(t, Memo{ReferenceAnswer: strPtr("I should have brought an umbrella.")}.HasReferenceAnswer())
}

func TestMemo_Alternatives(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		want   []string
	}{
		{name: "nothing stored", stored: nil, want: nil},
		{name: "empty string", stored: strPtr(""), want: nil},
		{name: "empty array", stored: strPtr("[]"), want: []string{}},
		{
			name:   "two alternatives",
			stored: strPtr(`["I wish I had brought an umbrella.","I should've taken an umbrella."]`),
			want:   []string{"I wish I had brought an umbrella.", "I should've taken an umbrella."},
		},
		{name: "malformed JSON", stored: strPtr(`["unclosed`), want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := Memo{AlternativesJSON: tc.stored}
			assert.Equal(t, tc.want, m.Alternatives())
		})
	}
}

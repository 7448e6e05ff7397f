// Package inference defines the AI inference operations the application
// depends on: grading free-text answers, generating reference translations,
// and classifying memos.
package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	GradeAnswer(ctx context.Context, params GradeAnswerRequest) (GradeAnswerResponse, error)
	Translate(ctx context.Context, params TranslateRequest) (TranslateResponse, error)
	ClassifyMemo(ctx context.Context, params ClassifyMemoRequest) (ClassifyMemoResponse, error)
}

// GradeAnswerRequest holds a single answer to grade against a reference.
type GradeAnswerRequest struct {
	Question        string `json:"question"`
	ReferenceAnswer string `json:"reference_answer"`
	UserAnswer      string `json:"user_answer"`
}

// GradeAnswerResponse is the normalized grading result. Models have returned
// the corrected phrasing under several keys over time ("bestFix", "best",
// "english"); the client normalizes all of them into BestFix before this
// struct reaches the rest of the application.
type GradeAnswerResponse struct {
	Score    int    `json:"score"`
	ReasonJA string `json:"reason_ja"`
	BestFix  string `json:"best_fix"`
}

// TranslateRequest holds a Japanese phrase to express in English.
type TranslateRequest struct {
	SourceText string `json:"source_text"`
}

// TranslateResponse holds the generated reference answer with study notes.
type TranslateResponse struct {
	Best          string   `json:"best"`
	Alternatives  []string `json:"alts"`
	NotesJA       string   `json:"notes_ja"`
	ExampleEN     string   `json:"example_en"`
	ExampleJA     string   `json:"example_ja"`
	PronounceText string   `json:"pronounce_text"`
}

// ClassifyMemoRequest holds a memo to classify into topic and grammar pattern.
type ClassifyMemoRequest struct {
	SourceText      string `json:"source_text"`
	ReferenceAnswer string `json:"reference_answer"`
}

// ClassifyMemoResponse holds the classification with the model's confidence.
type ClassifyMemoResponse struct {
	Topic      string `json:"topic"`
	Pattern    string `json:"pattern"`
	Confidence int    `json:"confidence"`
}

const (
	DefaultMaxRetryAttempts = 3
)

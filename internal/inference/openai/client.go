// Package openai implements the inference.Client interface against the
// OpenAI chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/inference"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

// NewClient creates an OpenAI-backed inference client. A non-positive timeout
// disables the per-request deadline.
func NewClient(apiKey, model string, retryAttempts uint, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// withRetry runs call with backoff, giving up immediately on errors that
// retrying cannot fix.
func (client *Client) withRetry(ctx context.Context, call func() error) error {
	return retry.Do(
		func() error {
			if err := call(); err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// complete posts a chat completion request and returns the first choice's
// content.
func (client *Client) complete(ctx context.Context, requestBody ChatCompletionRequest) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)
	return content, nil
}

// GradeAnswer implements the inference.Client interface
func (client *Client) GradeAnswer(
	ctx context.Context,
	params inference.GradeAnswerRequest,
) (inference.GradeAnswerResponse, error) {
	var result inference.GradeAnswerResponse
	if err := client.withRetry(ctx, func() error {
		response, err := client.gradeAnswer(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	}); err != nil {
		return inference.GradeAnswerResponse{}, err
	}
	return result, nil
}

// gradeAnswerPayload matches the model's JSON output. Older prompt revisions
// returned the corrected phrasing under "best" or "english" instead of
// "bestFix", so all three are accepted here and normalized.
type gradeAnswerPayload struct {
	Score    int    `json:"score"`
	ReasonJA string `json:"reasonJa"`
	BestFix  string `json:"bestFix"`
	Best     string `json:"best"`
	English  string `json:"english"`
}

func (p gradeAnswerPayload) bestFix() string {
	if p.BestFix != "" {
		return p.BestFix
	}
	if p.Best != "" {
		return p.Best
	}
	return p.English
}

func (client *Client) gradeAnswer(
	ctx context.Context,
	params inference.GradeAnswerRequest,
) (inference.GradeAnswerResponse, error) {
	prompt := fmt.Sprintf(`
Question: "%s"
User Answer: "%s"
Correct Answer: "%s"

Grade the user's answer (0-100).
Explain why in Japanese.
Provide a better native phrasing if needed.

Return JSON:
{
  "score": number,
  "reasonJa": "string",
  "bestFix": "string"
}
`, params.Question, params.UserAnswer, params.ReferenceAnswer)

	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.3,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a strict but encouraging English teacher. Output JSON only."},
			{Role: RoleUser, Content: prompt},
		},
	}

	content, err := client.complete(ctx, requestBody)
	if err != nil {
		return inference.GradeAnswerResponse{}, fmt.Errorf("complete(grade) > %w", err)
	}

	var decoded gradeAnswerPayload
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		return inference.GradeAnswerResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return inference.GradeAnswerResponse{
		Score:    decoded.Score,
		ReasonJA: decoded.ReasonJA,
		BestFix:  decoded.bestFix(),
	}, nil
}

// Translate implements the inference.Client interface
func (client *Client) Translate(
	ctx context.Context,
	params inference.TranslateRequest,
) (inference.TranslateResponse, error) {
	var result inference.TranslateResponse
	if err := client.withRetry(ctx, func() error {
		response, err := client.translate(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	}); err != nil {
		return inference.TranslateResponse{}, err
	}
	return result, nil
}

type translatePayload struct {
	Best          string   `json:"best"`
	Alts          []string `json:"alts"`
	NotesJA       string   `json:"notesJa"`
	ExampleEN     string   `json:"exampleEn"`
	ExampleJA     string   `json:"exampleJa"`
	PronounceText string   `json:"pronounceText"`
}

func (client *Client) translate(
	ctx context.Context,
	params inference.TranslateRequest,
) (inference.TranslateResponse, error) {
	prompt := fmt.Sprintf(`
You are a helpful English teacher for Japanese speakers.
The user wants to express the following Japanese concept in English:
Translate to natural, speaking-style English: "%s"

Requirements:
1. "best": The most natural, common expression for casual conversation.
2. "alts": Exactly 2 alternative expressions (formal or slang).
3. "notesJa": meaningful explanation in JAPANESE (2-3 lines). Explain *why* this English is natural, or grammar points (e.g. "現在完了形", "助動詞").
4. "exampleEn": A short example sentence using the "best" expression.
5. "exampleJa": Japanese translation of the example.
6. "pronounceText": Text for TTS (usually same as "best").

Return strict JSON:
{
  "best": "string",
  "alts": ["string", "string"],
  "notesJa": "string",
  "exampleEn": "string",
  "exampleJa": "string",
  "pronounceText": "string"
}
`, params.SourceText)

	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.3,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a helpful translator. Output JSON only."},
			{Role: RoleUser, Content: prompt},
		},
	}

	content, err := client.complete(ctx, requestBody)
	if err != nil {
		return inference.TranslateResponse{}, fmt.Errorf("complete(translate) > %w", err)
	}

	var decoded translatePayload
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		return inference.TranslateResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return inference.TranslateResponse{
		Best:          decoded.Best,
		Alternatives:  decoded.Alts,
		NotesJA:       decoded.NotesJA,
		ExampleEN:     decoded.ExampleEN,
		ExampleJA:     decoded.ExampleJA,
		PronounceText: decoded.PronounceText,
	}, nil
}

// ClassifyMemo implements the inference.Client interface
func (client *Client) ClassifyMemo(
	ctx context.Context,
	params inference.ClassifyMemoRequest,
) (inference.ClassifyMemoResponse, error) {
	var result inference.ClassifyMemoResponse
	if err := client.withRetry(ctx, func() error {
		response, err := client.classifyMemo(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	}); err != nil {
		return inference.ClassifyMemoResponse{}, err
	}
	return result, nil
}

func (client *Client) classifyMemo(
	ctx context.Context,
	params inference.ClassifyMemoRequest,
) (inference.ClassifyMemoResponse, error) {
	prompt := fmt.Sprintf(`
Analyze the following text pair (Japanese intention and best English classification):
JP: "%s"
EN: "%s"

Task: Classify into "Category" and "Grammar Pattern".
1. Category: Choose ONE from [Request, Apology, Refusal, Proposal, Question, Impression, Empathy, Plan, Health, Study, Work, Chat, Other].
2. Pattern: Identify the key grammatical pattern used in English. Examples: "Could you", "I want to", "It depends", "How about", "Present Perfect", "Passive", etc. Keep it short (2-3 words).
3. Confidence: 0-100 integer indicating how confident you are in this classification.

Return JSON:
{
  "topic": "CategoryName",
  "pattern": "PatternName",
  "confidence": 80
}
`, params.SourceText, params.ReferenceAnswer)

	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.3,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a linguistic analyzer. Output strict JSON."},
			{Role: RoleUser, Content: prompt},
		},
	}

	content, err := client.complete(ctx, requestBody)
	if err != nil {
		return inference.ClassifyMemoResponse{}, fmt.Errorf("complete(classify) > %w", err)
	}

	var decoded inference.ClassifyMemoResponse
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		return inference.ClassifyMemoResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return decoded, nil
}

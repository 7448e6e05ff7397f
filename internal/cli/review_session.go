// Package cli implements the interactive review session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/grading"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/review"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/srs"
)

var errEnd = errors.New("end")

// Session is a single interactive step of a review loop.
type Session interface {
	Session(ctx context.Context) error
}

// ReviewSessionCLI runs an interactive review session on the terminal.
type ReviewSessionCLI struct {
	service      *review.Service
	prompts      []review.Prompt
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	now          func() time.Time
}

// NewReviewSessionCLI creates a review session CLI reading from stdin.
func NewReviewSessionCLI(service *review.Service) *ReviewSessionCLI {
	return &ReviewSessionCLI{
		service:      service,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		now:          time.Now,
	}
}

// Start selects today's memos and runs the session loop until the prompts
// run out, the user quits, or an interrupt arrives.
func (r *ReviewSessionCLI) Start(ctx context.Context) error {
	prompts, err := r.service.StartSession(ctx, r.now())
	if err != nil {
		return fmt.Errorf("service.StartSession() > %w", err)
	}
	if len(prompts) == 0 {
		fmt.Fprintln(r.stdoutWriter, "今日レビューするメモはありません。")
		return nil
	}
	r.prompts = prompts

	fmt.Fprintf(r.stdoutWriter, "今日のレビュー: %d件 (quit で終了)\n\n", len(prompts))
	return r.Run(ctx, r)
}

func (r *ReviewSessionCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(r.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

func (r *ReviewSessionCLI) Session(ctx context.Context) error {
	if len(r.prompts) == 0 {
		fmt.Fprintln(r.stdoutWriter, "今日のレビューは以上です！")
		return errEnd
	}
	current := r.prompts[0]

	_, _ = r.bold.Fprintf(r.stdoutWriter, "%s\n", current.SourceText)
	fmt.Fprint(r.stdoutWriter, "英語で: ")

	input, err := r.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	userAnswer := strings.TrimSpace(input)
	if userAnswer == "quit" || userAnswer == "exit" {
		fmt.Fprintln(r.stdoutWriter, "レビューを終了します。")
		return errEnd
	}

	result, err := r.service.SubmitAnswer(ctx, current.MemoID, userAnswer, r.now())
	if errors.Is(err, grading.ErrUnavailable) {
		// Keep the card so the same prompt is asked again.
		color.Yellow("採点サービスに接続できませんでした。もう一度入力してください。")
		return nil
	}
	if err != nil {
		return fmt.Errorf("service.SubmitAnswer() > %w", err)
	}

	r.printGrade(result)
	r.prompts = r.prompts[1:]
	return nil
}

func (r *ReviewSessionCLI) printGrade(result review.SubmitResult) {
	score := result.Grade.Score
	switch {
	case score >= srs.PassScore:
		fmt.Fprint(r.stdoutWriter, "✅ ")
		color.Green("%d点", score)
	case score >= srs.FailScore:
		fmt.Fprint(r.stdoutWriter, "⚠️ ")
		color.Yellow("%d点", score)
	default:
		fmt.Fprint(r.stdoutWriter, "❌ ")
		color.Red("%d点", score)
	}

	if result.Grade.Feedback != "" {
		fmt.Fprintln(r.stdoutWriter, result.Grade.Feedback)
	}
	if result.Grade.CorrectedAnswer != "" {
		fmt.Fprintf(r.stdoutWriter, "模範解答: %s\n", r.italic.Sprintf("%s", result.Grade.CorrectedAnswer))
	}

	if result.Schedule.Graduated {
		fmt.Fprintln(r.stdoutWriter, "このメモは卒業しました！")
	} else {
		fmt.Fprintf(r.stdoutWriter, "次回のレビュー: %d日後\n", result.Schedule.IntervalDays)
	}
	fmt.Fprintln(r.stdoutWriter)
}

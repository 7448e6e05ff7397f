package grading

import (
	"context"
	"fmt"
	"time"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/inference"
)

// LLMGrader grades answers through an inference backend. Transport and
// model failures are wrapped in ErrUnavailable so callers can fall back
// to a heuristic grader.
type LLMGrader struct {
	client  inference.Client
	timeout time.Duration
}

func NewLLMGrader(client inference.Client, timeout time.Duration) *LLMGrader {
	return &LLMGrader{
		client:  client,
		timeout: timeout,
	}
}

func (g *LLMGrader) Grade(ctx context.Context, req Request) (Result, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res, err := g.client.GradeAnswer(ctx, inference.GradeAnswerRequest{
		Question:        req.Question,
		ReferenceAnswer: req.ReferenceAnswer,
		UserAnswer:      req.UserAnswer,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: client.GradeAnswer > %v", ErrUnavailable, err)
	}
	if err := validateScore(res.Score); err != nil {
		return Result{}, fmt.Errorf("client.GradeAnswer > %w", err)
	}

	return Result{
		Score:           res.Score,
		Feedback:        res.ReasonJA,
		CorrectedAnswer: res.BestFix,
	}, nil
}

package grading

import (
	"context"
	"strings"
)

// HeuristicGrader grades without a model. It only distinguishes an
// exact match, a plausible attempt, and everything else, and is used
// when no inference backend is configured or reachable.
type HeuristicGrader struct{}

func NewHeuristicGrader() *HeuristicGrader {
	return &HeuristicGrader{}
}

func (g *HeuristicGrader) Grade(_ context.Context, req Request) (Result, error) {
	answer := strings.TrimSpace(req.UserAnswer)
	reference := strings.TrimSpace(req.ReferenceAnswer)

	score := 20
	feedback := "惜しいです。もう一度確認しましょう。"
	if strings.EqualFold(answer, reference) {
		score = 100
		feedback = "正解です！よく覚えていますね。"
	} else if len(answer) > 3 {
		score = 60
	}

	return Result{
		Score:           score,
		Feedback:        feedback,
		CorrectedAnswer: reference,
	}, nil
}

package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/grading"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/memo"
	mock_grading "github.com/koutarou20820065963-netizen/eigomemo/internal/mocks/grading"
	mock_memo "github.com/koutarou20820065963-netizen/eigomemo/internal/mocks/memo"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/review"
)

func strPtr(s string) *string { return &s }

func newTestCLI(service *review.Service, prompts []review.Prompt, input string, output *bytes.Buffer, now time.Time) *ReviewSessionCLI {
	return &ReviewSessionCLI{
		service:      service,
		prompts:      prompts,
		stdinReader:  bufio.NewReader(strings.NewReader(input)),
		stdoutWriter: output,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		now:          func() time.Time { return now },
	}
}

func TestReviewSessionCLI_Session(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	prompt := review.Prompt{
		MemoID:          "memo-1",
		SourceText:      "駅までの道を教えてもらえますか？",
		ReferenceAnswer: "Could you tell me the way to the station?",
		Level:           1,
	}
	storedMemo := memo.Memo{
		ID:              "memo-1",
		SourceText:      prompt.SourceText,
		ReferenceAnswer: strPtr(prompt.ReferenceAnswer),
		Status:          memo.StatusUnprocessed,
		Level:           1,
	}

	t.Run("graded answer removes the card", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_memo.NewMockRepository(ctrl)
		grader := mock_grading.NewMockGrader(ctrl)
		store.EXPECT().GetByID(gomock.Any(), "memo-1").Return(storedMemo, nil)
		grader.EXPECT().Grade(gomock.Any(), gomock.Any()).
			Return(grading.Result{Score: 90, Feedback: "自然な表現です。", CorrectedAnswer: prompt.ReferenceAnswer}, nil)
		store.EXPECT().UpdateReview(gomock.Any(), "memo-1", gomock.Any()).Return(storedMemo, nil)

		var output bytes.Buffer
		cli := newTestCLI(review.NewService(store, grader, 3), []review.Prompt{prompt}, "Can you tell me the way to the station?\n", &output, now)

		require.NoError(t, cli.Session(context.Background()))
		assert.Empty(t, cli.prompts)
		assert.Contains(t, output.String(), prompt.SourceText)
		assert.Contains(t, output.String(), "自然な表現です。")
		assert.Contains(t, output.String(), "次回のレビュー: 3日後")
	})

	t.Run("quit ends the session without grading", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_memo.NewMockRepository(ctrl)
		grader := mock_grading.NewMockGrader(ctrl)

		var output bytes.Buffer
		cli := newTestCLI(review.NewService(store, grader, 3), []review.Prompt{prompt}, "quit\n", &output, now)

		err := cli.Session(context.Background())
		assert.ErrorIs(t, err, errEnd)
		assert.Len(t, cli.prompts, 1)
	})

	t.Run("no cards left ends the session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_memo.NewMockRepository(ctrl)
		grader := mock_grading.NewMockGrader(ctrl)

		var output bytes.Buffer
		cli := newTestCLI(review.NewService(store, grader, 3), nil, "", &output, now)

		err := cli.Session(context.Background())
		assert.ErrorIs(t, err, errEnd)
		assert.Contains(t, output.String(), "今日のレビューは以上です！")
	})

	t.Run("unavailable grader keeps the card", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_memo.NewMockRepository(ctrl)
		grader := mock_grading.NewMockGrader(ctrl)
		store.EXPECT().GetByID(gomock.Any(), "memo-1").Return(storedMemo, nil)
		grader.EXPECT().Grade(gomock.Any(), gomock.Any()).Return(grading.Result{}, grading.ErrUnavailable)

		var output bytes.Buffer
		cli := newTestCLI(review.NewService(store, grader, 3), []review.Prompt{prompt}, "an answer\n", &output, now)

		require.NoError(t, cli.Session(context.Background()))
		assert.Len(t, cli.prompts, 1)
	})

	t.Run("graduation is announced", func(t *testing.T) {
		topLevel := storedMemo
		topLevel.Level = 5

		ctrl := gomock.NewController(t)
		store := mock_memo.NewMockRepository(ctrl)
		grader := mock_grading.NewMockGrader(ctrl)
		store.EXPECT().GetByID(gomock.Any(), "memo-1").Return(topLevel, nil)
		grader.EXPECT().Grade(gomock.Any(), gomock.Any()).Return(grading.Result{Score: 95}, nil)
		store.EXPECT().UpdateReview(gomock.Any(), "memo-1", gomock.Any()).Return(topLevel, nil)

		var output bytes.Buffer
		cli := newTestCLI(review.NewService(store, grader, 3), []review.Prompt{prompt}, "Could you tell me the way to the station?\n", &output, now)

		require.NoError(t, cli.Session(context.Background()))
		assert.Contains(t, output.String(), "このメモは卒業しました！")
	})
}

func TestReviewSessionCLI_Start(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("nothing to review", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_memo.NewMockRepository(ctrl)
		grader := mock_grading.NewMockGrader(ctrl)
		store.EXPECT().FindAll(gomock.Any()).Return([]memo.Memo{}, nil)

		var output bytes.Buffer
		cli := newTestCLI(review.NewService(store, grader, 3), nil, "", &output, now)

		require.NoError(t, cli.Start(context.Background()))
		assert.Contains(t, output.String(), "今日レビューするメモはありません。")
	})

	t.Run("store failure is surfaced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_memo.NewMockRepository(ctrl)
		grader := mock_grading.NewMockGrader(ctrl)
		store.EXPECT().FindAll(gomock.Any()).Return(nil, assert.AnError)

		var output bytes.Buffer
		cli := newTestCLI(review.NewService(store, grader, 3), nil, "", &output, now)

		assert.Error(t, cli.Start(context.Background()))
	})
}

func TestReviewSessionCLI_Run(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("loop stops at errEnd", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_memo.NewMockRepository(ctrl)
		grader := mock_grading.NewMockGrader(ctrl)

		var output bytes.Buffer
		cli := newTestCLI(review.NewService(store, grader, 3), nil, "", &output, now)

		require.NoError(t, cli.Run(context.Background(), cli))
		assert.Contains(t, output.String(), "今日のレビューは以上です！")
	})
}

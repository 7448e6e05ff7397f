package grading

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/inference"
	mock_inference "github.com/koutarou20820065963-netizen/eigomemo/internal/mocks/inference"
)

func TestLLMGrader_Grade(t *testing.T) {
	req := Request{
		Question:        "駅までの道を教えてもらえますか？",
		ReferenceAnswer: "Could you tell me the way to the station?",
		UserAnswer:      "Can you tell me how to get to the station?",
	}

	tests := []struct {
		name        string
		response    inference.GradeAnswerResponse
		responseErr error
		want        Result
		wantErr     error
	}{
		{
			name: "successful grade",
			response: inference.GradeAnswerResponse{
				Score:    85,
				ReasonJA: "自然な言い方です。",
				BestFix:  "Could you tell me the way to the station?",
			},
			want: Result{
				Score:           85,
				Feedback:        "自然な言い方です。",
				CorrectedAnswer: "Could you tell me the way to the station?",
			},
		},
		{
			name:        "client error becomes unavailable",
			responseErr: errors.New("client.complete > response error 503"),
			wantErr:     ErrUnavailable,
		},
		{
			name: "score above 100 rejected",
			response: inference.GradeAnswerResponse{
				Score:    150,
				ReasonJA: "よくできました。",
			},
			wantErr: ErrInvalidScore,
		},
		{
			name: "negative score rejected",
			response: inference.GradeAnswerResponse{
				Score: -5,
			},
			wantErr: ErrInvalidScore,
		},
		{
			name: "zero score is valid",
			response: inference.GradeAnswerResponse{
				Score:    0,
				ReasonJA: "もう一度確認しましょう。",
				BestFix:  "Could you tell me the way to the station?",
			},
			want: Result{
				Score:           0,
				Feedback:        "もう一度確認しましょう。",
				CorrectedAnswer: "Could you tell me the way to the station?",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_inference.NewMockClient(ctrl)
			client.EXPECT().
				GradeAnswer(gomock.Any(), inference.GradeAnswerRequest{
					Question:        req.Question,
					ReferenceAnswer: req.ReferenceAnswer,
					UserAnswer:      req.UserAnswer,
				}).
				Return(tc.response, tc.responseErr)

			grader := NewLLMGrader(client, 5*time.Second)
			got, err := grader.Grade(context.Background(), req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLLMGrader_Grade_AppliesTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_inference.NewMockClient(ctrl)
	client.EXPECT().
		GradeAnswer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ inference.GradeAnswerRequest) (inference.GradeAnswerResponse, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			return inference.GradeAnswerResponse{Score: 90}, nil
		})

	grader := NewLLMGrader(client, time.Minute)
	got, err := grader.Grade(context.Background(), Request{UserAnswer: "I went there."})
	assert.NoError(t, err)
	assert.Equal(t, 90, got.Score)
}

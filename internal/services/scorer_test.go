package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScoreParsesEvaluation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatResponse("SCORE: 8.5\nFEEDBACK: Strong technical answers with good depth. Communication could be more concise.")))
	}))
	defer server.Close()

	llm := NewLLMClient(server.URL, "key", "model", 5*time.Second)
	scorer := NewScorerService(llm, NewPromptBuilder(), nil)

	score, feedback := scorer.Score(context.Background(), []string{"Q1"}, []string{"A1"})

	assert.Equal(t, 8.5, score)
	assert.Equal(t, "Strong technical answers with good depth. Communication could be more concise.", feedback)
}

func TestScoreNeutralWhenLLMDown(t *testing.T) {
	llm := NewLLMClient("http://127.0.0.1:1", "key", "model", time.Second)
	scorer := NewScorerService(llm, NewPromptBuilder(), nil)

	score, feedback := scorer.Score(context.Background(), []string{"Q1"}, []string{"A1"})

	assert.Equal(t, defaultScore, score)
	assert.Equal(t, defaultFailureFeedback, feedback)
}

func TestParseEvaluation(t *testing.T) {
	tests := []struct {
		name         string
		evaluation   string
		wantScore    float64
		wantFeedback string
	}{
		{
			name:         "well formed",
			evaluation:   "SCORE: 7\nFEEDBACK: Solid answers overall.",
			wantScore:    7,
			wantFeedback: "Solid answers overall.",
		},
		{
			name:         "lowercase labels",
			evaluation:   "score: 6.5\nfeedback: Decent responses.",
			wantScore:    6.5,
			wantFeedback: "Decent responses.",
		},
		{
			name:         "score above range is clamped",
			evaluation:   "SCORE: 15\nFEEDBACK: Too generous.",
			wantScore:    10,
			wantFeedback: "Too generous.",
		},
		{
			name:         "missing score keeps default",
			evaluation:   "FEEDBACK: No score given.",
			wantScore:    defaultScore,
			wantFeedback: "No score given.",
		},
		{
			name:         "missing feedback keeps default",
			evaluation:   "SCORE: 4",
			wantScore:    4,
			wantFeedback: defaultParsedFeedback,
		},
		{
			name:         "garbage keeps both defaults",
			evaluation:   "the model rambled",
			wantScore:    defaultScore,
			wantFeedback: defaultParsedFeedback,
		},
		{
			name:         "multiline feedback is kept whole",
			evaluation:   "SCORE: 9\nFEEDBACK: Great answers.\nVery thorough.",
			wantScore:    9,
			wantFeedback: "Great answers.\nVery thorough.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, feedback := parseEvaluation(tt.evaluation)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantFeedback, feedback)
		})
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, clampScore(-1))
	assert.Equal(t, 10.0, clampScore(12))
	assert.Equal(t, 7.5, clampScore(7.5))
}

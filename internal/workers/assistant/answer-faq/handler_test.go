// internal/workers/assistant/answer-faq/handler_test.go
package answerfaq

import (
	"context"
	"testing"

	"onboarding-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) *Handler {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	return NewHandler(cfg, logger.NewTestLogger(t), "hr@company.com", "(555) 123-4567")
}

func TestExecute_MatchesTopics(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		wantTopic string
	}{
		{"document upload", "How do I upload my documents?", "documents"},
		{"verification timeline", "How long does verification take?", "timeline"},
		{"manager lookup", "Who is my manager?", "manager"},
		{"supervisor synonym", "I don't know who my supervisor is", "manager"},
		{"benefits", "What benefits do I get?", "benefits"},
		{"office location", "Where is the office located?", "office"},
		{"case insensitive", "WHERE IS THE OFFICE?", "office"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t)

			output, err := h.Execute(context.Background(), &Input{Question: tt.question})
			require.NoError(t, err)

			assert.True(t, output.Matched)
			assert.Equal(t, tt.wantTopic, output.Topic)
			assert.NotEmpty(t, output.Answer)
		})
	}
}

func TestExecute_FirstRuleWins(t *testing.T) {
	h := createTestHandler(t)

	// Mentions both documents and time; the documents rule sits first.
	output, err := h.Execute(context.Background(), &Input{
		Question: "How long until my uploaded document is checked?",
	})
	require.NoError(t, err)
	assert.Equal(t, "documents", output.Topic)
}

func TestExecute_FallbackPointsAtHR(t *testing.T) {
	h := createTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Question: "Can I bring my dog to work?",
	})
	require.NoError(t, err)

	assert.False(t, output.Matched)
	assert.Equal(t, "fallback", output.Topic)
	assert.Contains(t, output.Answer, "hr@company.com")
	assert.Contains(t, output.Answer, "(555) 123-4567")
}

func TestExecute_AlwaysSuggestsQuickQuestions(t *testing.T) {
	h := createTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Question: ""})
	require.NoError(t, err)
	assert.Len(t, output.QuickQuestions, 5)
}

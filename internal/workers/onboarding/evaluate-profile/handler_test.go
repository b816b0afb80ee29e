// internal/workers/onboarding/evaluate-profile/handler_test.go
package evaluateprofile

import (
	"context"
	"testing"

	"onboarding-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) *Handler {
	cfg := LoadConfig()
	return NewHandler(cfg, logger.NewTestLogger(t))
}

func TestExecute_Scoring(t *testing.T) {
	tests := []struct {
		name            string
		input           Input
		wantDetail      int
		wantTier        int
		wantComplete    bool
		wantMissing     []string
	}{
		{
			name:         "name and email only",
			input:        Input{Email: "sam@company.com", Name: "Sam Ortiz"},
			wantDetail:   80,
			wantTier:     60,
			wantComplete: false,
			wantMissing:  []string{"profilePicture"},
		},
		{
			name: "full profile",
			input: Input{
				Email:             "sam@company.com",
				Name:              "Sam Ortiz",
				ProfilePictureURL: "https://cdn.company.com/avatars/sam.png",
			},
			wantDetail:   100,
			wantTier:     100,
			wantComplete: true,
			wantMissing:  []string{},
		},
		{
			name:         "empty snapshot",
			input:        Input{},
			wantDetail:   40,
			wantTier:     20,
			wantComplete: false,
			wantMissing:  []string{"name", "email", "profilePicture"},
		},
		{
			name:         "picture without identity",
			input:        Input{ProfilePictureURL: "https://cdn.company.com/avatars/x.png"},
			wantDetail:   40,
			wantTier:     20,
			wantComplete: false,
			wantMissing:  []string{"name", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t)

			output, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDetail, output.DetailScore)
			assert.Equal(t, tt.wantTier, output.HeaderTier)
			assert.Equal(t, tt.wantComplete, output.ProfileComplete)
			assert.Equal(t, tt.wantMissing, output.MissingFields)
		})
	}
}

func TestExecute_ExtraFieldsDoNotAffectScores(t *testing.T) {
	h := createTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Email:        "sam@company.com",
		Name:         "Sam Ortiz",
		Department:   "Engineering",
		Position:     "Backend Engineer",
		Manager:      "Dana Wu",
		WorkLocation: "Austin",
		StartDate:    "2026-09-15",
	})
	require.NoError(t, err)

	assert.Equal(t, 80, output.DetailScore)
	assert.Equal(t, 60, output.HeaderTier)
	assert.False(t, output.ProfileComplete)
}

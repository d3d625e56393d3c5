package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTripRequest(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want TripRequest
	}{
		{"plain", `{"from":"Yaba","to":"Lekki","date":"2025-05-21"}`, TripRequest{From: "Yaba", To: "Lekki", Date: "2025-05-21"}},
		{"fenced", "```json\n{\"from\":\"Ikeja\"}\n```", TripRequest{From: "Ikeja"}},
		{"empty object", `{}`, TripRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeTripRequest(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}

	_, err := decodeTripRequest("not json")
	assert.Error(t, err)
}

func TestBuildTripPrompt(t *testing.T) {
	today := time.Date(2025, 12, 31, 9, 0, 0, 0, time.UTC)
	prompt := buildTripPrompt("bus to lekki tomorrow", []string{"Ikeja", "Lekki"}, today)
	assert.Contains(t, prompt, "Today's date is 2025-12-31")
	assert.Contains(t, prompt, "it means 2026-01-01")
	assert.Contains(t, prompt, "Ikeja, Lekki")
	assert.Contains(t, prompt, `"bus to lekki tomorrow"`)
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), " ", "")
	assert.Error(t, err)
}

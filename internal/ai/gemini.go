package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.5-flash"

// GeminiProvider implements TripParser using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a Gemini client constrained to the trip JSON schema.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = tripSchema
	model.SetTemperature(0.2)

	return &GeminiProvider{client: client, model: model}, nil
}

var tripSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"from": {Type: genai.TypeString, Description: "The departure location from the provided list."},
		"to":   {Type: genai.TypeString, Description: "The destination location from the provided list."},
		"date": {Type: genai.TypeString, Description: "The date of travel in YYYY-MM-DD format."},
	},
}

func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) ParseTripRequest(ctx context.Context, query string, locations []string, today time.Time) (*TripRequest, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(buildTripPrompt(query, locations, today)))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}
	return decodeTripRequest(responseText.String())
}

func buildTripPrompt(query string, locations []string, today time.Time) string {
	return fmt.Sprintf(`Parse the following user request for a bus trip within Lagos, Nigeria. Extract the departure location, destination location, and date.
Today's date is %s. If the user says 'tomorrow', it means %s.
The valid locations are: %s. If a location is mentioned that is not in the list, find the closest match from the list.
If date is not mentioned, leave it empty.
Request: %q`,
		today.Format(time.DateOnly),
		today.AddDate(0, 0, 1).Format(time.DateOnly),
		strings.Join(locations, ", "),
		query,
	)
}

func decodeTripRequest(raw string) (*TripRequest, error) {
	clean := cleanJSONString(raw)
	var result TripRequest
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, clean)
	}
	return &result, nil
}

// cleanJSONString strips markdown fences the model sometimes adds despite JSON mode.
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

package reviewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"statement-ledger/internal/models"
)

// Suggester proposes a subcategory label for a review group. Suggestions
// are shown to the reviewer and never applied without confirmation.
type Suggester interface {
	Suggest(ctx context.Context, group Group) (string, error)
}

// GeminiSuggester asks a Gemini model to pick a label from the known
// subcategory names.
type GeminiSuggester struct {
	client *genai.Client
	model  string
}

// NewGeminiSuggester creates a suggester backed by the Gemini API.
func NewGeminiSuggester(ctx context.Context, apiKey, model string) (*GeminiSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("suggester: API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("suggester: failed to create client: %w", err)
	}
	return &GeminiSuggester{client: client, model: model}, nil
}

// Close releases the underlying API client.
func (g *GeminiSuggester) Close() error {
	return g.client.Close()
}

// Suggest returns a label for the group, constrained to the known
// subcategory names. An answer outside that set is discarded.
func (g *GeminiSuggester) Suggest(ctx context.Context, group Group) (string, error) {
	names := models.SubCategoryNames()
	prompt := fmt.Sprintf(
		"You are labeling bank statement transactions.\n"+
			"Transaction description: %q\n"+
			"Pick the single best matching label from this list and answer with the label only:\n%s",
		group.Sample, strings.Join(names, "\n"))

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("suggester: generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("suggester: empty response")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("suggester: unexpected response part type")
	}
	answer := strings.TrimSpace(string(text))
	for _, name := range names {
		if strings.EqualFold(answer, name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("suggester: answer %q is not a known label", answer)
}

// StaticSuggester returns a fixed mapping, used in tests and as a
// no-network fallback.
type StaticSuggester struct {
	Labels map[string]string // grouping key -> label
}

func (s *StaticSuggester) Suggest(_ context.Context, group Group) (string, error) {
	if label, found := s.Labels[group.Key]; found {
		return label, nil
	}
	return "", fmt.Errorf("suggester: no suggestion for %q", group.Key)
}

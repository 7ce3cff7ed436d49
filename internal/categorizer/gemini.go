package categorizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/models"
)

// geminiConfidence is the confidence reported for Gemini answers. The API
// returns no calibrated score, so a fixed high-trust value is used.
const geminiConfidence = 0.8

// GeminiPredictor categorizes descriptions with the Gemini API. It satisfies
// the Predictor interface so it can stand in for the offline model.
type GeminiPredictor struct {
	apiKey    string
	modelName string
	logger    logging.Logger

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiPredictor creates a predictor backed by the given API key and
// model name. The client is created lazily on first use.
func NewGeminiPredictor(apiKey, modelName string, logger logging.Logger) *GeminiPredictor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &GeminiPredictor{
		apiKey:    apiKey,
		modelName: modelName,
		logger:    logger,
	}
}

// Name implements Predictor.
func (g *GeminiPredictor) Name() string { return "gemini" }

func (g *GeminiPredictor) ensureClient(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return nil
	}
	if g.apiKey == "" {
		return fmt.Errorf("gemini API key not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	g.model = client.GenerativeModel(g.modelName)
	return nil
}

// Predict implements Predictor. It asks Gemini to pick exactly one of the
// known spending categories for the description.
func (g *GeminiPredictor) Predict(ctx context.Context, description string) (string, float64, error) {
	if err := g.ensureClient(ctx); err != nil {
		return "", 0, err
	}

	names := make([]string, len(models.AllCategories))
	for i, c := range models.AllCategories {
		names[i] = string(c)
	}

	prompt := fmt.Sprintf(`Categorize the following expense description:
%s

Assign it to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		description,
		strings.Join(names, ", "))

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", 0, fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", 0, fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := extractCategoryLine(responseText)
	if category == "" {
		// No structured line, scan for a known category name anywhere.
		lower := strings.ToLower(responseText)
		for _, name := range names {
			if strings.Contains(lower, strings.ToLower(name)) {
				category = name
				break
			}
		}
	}
	if category == "" {
		return "", 0, fmt.Errorf("could not extract category from Gemini response")
	}

	g.logger.WithFields(
		logging.Field{Key: "category", Value: category},
		logging.Field{Key: "model", Value: g.modelName},
	).Debug("Gemini categorized description")

	return category, geminiConfidence, nil
}

// Close releases the underlying API client.
func (g *GeminiPredictor) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	g.model = nil
	return err
}

func extractCategoryLine(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
		}
	}
	return ""
}

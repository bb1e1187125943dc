package narrative

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/shared/types"
	"google.golang.org/genai"
)

// DefaultModel é o modelo usado quando nenhum é configurado.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = "You write short, factual variance commentary for finance teams. " +
	"Never invent numbers that are not in the context. Plain text only, no Markdown tables."

// GeminiRepository gera narrativas financeiras com o Gemini.
type GeminiRepository struct {
	apiKey string
	model  string
}

// NewGeminiRepository cria o gerador. Sem apiKey usa GEMINI_API_KEY ou GOOGLE_API_KEY.
func NewGeminiRepository(apiKey, model string) *GeminiRepository {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiRepository{apiKey: apiKey, model: model}
}

// Model devolve o modelo configurado.
func (r *GeminiRepository) Model() string {
	return r.model
}

func (r *GeminiRepository) GenerateNarrative(ctx context.Context, prompt string, insight entity.InsightContext) (string, error) {
	if r.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  r.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("narrative for %s: generate content: %w", insight.Period, err)
	}

	text := cleanModelText(resp.Text())
	if text == "" {
		return "", types.ErrEmptyNarrative
	}
	return text, nil
}

// cleanModelText remove cercas de código que o modelo às vezes devolve.
func cleanModelText(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if i := strings.Index(text, "\n"); i >= 0 {
			text = text[i+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/domain/repository"
	"github.com/diillson/finops-variance-go/internal/logger"
)

// NarrativeFallbackMessage é exibida quando o gerador de narrativas falha.
const NarrativeFallbackMessage = "Sorry, the financial analysis could not be generated right now. Please try again in a few moments."

const defaultInsightQuestion = "Summarize the month: what is off budget, what is trending badly, and where should the team look first?"

// InsightUseCase monta o prompt a partir do contexto compacto e chama o
// gerador de narrativas.
type InsightUseCase struct {
	narrativeRepo repository.NarrativeRepository
}

// NewInsightUseCase cria o caso de uso. narrativeRepo pode ser nil.
func NewInsightUseCase(narrativeRepo repository.NarrativeRepository) *InsightUseCase {
	return &InsightUseCase{narrativeRepo: narrativeRepo}
}

// GenerateInsight nunca devolve erro: qualquer falha vira a mensagem fixa.
func (uc *InsightUseCase) GenerateInsight(ctx context.Context, question string, insight entity.InsightContext) string {
	log := logger.FromContext(ctx)

	if uc.narrativeRepo == nil {
		log.Warn().Msg("no narrative generator configured")
		return NarrativeFallbackMessage
	}

	prompt, err := BuildInsightPrompt(question, insight)
	if err != nil {
		log.Error().Err(err).Msg("failed to build insight prompt")
		return NarrativeFallbackMessage
	}

	text, err := uc.narrativeRepo.GenerateNarrative(ctx, prompt, insight)
	if err != nil {
		log.Error().Err(err).Msg("narrative generation failed")
		return NarrativeFallbackMessage
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn().Msg("narrative generator returned an empty answer")
		return NarrativeFallbackMessage
	}
	return text
}

// BuildInsightPrompt serializa o contexto e acrescenta a pergunta do usuário.
func BuildInsightPrompt(question string, insight entity.InsightContext) (string, error) {
	payload, err := json.MarshalIndent(insight, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error serializing insight context: %w", err)
	}

	question = strings.TrimSpace(question)
	if question == "" {
		question = defaultInsightQuestion
	}

	var b strings.Builder
	b.WriteString("You are a financial controller reviewing the monthly variance report of a multi-company group.\n")
	b.WriteString("Percentages are variations against budget, previous month and the same month of the previous year.\n")
	b.WriteString("Expense accounts are bad when above budget, revenue and margin accounts are bad when below budget.\n")
	b.WriteString("Answer in plain language, in short paragraphs, and cite the accounts by name.\n\n")
	fmt.Fprintf(&b, "Period: %s\n\n", insight.Period)
	b.WriteString("Context (JSON):\n")
	b.Write(payload)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n")
	return b.String(), nil
}

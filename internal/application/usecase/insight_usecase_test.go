package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

func sampleInsight() entity.InsightContext {
	return entity.InsightContext{
		Period:  "MARÇO/2024",
		Summary: entity.Summary{CriticalCount: 1, OverallHealth: entity.SeverityCritical},
		TopCritical: []entity.CompactAlert{{
			Account:           "Despesa Operacional",
			Department:        "ADM",
			RealValue:         120000,
			BudgetValue:       100000,
			VariationVsBudget: 20,
			Trend:             entity.TrendUp,
		}},
		TopWarning: []entity.CompactAlert{},
	}
}

func TestInsightUseCase_GenerateInsight(t *testing.T) {
	narrative := &fakeNarrative{text: "  Expenses are 20% above budget.\n"}
	uc := NewInsightUseCase(narrative)

	text := uc.GenerateInsight(context.Background(), "Where are we overspending?", sampleInsight())
	require.Equal(t, "Expenses are 20% above budget.", text)
	require.Contains(t, narrative.prompt, "MARÇO/2024")
	require.Contains(t, narrative.prompt, "Despesa Operacional")
	require.Contains(t, narrative.prompt, "Where are we overspending?")
}

func TestInsightUseCase_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		narrative *fakeNarrative
	}{
		{name: "generator error", narrative: &fakeNarrative{err: errors.New("quota exceeded")}},
		{name: "empty answer", narrative: &fakeNarrative{text: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewInsightUseCase(tt.narrative)
			require.Equal(t, NarrativeFallbackMessage, uc.GenerateInsight(context.Background(), "", sampleInsight()))
		})
	}

	require.Equal(t, NarrativeFallbackMessage, NewInsightUseCase(nil).GenerateInsight(context.Background(), "", sampleInsight()))
}

func TestBuildInsightPrompt_DefaultQuestion(t *testing.T) {
	prompt, err := BuildInsightPrompt("", sampleInsight())
	require.NoError(t, err)
	require.Contains(t, prompt, defaultInsightQuestion)
	require.Contains(t, prompt, `"top_critical"`)
}

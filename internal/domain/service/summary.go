package service

import (
	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/shared/normalize"
)

// warningHealthLimit é a quantidade de avisos a partir da qual a saúde geral vira warning.
const warningHealthLimit = 3

var (
	revenueKeywords = []string{"receita"}
	marginKeywords  = []string{"margem", "lucro"}
	expenseHeadline = []string{"despesa"}
)

// BuildSummary consolida a lista de alertas. Lista vazia gera um resumo zerado com saúde ok.
func BuildSummary(alerts []entity.Alert) entity.Summary {
	var s entity.Summary
	for _, a := range alerts {
		switch a.Severity {
		case entity.SeverityCritical:
			s.CriticalCount++
		case entity.SeverityWarning:
			s.WarningCount++
		default:
			s.OkCount++
		}
	}

	switch {
	case s.CriticalCount > 0:
		s.OverallHealth = entity.SeverityCritical
	case s.WarningCount > warningHealthLimit:
		s.OverallHealth = entity.SeverityWarning
	default:
		s.OverallHealth = entity.SeverityOK
	}

	s.RevenueVsBudget = averageVariation(alerts, revenueKeywords)
	s.MarginVsBudget = averageVariation(alerts, marginKeywords)
	s.ExpensesVsBudget = averageVariation(alerts, expenseHeadline)
	return s
}

func averageVariation(alerts []entity.Alert, keywords []string) float64 {
	total, count := 0.0, 0
	for _, a := range alerts {
		if normalize.ContainsAny(a.AccountName, keywords...) {
			total += a.VariationVsBudget
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

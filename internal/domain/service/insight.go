package service

import "github.com/diillson/finops-variance-go/internal/domain/entity"

// TopOffenders é o tamanho máximo das listas de piores alertas.
const TopOffenders = 5

// TopAlerts devolve até n alertas da gravidade pedida. A lista deve estar
// ranqueada (RankAlerts), então os primeiros são os piores.
func TopAlerts(alerts []entity.Alert, severity entity.Severity, n int) []entity.Alert {
	out := make([]entity.Alert, 0, n)
	for _, a := range alerts {
		if len(out) == n {
			break
		}
		if a.Severity == severity {
			out = append(out, a)
		}
	}
	return out
}

// Compact projeta um alerta para o contexto de narrativa.
func Compact(a entity.Alert) entity.CompactAlert {
	return entity.CompactAlert{
		Account:           a.AccountName,
		Department:        a.Department,
		RealValue:         a.RealValue,
		BudgetValue:       a.BudgetValue,
		VariationVsBudget: a.VariationVsBudget,
		Trend:             a.Trend,
	}
}

// BuildInsightContext empacota período, resumo e piores ofensores.
// Não chama o gerador de narrativas.
func BuildInsightContext(period entity.Period, summary entity.Summary, alerts []entity.Alert) entity.InsightContext {
	ctx := entity.InsightContext{
		Period:      period.Label(),
		Summary:     summary,
		TopCritical: []entity.CompactAlert{},
		TopWarning:  []entity.CompactAlert{},
	}
	for _, a := range TopAlerts(alerts, entity.SeverityCritical, TopOffenders) {
		ctx.TopCritical = append(ctx.TopCritical, Compact(a))
	}
	for _, a := range TopAlerts(alerts, entity.SeverityWarning, TopOffenders) {
		ctx.TopWarning = append(ctx.TopWarning, Compact(a))
	}
	return ctx
}

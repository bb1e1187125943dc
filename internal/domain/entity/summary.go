package entity

// Summary é uma visão derivada da lista de alertas.
type Summary struct {
	CriticalCount    int      `json:"critical_count"`
	WarningCount     int      `json:"warning_count"`
	OkCount          int      `json:"ok_count"`
	OverallHealth    Severity `json:"overall_health"`
	RevenueVsBudget  float64  `json:"revenue_vs_budget"`
	MarginVsBudget   float64  `json:"margin_vs_budget"`
	ExpensesVsBudget float64  `json:"expenses_vs_budget"`
}

// InsightContext é o objeto compacto entregue ao gerador de narrativas.
type InsightContext struct {
	Period      string         `json:"period"`
	Summary     Summary        `json:"summary"`
	TopCritical []CompactAlert `json:"top_critical"`
	TopWarning  []CompactAlert `json:"top_warning"`
}

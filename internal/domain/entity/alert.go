package entity

// Severity é o nível de gravidade de um alerta.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityOK       Severity = "ok"
)

// Rank ordena critical < warning < ok.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Trend é a direção em relação ao período anterior.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// CompanyBreakdown é a participação de uma empresa no valor de uma chave.
type CompanyBreakdown struct {
	CompanyName               string  `json:"company_name"`
	Value                     float64 `json:"value"`
	VariationVsPreviousPeriod float64 `json:"variation_vs_previous_period"`
}

// Alert é o registro classificado de uma combinação (conta, departamento).
// Construído a cada análise e nunca alterado depois de devolvido.
type Alert struct {
	AccountName string      `json:"account_name"`
	AccountID   string      `json:"account_id,omitempty"`
	AccountType AccountType `json:"account_type,omitempty"`
	Department  string      `json:"department"`

	RealValue              float64  `json:"real_value"`
	BudgetValue            float64  `json:"budget_value"`
	PreviousPeriodValue    float64  `json:"previous_period_value"`
	SameMonthLastYearValue float64  `json:"same_month_last_year_value"`
	BenchmarkValue         *float64 `json:"benchmark_value,omitempty"`

	VariationVsBudget         float64  `json:"variation_vs_budget"`
	VariationVsPreviousPeriod float64  `json:"variation_vs_previous_period"`
	VariationVsLastYear       float64  `json:"variation_vs_last_year"`
	VariationVsBenchmark      *float64 `json:"variation_vs_benchmark,omitempty"`

	Severity         Severity           `json:"severity"`
	Trend            Trend              `json:"trend"`
	CompanyBreakdown []CompanyBreakdown `json:"company_breakdown"`
}

// Key devolve a chave conta+departamento.
func (a Alert) Key() string {
	return a.AccountName + "|" + a.Department
}

// CompactAlert é a projeção enviada ao gerador de narrativas.
type CompactAlert struct {
	Account           string  `json:"account"`
	Department        string  `json:"department"`
	RealValue         float64 `json:"real_value"`
	BudgetValue       float64 `json:"budget_value"`
	VariationVsBudget float64 `json:"variation_vs_budget"`
	Trend             Trend   `json:"trend"`
}

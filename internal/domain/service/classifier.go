package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/shared/normalize"
	"github.com/shopspring/decimal"
)

// TrendBand é a faixa (em %) dentro da qual a tendência é estável.
const TrendBand = 3.0

// expenseKeywords marcam contas legadas sem tipo como despesa.
var expenseKeywords = []string{"despesa", "custo"}

// Thresholds são os limites percentuais de classificação.
type Thresholds struct {
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

// DefaultThresholds devolve warning=5% e critical=15%.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 5, Critical: 15}
}

// Validate rejeita limites negativos ou warning acima de critical.
func (t Thresholds) Validate() error {
	if t.Warning < 0 || t.Critical < 0 {
		return fmt.Errorf("thresholds must not be negative (warning=%.2f, critical=%.2f)", t.Warning, t.Critical)
	}
	if t.Warning > t.Critical {
		return fmt.Errorf("warning threshold %.2f is above critical threshold %.2f", t.Warning, t.Critical)
	}
	return nil
}

// Variation calcula ((actual - base) / |base|) * 100. Base zero resulta em 0.
func Variation(actual, base float64) float64 {
	if base == 0 {
		return 0
	}
	return ((actual - base) / math.Abs(base)) * 100
}

// IsExpenseLike usa o tipo do plano de contas e, só para contas sem tipo,
// procura "despesa"/"custo" no nome.
func IsExpenseLike(accountName string, accountType entity.AccountType) bool {
	switch accountType {
	case entity.AccountTypeExpense:
		return true
	case entity.AccountTypeRevenue:
		return false
	default:
		return normalize.ContainsAny(accountName, expenseKeywords...)
	}
}

// ClassifySeverity aplica os limites com o sinal do tipo de conta:
// despesa estoura para cima, receita para baixo.
func ClassifySeverity(variationVsBudget float64, expenseLike bool, t Thresholds) entity.Severity {
	if expenseLike {
		switch {
		case variationVsBudget > t.Critical:
			return entity.SeverityCritical
		case variationVsBudget > t.Warning:
			return entity.SeverityWarning
		default:
			return entity.SeverityOK
		}
	}
	switch {
	case variationVsBudget < -t.Critical:
		return entity.SeverityCritical
	case variationVsBudget < -t.Warning:
		return entity.SeverityWarning
	default:
		return entity.SeverityOK
	}
}

// ClassifyTrend usa a faixa fixa de ±3%, independente do tipo de conta.
func ClassifyTrend(variationVsPreviousPeriod float64) entity.Trend {
	switch {
	case variationVsPreviousPeriod > TrendBand:
		return entity.TrendUp
	case variationVsPreviousPeriod < -TrendBand:
		return entity.TrendDown
	default:
		return entity.TrendStable
	}
}

// ClassifierInput reúne as três bases, o orçamento e os benchmarks de uma análise.
type ClassifierInput struct {
	Period     entity.Period
	Current    []entity.AggregatedCell
	Previous   []entity.AggregatedCell
	LastYear   []entity.AggregatedCell
	Budget     *BudgetResolver
	Benchmarks []entity.Benchmark
}

// Classifier transforma as agregações em alertas ranqueados.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier cria um classificador com os limites informados.
func NewClassifier(thresholds Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

// Thresholds devolve os limites em uso.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

type alertKey struct {
	account    string
	department string
}

type keyTotals struct {
	accountID   string
	accountType entity.AccountType
	total       decimal.Decimal
	companies   []entity.AggregatedCell
}

// Classify gera um alerta por (conta, departamento) presente no período corrente.
func (c *Classifier) Classify(in ClassifierInput) []entity.Alert {
	current, order := totalsByKey(in.Current)
	previous, _ := totalsByKey(in.Previous)
	lastYear, _ := totalsByKey(in.LastYear)

	benchmarks := make(map[string]float64, len(in.Benchmarks))
	for _, b := range in.Benchmarks {
		if _, exists := benchmarks[b.AccountName]; !exists {
			benchmarks[b.AccountName] = b.Value
		}
	}

	alerts := make([]entity.Alert, 0, len(order))
	for _, key := range order {
		totals := current[key]

		realValue := totals.total.InexactFloat64()
		previousValue := totalOf(previous, key)
		lastYearValue := totalOf(lastYear, key)
		budgetValue := in.Budget.Resolve(key.account, totals.accountID, key.department, in.Period)

		alert := entity.Alert{
			AccountName:               key.account,
			AccountID:                 totals.accountID,
			AccountType:               totals.accountType,
			Department:                key.department,
			RealValue:                 realValue,
			BudgetValue:               budgetValue,
			PreviousPeriodValue:       previousValue,
			SameMonthLastYearValue:    lastYearValue,
			VariationVsBudget:         Variation(realValue, budgetValue),
			VariationVsPreviousPeriod: Variation(realValue, previousValue),
			VariationVsLastYear:       Variation(realValue, lastYearValue),
		}

		if bench, ok := benchmarks[key.account]; ok {
			benchValue := bench
			benchVariation := Variation(realValue, benchValue)
			alert.BenchmarkValue = &benchValue
			alert.VariationVsBenchmark = &benchVariation
		}

		alert.Severity = ClassifySeverity(alert.VariationVsBudget, IsExpenseLike(key.account, totals.accountType), c.thresholds)
		alert.Trend = ClassifyTrend(alert.VariationVsPreviousPeriod)
		alert.CompanyBreakdown = companyBreakdown(totals.companies, previousValue)

		alerts = append(alerts, alert)
	}

	RankAlerts(alerts)
	return alerts
}

// companyBreakdown compara cada empresa com o total consolidado do período
// anterior da chave; não existe base anterior por empresa.
func companyBreakdown(cells []entity.AggregatedCell, previousValue float64) []entity.CompanyBreakdown {
	breakdown := make([]entity.CompanyBreakdown, 0, len(cells))
	for _, cell := range cells {
		if !cell.Resolved() {
			continue
		}
		value := cell.Value.InexactFloat64()
		name := cell.CompanyName
		if name == "" {
			name = cell.CompanyID
		}
		breakdown = append(breakdown, entity.CompanyBreakdown{
			CompanyName:               name,
			Value:                     value,
			VariationVsPreviousPeriod: Variation(value, previousValue),
		})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Value != breakdown[j].Value {
			return breakdown[i].Value > breakdown[j].Value
		}
		return breakdown[i].CompanyName < breakdown[j].CompanyName
	})
	return breakdown
}

// RankAlerts ordena por gravidade (critical, warning, ok) e, na mesma
// gravidade, pela maior variação absoluta contra o orçamento.
func RankAlerts(alerts []entity.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		av, bv := math.Abs(a.VariationVsBudget), math.Abs(b.VariationVsBudget)
		if av != bv {
			return av > bv
		}
		return a.Key() < b.Key()
	})
}

func totalsByKey(cells []entity.AggregatedCell) (map[alertKey]*keyTotals, []alertKey) {
	totals := make(map[alertKey]*keyTotals)
	order := make([]alertKey, 0)
	for _, cell := range cells {
		key := alertKey{account: cell.AccountName, department: cell.Department}
		t, ok := totals[key]
		if !ok {
			t = &keyTotals{total: decimal.Zero}
			totals[key] = t
			order = append(order, key)
		}
		if t.accountID == "" {
			t.accountID = cell.AccountID
		}
		if t.accountType == entity.AccountTypeUnclassified {
			t.accountType = cell.AccountType
		}
		t.total = t.total.Add(cell.Value)
		t.companies = append(t.companies, cell)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].account != order[j].account {
			return order[i].account < order[j].account
		}
		return order[i].department < order[j].department
	})
	return totals, order
}

func totalOf(totals map[alertKey]*keyTotals, key alertKey) float64 {
	t, ok := totals[key]
	if !ok {
		return 0
	}
	return t.total.InexactFloat64()
}

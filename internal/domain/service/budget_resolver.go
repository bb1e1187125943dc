package service

import (
	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/shared/normalize"
)

// BudgetResolver resolve o valor orçado de uma conta. Mapeamentos explícitos
// têm precedência: havendo ao menos um mapeamento para a conta, o casamento
// por nome nunca é usado para ela.
type BudgetResolver struct {
	mappingsByAccount map[string][]string
	assumptionsByName map[string][]string
	values            map[string][]entity.BudgetAssumptionValue
}

// NewBudgetResolver indexa o snapshot de orçamento.
func NewBudgetResolver(snapshot entity.BudgetSnapshot) *BudgetResolver {
	r := &BudgetResolver{
		mappingsByAccount: make(map[string][]string),
		assumptionsByName: make(map[string][]string),
		values:            make(map[string][]entity.BudgetAssumptionValue),
	}

	for _, m := range snapshot.Mappings {
		if m.TargetAccountID == "" || m.AssumptionID == "" {
			continue
		}
		r.mappingsByAccount[m.TargetAccountID] = append(r.mappingsByAccount[m.TargetAccountID], m.AssumptionID)
	}
	for _, a := range snapshot.Assumptions {
		name := nameKey(a.Name)
		if name == "" {
			continue
		}
		r.assumptionsByName[name] = append(r.assumptionsByName[name], a.ID)
	}
	for _, v := range snapshot.Values {
		r.values[v.AssumptionID] = append(r.values[v.AssumptionID], v)
	}
	return r
}

// HasMapping informa se existe algum mapeamento para a conta.
func (r *BudgetResolver) HasMapping(accountID string) bool {
	if r == nil || accountID == "" {
		return false
	}
	return len(r.mappingsByAccount[accountID]) > 0
}

// Resolve devolve o orçamento de (conta, departamento) no período.
// Sem mapeamento nem premissa com o mesmo nome, o orçamento é 0.
// O departamento não restringe a soma.
func (r *BudgetResolver) Resolve(accountName, accountID, department string, period entity.Period) float64 {
	if r == nil {
		return 0
	}
	if r.HasMapping(accountID) {
		return r.sum(r.mappingsByAccount[accountID], period)
	}
	return r.sum(r.assumptionsByName[nameKey(accountName)], period)
}

// sum soma os valores do período das premissas referenciadas, cada premissa uma vez.
func (r *BudgetResolver) sum(assumptionIDs []string, period entity.Period) float64 {
	seen := make(map[string]bool, len(assumptionIDs))
	total := 0.0
	for _, id := range assumptionIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, v := range r.values[id] {
			if v.Year == period.Year && v.Month == period.Month {
				total += v.Value
			}
		}
	}
	return total
}

// nameKey ignora caixa, acentos e espaços nas bordas.
func nameKey(name string) string {
	return normalize.Fold(name)
}

package aws

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	budgetTypes "github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/diillson/finops-variance-go/internal/domain/entity"
)

// BudgetRepository expõe os AWS Budgets como premissas orçamentárias. O
// filtro de serviço de cada budget vira mapeamento para a conta do serviço.
type BudgetRepository struct {
	clients *clientCache
}

// NewBudgetRepository cria o repositório sobre o AWS Budgets.
func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{clients: newClientCache()}
}

func (r *BudgetRepository) describeBudgets(ctx context.Context, profile string) ([]budgetTypes.Budget, error) {
	client, err := r.clients.getServiceClient(ctx, profile, "budgets")
	if err != nil {
		return nil, err
	}
	budgetsClient := client.(*budgets.Client)

	accountID, err := r.clients.accountID(ctx, profile)
	if err != nil {
		return nil, err
	}

	var all []budgetTypes.Budget
	input := &budgets.DescribeBudgetsInput{AccountId: aws.String(accountID)}
	for {
		out, err := budgetsClient.DescribeBudgets(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to describe budgets: %w", err)
		}
		all = append(all, out.Budgets...)
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}
	return all, nil
}

func (r *BudgetRepository) ListAssumptions(ctx context.Context, tenantID string) ([]entity.BudgetAssumption, error) {
	all, err := r.describeBudgets(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	assumptions := make([]entity.BudgetAssumption, 0, len(all))
	for _, b := range all {
		name := aws.ToString(b.BudgetName)
		assumptions = append(assumptions, entity.BudgetAssumption{ID: name, Name: name})
	}
	return assumptions, nil
}

func (r *BudgetRepository) ListAssumptionValues(ctx context.Context, tenantID string, period entity.Period) ([]entity.BudgetAssumptionValue, error) {
	all, err := r.describeBudgets(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	values := []entity.BudgetAssumptionValue{}
	for _, b := range all {
		value, ok := budgetValueFor(b, period)
		if !ok {
			continue
		}
		values = append(values, entity.BudgetAssumptionValue{
			AssumptionID: aws.ToString(b.BudgetName),
			Year:         period.Year,
			Month:        period.Month,
			Value:        value,
		})
	}
	return values, nil
}

func (r *BudgetRepository) ListMappings(ctx context.Context, tenantID string) ([]entity.BudgetMapping, error) {
	all, err := r.describeBudgets(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	mappings := []entity.BudgetMapping{}
	for _, b := range all {
		mappings = append(mappings, mappingsFromFilters(b)...)
	}
	return mappings, nil
}

// budgetValueFor usa o limite planejado do mês quando existe e, para budgets
// mensais, o limite fixo.
func budgetValueFor(b budgetTypes.Budget, period entity.Period) (float64, bool) {
	start := time.Date(period.Year, time.Month(period.Month), 1, 0, 0, 0, 0, time.UTC)
	if spend, ok := b.PlannedBudgetLimits[strconv.FormatInt(start.Unix(), 10)]; ok && spend.Amount != nil {
		v, err := strconv.ParseFloat(*spend.Amount, 64)
		return v, err == nil
	}
	if b.TimeUnit == budgetTypes.TimeUnitMonthly && b.BudgetLimit != nil && b.BudgetLimit.Amount != nil {
		v, err := strconv.ParseFloat(*b.BudgetLimit.Amount, 64)
		return v, err == nil
	}
	return 0, false
}

func mappingsFromFilters(b budgetTypes.Budget) []entity.BudgetMapping {
	services := b.CostFilters["Service"]
	mappings := make([]entity.BudgetMapping, 0, len(services))
	for _, service := range services {
		mappings = append(mappings, entity.BudgetMapping{
			AssumptionID:    aws.ToString(b.BudgetName),
			TargetAccountID: service,
		})
	}
	return mappings
}

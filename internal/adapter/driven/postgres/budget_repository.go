package postgres

import (
	"context"
	"fmt"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BudgetRepository lê premissas orçamentárias, valores por período,
// mapeamentos e benchmarks.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository cria o repositório de orçamento.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

func (r *BudgetRepository) ListAssumptions(ctx context.Context, tenantID string) ([]entity.BudgetAssumption, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM budget_assumptions WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget assumptions: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.BudgetAssumption, error) {
		var a entity.BudgetAssumption
		err := row.Scan(&a.ID, &a.Name)
		return a, err
	})
}

func (r *BudgetRepository) ListAssumptionValues(ctx context.Context, tenantID string, period entity.Period) ([]entity.BudgetAssumptionValue, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT assumption_id, value::float8
		FROM budget_assumption_values
		WHERE tenant_id = $1 AND year = $2 AND period_label = $3`,
		tenantID, period.Year, period.Month.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query budget values: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.BudgetAssumptionValue, error) {
		v := entity.BudgetAssumptionValue{Year: period.Year, Month: period.Month}
		err := row.Scan(&v.AssumptionID, &v.Value)
		return v, err
	})
}

func (r *BudgetRepository) ListMappings(ctx context.Context, tenantID string) ([]entity.BudgetMapping, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT assumption_id, COALESCE(target_account_id, ''), COALESCE(target_department_id, '')
		FROM budget_mappings
		WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget mappings: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.BudgetMapping, error) {
		var m entity.BudgetMapping
		err := row.Scan(&m.AssumptionID, &m.TargetAccountID, &m.TargetDepartmentID)
		return m, err
	})
}

func (r *BudgetRepository) ListBenchmarks(ctx context.Context, tenantID string) ([]entity.Benchmark, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT account_name, value::float8
		FROM benchmarks
		WHERE tenant_id = $1
		ORDER BY account_name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmarks: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Benchmark, error) {
		var b entity.Benchmark
		err := row.Scan(&b.AccountName, &b.Value)
		return b, err
	})
}

package repository

import (
	"context"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
)

// BudgetRepository defines the interface for budget assumptions, their
// period-scoped values and the assumption → account mappings.
type BudgetRepository interface {
	ListAssumptions(ctx context.Context, tenantID string) ([]entity.BudgetAssumption, error)
	ListAssumptionValues(ctx context.Context, tenantID string, period entity.Period) ([]entity.BudgetAssumptionValue, error)
	ListMappings(ctx context.Context, tenantID string) ([]entity.BudgetMapping, error)
}

// BenchmarkRepository defines the interface for organization-level reference values.
type BenchmarkRepository interface {
	ListBenchmarks(ctx context.Context, tenantID string) ([]entity.Benchmark, error)
}

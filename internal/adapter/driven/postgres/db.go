// Package postgres implementa os repositórios do razão, orçamento e
// benchmarks sobre um banco PostgreSQL via pgx.
//
// Tabelas esperadas (por tenant):
//
//	companies(tenant_id, id, name)
//	accounts(tenant_id, id, name, account_type)
//	ledger_entries(tenant_id, id, year, period_label, company_id, account_id, department, amount, nature)
//	budget_assumptions(tenant_id, id, name)
//	budget_assumption_values(tenant_id, assumption_id, year, period_label, value)
//	budget_mappings(tenant_id, assumption_id, target_account_id, target_department_id)
//	benchmarks(tenant_id, account_name, value)
package postgres

import (
	"context"
	"fmt"
	"os"

	"github.com/diillson/finops-variance-go/internal/shared/types"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool abre o pool de conexões. Com url vazia usa DATABASE_URL.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, types.ErrMissingDatabaseURL
	}

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return pool, nil
}

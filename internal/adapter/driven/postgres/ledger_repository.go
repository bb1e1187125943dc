package postgres

import (
	"context"
	"fmt"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerRepository lê empresas e lançamentos contábeis.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository cria o repositório do razão.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) ListCompanies(ctx context.Context, tenantID string) ([]entity.Company, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM companies WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}

	companies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Company, error) {
		var c entity.Company
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read companies: %w", err)
	}
	return companies, nil
}

func (r *LedgerRepository) FetchLedgerRows(ctx context.Context, query entity.LedgerQuery) ([]entity.LedgerRow, error) {
	sql, args := buildLedgerQuery(query, 0, 0)
	return r.fetch(ctx, sql, args)
}

func (r *LedgerRepository) FetchLedgerPage(ctx context.Context, query entity.LedgerQuery, offset, limit int) ([]entity.LedgerRow, error) {
	sql, args := buildLedgerQuery(query, offset, limit)
	return r.fetch(ctx, sql, args)
}

func (r *LedgerRepository) fetch(ctx context.Context, sql string, args []any) ([]entity.LedgerRow, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	result := []entity.LedgerRow{}
	for rows.Next() {
		var (
			row                 entity.LedgerRow
			accountType, nature string
			amount              decimal.Decimal
		)
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountName,
			&accountType,
			&row.Department,
			&row.CompanyRef,
			&amount,
			&nature,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		row.AccountType = entity.ParseAccountType(accountType)
		row.Nature = entity.ParseNature(nature)
		row.Amount = amount
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger rows: %w", err)
	}
	return result, nil
}

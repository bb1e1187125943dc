package repository

import (
	"context"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
)

// LedgerRepository defines the interface for the remote ledger store.
type LedgerRepository interface {
	// ListCompanies returns the company directory of a tenant.
	ListCompanies(ctx context.Context, tenantID string) ([]entity.Company, error)

	// FetchLedgerRows returns every row matching the query.
	FetchLedgerRows(ctx context.Context, query entity.LedgerQuery) ([]entity.LedgerRow, error)

	// FetchLedgerPage returns at most limit rows starting at offset, in a
	// stable order. A short page means the source is exhausted.
	FetchLedgerPage(ctx context.Context, query entity.LedgerQuery, offset, limit int) ([]entity.LedgerRow, error)
}

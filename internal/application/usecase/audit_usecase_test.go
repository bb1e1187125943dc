package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

func yearRows(n int) []entity.LedgerRow {
	rows := make([]entity.LedgerRow, 0, n)
	for i := 0; i < n; i++ {
		company := "c1"
		if i%2 == 1 {
			company = "c2"
		}
		rows = append(rows, ledgerRow(fmt.Sprintf("Conta %d", i%3), "ADM", company, 1, entity.NatureDebit))
	}
	return rows
}

func TestAuditUseCase_PagesUntilExhausted(t *testing.T) {
	ledger := newFakeLedger()
	ledger.yearRows = yearRows(2500)

	audit, err := NewAuditUseCase(ledger).RunLedgerAudit(context.Background(), "t1", 2024, nil)
	require.NoError(t, err)
	require.Equal(t, 2500, audit.RowsScanned)
	require.Equal(t, 3, audit.Pages)
	require.False(t, audit.Truncated)
	require.Len(t, audit.Cells, 6)

	total := 0
	for _, c := range audit.Cells {
		total += c.Entries
	}
	require.Equal(t, 2500, total)
}

func TestAuditUseCase_ExactMultipleOfPageSize(t *testing.T) {
	ledger := newFakeLedger()
	ledger.yearRows = yearRows(2000)

	audit, err := NewAuditUseCase(ledger).RunLedgerAudit(context.Background(), "t1", 2024, nil)
	require.NoError(t, err)
	require.Equal(t, 2000, audit.RowsScanned)
	require.Equal(t, 2, audit.Pages)
	require.Equal(t, 3, ledger.pageCalls)
	require.False(t, audit.Truncated)
}

func TestAuditUseCase_StopsAtRowLimit(t *testing.T) {
	ledger := newFakeLedger()
	ledger.yearRows = yearRows(5000)

	audit, err := NewAuditUseCase(ledger).WithLimits(1000, 1500).
		RunLedgerAudit(context.Background(), "t1", 2024, nil)
	require.NoError(t, err)
	require.True(t, audit.Truncated)
	require.Equal(t, 1500, audit.RowsScanned)
	require.Equal(t, 2, audit.Pages)
}

func TestAuditUseCase_PageFailureKeepsPartialData(t *testing.T) {
	ledger := newFakeLedger()
	ledger.yearRows = yearRows(2500)
	ledger.failPage = 2

	audit, err := NewAuditUseCase(ledger).RunLedgerAudit(context.Background(), "t1", 2024, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "page 2")
	require.Equal(t, 1000, audit.RowsScanned)
	require.NotEmpty(t, audit.Cells)
}

func TestAuditUseCase_CompanyFilter(t *testing.T) {
	ledger := newFakeLedger()
	ledger.yearRows = yearRows(10)

	audit, err := NewAuditUseCase(ledger).RunLedgerAudit(context.Background(), "t1", 2024, []string{"c2"})
	require.NoError(t, err)
	require.Equal(t, 5, audit.RowsScanned)
	for _, c := range audit.Cells {
		require.Equal(t, "c2", c.CompanyID)
	}

	audit, err = NewAuditUseCase(ledger).RunLedgerAudit(context.Background(), "t1", 2024, []string{"ghost"})
	require.NoError(t, err)
	require.Zero(t, audit.RowsScanned)
	require.Equal(t, 1, ledger.pageCalls)
}

func TestAuditUseCase_InvalidInput(t *testing.T) {
	ledger := newFakeLedger()

	audit, err := NewAuditUseCase(ledger).RunLedgerAudit(context.Background(), "", 2024, nil)
	require.NoError(t, err)
	require.Empty(t, audit.Cells)
	require.Zero(t, ledger.pageCalls)
}

func TestAuditUseCase_CanceledContext(t *testing.T) {
	ledger := newFakeLedger()
	ledger.yearRows = yearRows(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAuditUseCase(ledger).RunLedgerAudit(ctx, "t1", 2024, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, ledger.pageCalls)
}

func TestAuditUseCase_DataEndsExactlyAtRowLimit(t *testing.T) {
	ledger := newFakeLedger()
	ledger.yearRows = yearRows(1500)

	audit, err := NewAuditUseCase(ledger).WithLimits(1000, 1500).
		RunLedgerAudit(context.Background(), "t1", 2024, nil)
	require.NoError(t, err)
	require.False(t, audit.Truncated)
	require.Equal(t, 1500, audit.RowsScanned)
	require.Equal(t, 2, audit.Pages)
}

func TestAuditUseCase_DirectoryFailureKeepsRows(t *testing.T) {
	ledger := newFakeLedger()
	ledger.companiesErr = fmt.Errorf("directory offline")
	ledger.yearRows = yearRows(10)

	audit, err := NewAuditUseCase(ledger).RunLedgerAudit(context.Background(), "t1", 2024, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "listing companies")
	require.Equal(t, 10, audit.RowsScanned)
	for _, c := range audit.Cells {
		require.False(t, c.Resolved())
		require.NotEmpty(t, c.CompanyRef)
	}

	_, err = NewAuditUseCase(ledger).RunLedgerAudit(context.Background(), "t1", 2024, []string{"c1"})
	require.Error(t, err)
	require.Equal(t, 1, ledger.pageCalls)
}

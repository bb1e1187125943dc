package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/domain/service"
	"github.com/diillson/finops-variance-go/internal/shared/types"
	"github.com/stretchr/testify/require"
)

func newTestDashboard(ledger *fakeLedger, export *fakeExport, uploader *fakeUploader, console *fakeConsole) *DashboardUseCase {
	_, budget, benchmarks := scenario()
	uc := NewDashboardUseCase(
		NewAnalysisUseCase(ledger, budget, benchmarks, service.DefaultThresholds()),
		NewAuditUseCase(ledger),
		NewInsightUseCase(&fakeNarrative{text: "All good."}),
		export,
		nil,
		console,
	)
	if uploader != nil {
		uc.uploader = uploader
	}
	uc.now = func() time.Time { return time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC) }
	return uc
}

func TestDashboardUseCase_BuildRequest(t *testing.T) {
	uc := newTestDashboard(newFakeLedger(), &fakeExport{}, nil, newFakeConsole())

	req, err := uc.BuildRequest(&types.CLIArgs{Organization: " acme "})
	require.NoError(t, err)
	require.Equal(t, "acme", req.TenantID)
	require.Equal(t, march2024, req.Period)

	req, err = uc.BuildRequest(&types.CLIArgs{Organization: "acme", Year: 2023, Month: "dezembro", Companies: []string{"c1"}})
	require.NoError(t, err)
	require.Equal(t, entity.Period{Year: 2023, Month: entity.December}, req.Period)
	require.Equal(t, []string{"c1"}, req.CompanyFilter)

	_, err = uc.BuildRequest(&types.CLIArgs{})
	require.ErrorIs(t, err, types.ErrMissingOrganization)

	_, err = uc.BuildRequest(&types.CLIArgs{Organization: "acme", Month: "brumario"})
	require.Error(t, err)

	_, err = uc.BuildRequest(&types.CLIArgs{Organization: "acme", Year: 99})
	require.Error(t, err)
}

func TestDashboardUseCase_RunDashboard(t *testing.T) {
	ledger, _, _ := scenario()
	export := &fakeExport{}
	uploader := &fakeUploader{}
	console := newFakeConsole()
	uc := newTestDashboard(ledger, export, uploader, console)

	err := uc.RunDashboard(context.Background(), &types.CLIArgs{
		Organization: "acme",
		ReportName:   "variance",
		ReportType:   []string{"csv", "json", "pdf", "xml"},
		Dir:          "/tmp",
		Insight:      true,
	})
	require.NoError(t, err)

	require.Equal(t, []string{"csv", "json", "pdf"}, export.calls)
	require.Equal(t, []string{"/tmp/variance.csv", "/tmp/variance.json", "/tmp/variance.pdf"}, uploader.uploaded)
	require.Contains(t, console.panels, "Variance Summary")
	require.Equal(t, []string{"All good."}, console.panels["Financial Insight"])
	require.Contains(t, console.panels, "Despesa Operacional / ADM by company")
	require.Contains(t, console.output(), "table(2 rows)")
	require.Contains(t, console.output(), "Unknown report type 'xml'")
}

func TestDashboardUseCase_RunLedgerAudit(t *testing.T) {
	ledger := newFakeLedger()
	ledger.yearRows = yearRows(12)
	export := &fakeExport{}
	console := newFakeConsole()
	uc := newTestDashboard(ledger, export, nil, console)

	err := uc.RunDashboard(context.Background(), &types.CLIArgs{
		Organization: "acme",
		Audit:        true,
		ReportName:   "audit",
		ReportType:   []string{"csv", "json", "pdf"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"audit-csv", "audit-json"}, export.calls)
	require.Contains(t, console.output(), "12 rows scanned in 1 pages")
	require.Contains(t, console.output(), "not available for the ledger audit")
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "1.234.567,89", formatAmount(1234567.891))
	require.Equal(t, "-10,00", formatAmount(-10))
}

func TestUnresolvedCompany(t *testing.T) {
	require.Contains(t, unresolvedCompany("filial-99"), "filial-99 (unknown)")
	require.Contains(t, unresolvedCompany(""), "no company (unknown)")
}

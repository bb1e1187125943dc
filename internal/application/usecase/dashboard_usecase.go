package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/domain/repository"
	"github.com/diillson/finops-variance-go/internal/shared/types"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DashboardUseCase liga a análise de variação ao console, à exportação e ao
// gerador de narrativas.
type DashboardUseCase struct {
	analysis   *AnalysisUseCase
	audit      *AuditUseCase
	insight    *InsightUseCase
	exportRepo repository.ExportRepository
	uploader   repository.ReportUploader
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewDashboardUseCase cria o caso de uso do dashboard. uploader pode ser nil.
func NewDashboardUseCase(
	analysis *AnalysisUseCase,
	audit *AuditUseCase,
	insight *InsightUseCase,
	exportRepo repository.ExportRepository,
	uploader repository.ReportUploader,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		analysis:   analysis,
		audit:      audit,
		insight:    insight,
		exportRepo: exportRepo,
		uploader:   uploader,
		console:    console,
		now:        time.Now,
	}
}

var amountPrinter = message.NewPrinter(language.BrazilianPortuguese)

// BuildRequest converte os argumentos da CLI em uma requisição de análise.
// Ano e mês ausentes assumem o mês corrente.
func (uc *DashboardUseCase) BuildRequest(args *types.CLIArgs) (entity.AnalysisRequest, error) {
	if strings.TrimSpace(args.Organization) == "" {
		return entity.AnalysisRequest{}, types.ErrMissingOrganization
	}

	now := uc.now()
	period := entity.Period{Year: now.Year(), Month: entity.Month(now.Month())}

	if args.Year != 0 {
		period.Year = args.Year
	}
	if args.Month != "" {
		month, err := entity.ParseMonth(args.Month)
		if err != nil {
			return entity.AnalysisRequest{}, err
		}
		period.Month = month
	}
	if !period.Valid() {
		return entity.AnalysisRequest{}, fmt.Errorf("invalid period %s", period)
	}

	return entity.AnalysisRequest{
		TenantID:      strings.TrimSpace(args.Organization),
		Period:        period,
		CompanyFilter: args.Companies,
	}, nil
}

// RunDashboard executa a funcionalidade principal do dashboard.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	req, err := uc.BuildRequest(args)
	if err != nil {
		return err
	}

	// Executa a auditoria do razão se solicitada
	if args.Audit {
		return uc.RunLedgerAudit(ctx, req, args)
	}

	status := uc.console.Status(fmt.Sprintf("Analyzing %s for %s...",
		pterm.FgCyan.Sprint(req.Period.Label()), pterm.FgCyan.Sprint(req.TenantID)))
	result, _ := uc.analysis.Refresh(ctx, req)
	status.Stop()

	if result.Error != "" {
		uc.console.LogWarning("Some data sources failed, results may be partial: %s", result.Error)
	}

	uc.console.DisplayPanel("Variance Summary", uc.formatSummary(result))

	if len(result.Alerts) == 0 {
		uc.console.LogInfo("No ledger activity found for %s.", req.Period.Label())
	} else {
		uc.console.Print(uc.createAlertsTable(result.Alerts).Render())
		uc.renderBreakdown(result.TopCritical)
	}

	if args.ReportName != "" && len(args.ReportType) > 0 {
		for _, reportType := range args.ReportType {
			switch reportType {
			case "csv":
				uc.export(ctx, "CSV", func() (string, error) {
					return uc.exportRepo.ExportAlertsToCSV(result, args.ReportName, args.Dir)
				})
			case "json":
				uc.export(ctx, "JSON", func() (string, error) {
					return uc.exportRepo.ExportAlertsToJSON(result, args.ReportName, args.Dir)
				})
			case "pdf":
				uc.export(ctx, "PDF", func() (string, error) {
					return uc.exportRepo.ExportAlertsToPDF(result, args.ReportName, args.Dir)
				})
			default:
				uc.console.LogWarning("Unknown report type '%s', skipping", reportType)
			}
		}
	}

	if args.Insight && result.AIContext != nil {
		status := uc.console.Status("Generating financial narrative...")
		text := uc.insight.GenerateInsight(ctx, "", *result.AIContext)
		status.Stop()
		uc.console.DisplayPanel("Financial Insight", strings.Split(text, "\n"))
	}

	return nil
}

// RunLedgerAudit executa a agregação anual em lote e exibe o resultado.
func (uc *DashboardUseCase) RunLedgerAudit(ctx context.Context, req entity.AnalysisRequest, args *types.CLIArgs) error {
	uc.console.LogInfo("Preparing your ledger audit for %d...", req.Period.Year)

	status := uc.console.Status("Scanning ledger pages...")
	audit, err := uc.audit.RunLedgerAudit(ctx, req.TenantID, req.Period.Year, req.CompanyFilter)
	status.Stop()

	if err != nil {
		uc.console.LogError("Ledger audit is incomplete: %s", err)
	}
	if audit.Truncated {
		uc.console.LogWarning("Row limit reached after %d rows, the audit is partial.", audit.RowsScanned)
	}

	table := uc.console.CreateTable()
	table.AddColumn("Account")
	table.AddColumn("Department")
	table.AddColumn("Company")
	table.AddColumn("Debit", types.AlignRight)
	table.AddColumn("Credit", types.AlignRight)
	table.AddColumn("Balance", types.AlignRight)
	table.AddColumn("Entries", types.AlignRight)

	for _, cell := range audit.Cells {
		company := cell.CompanyName
		if !cell.Resolved() {
			company = unresolvedCompany(cell.CompanyRef)
		}
		table.AddRow(
			cell.AccountName,
			cell.Department,
			company,
			formatAmount(cell.Debit.InexactFloat64()),
			formatAmount(cell.Credit.InexactFloat64()),
			pterm.NewStyle(pterm.Bold).Sprint(formatAmount(cell.Value.InexactFloat64())),
			fmt.Sprintf("%d", cell.Entries),
		)
	}

	uc.console.Print(table.Render())
	uc.console.LogInfo("%d rows scanned in %d pages, %d cells.", audit.RowsScanned, audit.Pages, len(audit.Cells))

	if args.ReportName != "" {
		for _, reportType := range args.ReportType {
			switch reportType {
			case "csv":
				uc.export(ctx, "audit CSV", func() (string, error) {
					return uc.exportRepo.ExportLedgerAuditToCSV(audit, args.ReportName, args.Dir)
				})
			case "json":
				uc.export(ctx, "audit JSON", func() (string, error) {
					return uc.exportRepo.ExportLedgerAuditToJSON(audit, args.ReportName, args.Dir)
				})
			default:
				uc.console.LogWarning("Report type '%s' is not available for the ledger audit", reportType)
			}
		}
	}

	return nil
}

// export roda um exportador e, se houver destino remoto, publica o arquivo.
func (uc *DashboardUseCase) export(ctx context.Context, label string, run func() (string, error)) {
	path, err := run()
	if err != nil {
		uc.console.LogError("Failed to export to %s: %s", label, err)
		return
	}
	uc.console.LogSuccess("Successfully exported to %s: %s", label, path)

	if uc.uploader == nil {
		return
	}
	location, err := uc.uploader.UploadReport(ctx, path)
	if err != nil {
		uc.console.LogError("Failed to upload %s: %s", path, err)
		return
	}
	uc.console.LogSuccess("Uploaded report to %s", location)
}

func (uc *DashboardUseCase) formatSummary(result entity.AnalysisResult) []string {
	s := result.Summary
	th := uc.analysis.Thresholds()
	return []string{
		fmt.Sprintf("Organization: %s   Period: %s", result.Request.TenantID, result.Request.Period.Label()),
		fmt.Sprintf("Overall health: %s", formatSeverity(s.OverallHealth)),
		fmt.Sprintf("Critical: %s   Warning: %s   OK: %s",
			pterm.FgRed.Sprint(s.CriticalCount),
			pterm.FgYellow.Sprint(s.WarningCount),
			pterm.FgGreen.Sprint(s.OkCount)),
		fmt.Sprintf("Revenue vs budget: %s", formatVariation(s.RevenueVsBudget)),
		fmt.Sprintf("Margin vs budget: %s", formatVariation(s.MarginVsBudget)),
		fmt.Sprintf("Expenses vs budget: %s", formatVariation(s.ExpensesVsBudget)),
		fmt.Sprintf("Thresholds: warning %.1f%% / critical %.1f%%", th.Warning, th.Critical),
	}
}

func (uc *DashboardUseCase) createAlertsTable(alerts []entity.Alert) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Severity")
	table.AddColumn("Account")
	table.AddColumn("Department")
	table.AddColumn("Actual", types.AlignRight)
	table.AddColumn("Budget", types.AlignRight)
	table.AddColumn("vs Budget")
	table.AddColumn("vs Previous")
	table.AddColumn("vs Last Year")
	table.AddColumn("vs Benchmark")
	table.AddColumn("Trend")

	for _, a := range alerts {
		benchmark := "N/A"
		if a.VariationVsBenchmark != nil {
			benchmark = formatVariation(*a.VariationVsBenchmark)
		}
		table.AddRow(
			formatSeverity(a.Severity),
			a.AccountName,
			a.Department,
			formatAmount(a.RealValue),
			formatAmount(a.BudgetValue),
			formatVariation(a.VariationVsBudget),
			formatVariation(a.VariationVsPreviousPeriod),
			formatVariation(a.VariationVsLastYear),
			benchmark,
			formatTrend(a.Trend),
		)
	}
	return table
}

func (uc *DashboardUseCase) renderBreakdown(alerts []entity.Alert) {
	for _, a := range alerts {
		if len(a.CompanyBreakdown) == 0 {
			continue
		}
		lines := make([]string, 0, len(a.CompanyBreakdown))
		for _, c := range a.CompanyBreakdown {
			lines = append(lines, fmt.Sprintf("%s: %s (%s vs previous)",
				pterm.FgMagenta.Sprint(c.CompanyName), formatAmount(c.Value), formatVariation(c.VariationVsPreviousPeriod)))
		}
		uc.console.DisplayPanel(fmt.Sprintf("%s / %s by company", a.AccountName, a.Department), lines)
	}
}

func unresolvedCompany(ref string) string {
	if ref == "" {
		ref = "no company"
	}
	return pterm.FgLightRed.Sprintf("%s (unknown)", ref)
}

func formatAmount(v float64) string {
	return amountPrinter.Sprintf("%.2f", v)
}

func formatVariation(v float64) string {
	switch {
	case v > 0:
		return pterm.FgRed.Sprintf("⬆ %.2f%%", v)
	case v < 0:
		return pterm.FgGreen.Sprintf("⬇ %.2f%%", math.Abs(v))
	default:
		return pterm.FgYellow.Sprint("➡ 0.00%")
	}
}

func formatSeverity(s entity.Severity) string {
	switch s {
	case entity.SeverityCritical:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("CRITICAL")
	case entity.SeverityWarning:
		return pterm.FgYellow.Sprint("WARNING")
	default:
		return pterm.FgGreen.Sprint("OK")
	}
}

func formatTrend(t entity.Trend) string {
	switch t {
	case entity.TrendUp:
		return "⬆ up"
	case entity.TrendDown:
		return "⬇ down"
	default:
		return "➡ stable"
	}
}

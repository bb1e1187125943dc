package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// --- Funções de Exportação da Análise de Variação ---

var alertHeaders = []string{
	"Severity", "Account", "Department", "Account Type",
	"Actual", "Budget", "Previous Period", "Same Month Last Year", "Benchmark",
	"Variation vs Budget (%)", "Variation vs Previous (%)", "Variation vs Last Year (%)", "Variation vs Benchmark (%)",
	"Trend", "Company Breakdown",
}

func (r *ExportRepositoryImpl) ExportAlertsToCSV(result entity.AnalysisResult, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(alertHeaders); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, a := range result.Alerts {
		record := []string{
			string(a.Severity),
			a.AccountName,
			a.Department,
			string(a.AccountType),
			formatNumber(a.RealValue),
			formatNumber(a.BudgetValue),
			formatNumber(a.PreviousPeriodValue),
			formatNumber(a.SameMonthLastYearValue),
			formatOptional(a.BenchmarkValue),
			formatNumber(a.VariationVsBudget),
			formatNumber(a.VariationVsPreviousPeriod),
			formatNumber(a.VariationVsLastYear),
			formatOptional(a.VariationVsBenchmark),
			string(a.Trend),
			formatBreakdown(a.CompanyBreakdown),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportAlertsToJSON(result entity.AnalysisResult, filename, outputDir string) (string, error) {
	return r.writeJSON(result, filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportAlertsToPDF(result entity.AnalysisResult, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}
	pageWidth := 277.0

	drawTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+pageWidth, pdf.GetY())
		pdf.Ln(4)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by FinOps Variance (Go) | %s", r.now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  Variance Report: %s", result.Request.Period.Label())), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Organization: %s", result.Request.TenantID)), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	s := result.Summary
	drawTitle("Summary")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	summary := fmt.Sprintf(
		"Overall health: %s\nCritical: %d   Warning: %d   OK: %d\nRevenue vs budget: %.2f%%   Margin vs budget: %.2f%%   Expenses vs budget: %.2f%%",
		strings.ToUpper(string(s.OverallHealth)), s.CriticalCount, s.WarningCount, s.OkCount,
		s.RevenueVsBudget, s.MarginVsBudget, s.ExpensesVsBudget,
	)
	if result.Error != "" {
		summary += "\nPartial data: " + cleanRichTags(result.Error)
	}
	pdf.MultiCell(pageWidth, 5, tr(summary), "", "L", false)
	pdf.Ln(6)

	drawTitle("Alerts")
	widths := []float64{22, 62, 30, 30, 30, 22, 22, 22, 22, 15}
	headers := []string{"Severity", "Account", "Department", "Actual", "Budget", "vs Budget", "vs Prev.", "vs LY", "vs Bench.", "Trend"}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, a := range result.Alerts {
		cr, cg, cb := severityColor(a.Severity)
		pdf.SetTextColor(cr, cg, cb)
		pdf.CellFormat(widths[0], 6, strings.ToUpper(string(a.Severity)), "1", 0, "C", false, 0, "")

		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		cells := []string{
			truncate(a.AccountName, 40),
			truncate(a.Department, 18),
			formatNumber(a.RealValue),
			formatNumber(a.BudgetValue),
			formatPercent(a.VariationVsBudget),
			formatPercent(a.VariationVsPreviousPeriod),
			formatPercent(a.VariationVsLastYear),
			formatOptionalPercent(a.VariationVsBenchmark),
			string(a.Trend),
		}
		for i, c := range cells {
			align := "R"
			if i < 2 || i == len(cells)-1 {
				align = "L"
			}
			pdf.CellFormat(widths[i+1], 6, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(result.TopCritical) > 0 {
		pdf.Ln(6)
		drawTitle("Critical accounts by company")
		pdf.SetFont("Arial", "", 9)
		for _, a := range result.TopCritical {
			content := fmt.Sprintf("%s / %s\n%s", a.AccountName, a.Department, formatBreakdown(a.CompanyBreakdown))
			pdf.MultiCell(pageWidth, 5, tr(strings.TrimSpace(content)), "", "L", false)
			pdf.Ln(3)
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções de Exportação da Auditoria do Razão ---

func (r *ExportRepositoryImpl) ExportLedgerAuditToCSV(audit entity.LedgerAudit, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	headers := []string{"Account ID", "Account", "Department", "Company ID", "Company", "Debit", "Credit", "Balance", "Entries"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, c := range audit.Cells {
		company := c.CompanyName
		if !c.Resolved() {
			company = c.CompanyRef
		}
		record := []string{
			c.AccountID,
			c.AccountName,
			c.Department,
			c.CompanyID,
			company,
			c.Debit.StringFixed(2),
			c.Credit.StringFixed(2),
			c.Value.StringFixed(2),
			strconv.Itoa(c.Entries),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportLedgerAuditToJSON(audit entity.LedgerAudit, filename, outputDir string) (string, error) {
	return r.writeJSON(audit, filename, outputDir)
}

// --- Funções Auxiliares ---

func (r *ExportRepositoryImpl) writeJSON(data interface{}, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNumber(*v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

func formatOptionalPercent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatPercent(*v)
}

func formatBreakdown(breakdown []entity.CompanyBreakdown) string {
	lines := make([]string, 0, len(breakdown))
	for _, c := range breakdown {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", c.CompanyName, formatNumber(c.Value), formatPercent(c.VariationVsPreviousPeriod)))
	}
	return strings.Join(lines, "\n")
}

func severityColor(s entity.Severity) (int, int, int) {
	switch s {
	case entity.SeverityCritical:
		return 192, 0, 0
	case entity.SeverityWarning:
		return 200, 130, 0
	default:
		return 0, 128, 0
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

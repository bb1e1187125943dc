package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

var testCompanies = []entity.Company{
	{ID: "c1", Name: "Loja A"},
	{ID: "c2", Name: "Loja B"},
}

func ledgerRow(account, department, company string, amount float64, nature entity.Nature) entity.LedgerRow {
	return entity.LedgerRow{
		AccountID:   "acc-" + account,
		AccountName: account,
		Department:  department,
		CompanyRef:  company,
		Amount:      decimal.NewFromFloat(amount),
		Nature:      nature,
	}
}

type fakeLedger struct {
	mu           sync.Mutex
	companies    []entity.Company
	companiesErr error
	rows         map[entity.Period][]entity.LedgerRow
	failPeriods  map[entity.Period]error
	yearRows     []entity.LedgerRow
	failPage     int
	gate         func(ctx context.Context, q entity.LedgerQuery)

	fetchCalls int
	pageCalls  int
	queries    []entity.LedgerQuery
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		companies:   testCompanies,
		rows:        map[entity.Period][]entity.LedgerRow{},
		failPeriods: map[entity.Period]error{},
	}
}

func (f *fakeLedger) ListCompanies(ctx context.Context, tenantID string) ([]entity.Company, error) {
	if f.companiesErr != nil {
		return nil, f.companiesErr
	}
	return f.companies, nil
}

func (f *fakeLedger) FetchLedgerRows(ctx context.Context, q entity.LedgerQuery) ([]entity.LedgerRow, error) {
	f.mu.Lock()
	f.fetchCalls++
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if f.gate != nil {
		f.gate(ctx, q)
	}

	period := entity.Period{Year: q.Year, Month: q.Month}
	if err := f.failPeriods[period]; err != nil {
		return nil, err
	}
	return filterCompanies(f.rows[period], q.CompanyIDs), nil
}

func (f *fakeLedger) FetchLedgerPage(ctx context.Context, q entity.LedgerQuery, offset, limit int) ([]entity.LedgerRow, error) {
	f.mu.Lock()
	f.pageCalls++
	call := f.pageCalls
	f.mu.Unlock()

	if f.failPage == call {
		return nil, fmt.Errorf("connection reset")
	}
	rows := filterCompanies(f.yearRows, q.CompanyIDs)
	if offset >= len(rows) {
		return []entity.LedgerRow{}, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (f *fakeLedger) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

func filterCompanies(rows []entity.LedgerRow, ids []string) []entity.LedgerRow {
	if len(ids) == 0 {
		return rows
	}
	allowed := map[string]bool{}
	for _, id := range ids {
		allowed[id] = true
	}
	out := []entity.LedgerRow{}
	for _, r := range rows {
		if allowed[r.CompanyRef] {
			out = append(out, r)
		}
	}
	return out
}

type fakeBudget struct {
	snapshot entity.BudgetSnapshot
	err      error
}

func (f *fakeBudget) ListAssumptions(ctx context.Context, tenantID string) ([]entity.BudgetAssumption, error) {
	return f.snapshot.Assumptions, f.err
}

func (f *fakeBudget) ListAssumptionValues(ctx context.Context, tenantID string, period entity.Period) ([]entity.BudgetAssumptionValue, error) {
	return f.snapshot.Values, f.err
}

func (f *fakeBudget) ListMappings(ctx context.Context, tenantID string) ([]entity.BudgetMapping, error) {
	return f.snapshot.Mappings, f.err
}

type fakeBenchmarks struct {
	benchmarks []entity.Benchmark
	err        error
}

func (f *fakeBenchmarks) ListBenchmarks(ctx context.Context, tenantID string) ([]entity.Benchmark, error) {
	return f.benchmarks, f.err
}

type fakeNarrative struct {
	text   string
	err    error
	prompt string
}

func (f *fakeNarrative) GenerateNarrative(ctx context.Context, prompt string, insight entity.InsightContext) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

type fakeExport struct {
	calls []string
	err   error
}

func (f *fakeExport) record(kind, filename, dir string) (string, error) {
	f.calls = append(f.calls, kind)
	if f.err != nil {
		return "", f.err
	}
	return dir + "/" + filename + "." + kind, nil
}

func (f *fakeExport) ExportAlertsToCSV(result entity.AnalysisResult, filename, outputDir string) (string, error) {
	return f.record("csv", filename, outputDir)
}

func (f *fakeExport) ExportAlertsToJSON(result entity.AnalysisResult, filename, outputDir string) (string, error) {
	return f.record("json", filename, outputDir)
}

func (f *fakeExport) ExportAlertsToPDF(result entity.AnalysisResult, filename, outputDir string) (string, error) {
	return f.record("pdf", filename, outputDir)
}

func (f *fakeExport) ExportLedgerAuditToCSV(audit entity.LedgerAudit, filename, outputDir string) (string, error) {
	return f.record("audit-csv", filename, outputDir)
}

func (f *fakeExport) ExportLedgerAuditToJSON(audit entity.LedgerAudit, filename, outputDir string) (string, error) {
	return f.record("audit-json", filename, outputDir)
}

type fakeUploader struct {
	uploaded []string
}

func (f *fakeUploader) UploadReport(ctx context.Context, localPath string) (string, error) {
	f.uploaded = append(f.uploaded, localPath)
	return "s3://reports/" + localPath, nil
}

type fakeConsole struct {
	mu     sync.Mutex
	lines  []string
	panels map[string][]string
}

func newFakeConsole() *fakeConsole {
	return &fakeConsole{panels: map[string][]string{}}
}

func (c *fakeConsole) add(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, s)
}

func (c *fakeConsole) Print(a ...interface{})                 { c.add(fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.add(fmt.Sprintf(format, a...)) }
func (c *fakeConsole) Println(a ...interface{})               { c.add(fmt.Sprint(a...)) }
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.add("INFO " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.add("WARN " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.add("ERROR " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.add("OK " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) Status(message string) types.StatusHandle { return fakeStatus{} }
func (c *fakeConsole) CreateTable() types.TableInterface        { return &fakeTable{} }
func (c *fakeConsole) DisplayPanel(title string, lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panels[title] = lines
}

func (c *fakeConsole) output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.lines, "\n")
}

type fakeStatus struct{}

func (fakeStatus) Update(message string) {}
func (fakeStatus) Stop()                 {}

type fakeTable struct {
	rows int
}

func (t *fakeTable) AddColumn(name string, options ...interface{}) {}
func (t *fakeTable) AddRow(cells ...interface{})                   { t.rows++ }
func (t *fakeTable) Render() string                                { return fmt.Sprintf("table(%d rows)", t.rows) }

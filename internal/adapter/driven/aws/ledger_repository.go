package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	costMetric = "UnblendedCost"
	// CloudDepartment agrupa todo o custo de nuvem em um único departamento.
	CloudDepartment = "CLOUD"
	benchmarkMonths = 12
)

// LedgerRepository lê o Cost Explorer como se fosse um razão: cada serviço é
// uma conta de despesa e cada conta vinculada é uma empresa.
type LedgerRepository struct {
	clients *clientCache
	now     func() time.Time
}

// NewLedgerRepository cria o repositório de razão sobre o Cost Explorer.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{clients: newClientCache(), now: time.Now}
}

func (r *LedgerRepository) costExplorer(ctx context.Context, profile string) (*costexplorer.Client, error) {
	client, err := r.clients.getServiceClient(ctx, profile, "costexplorer")
	if err != nil {
		return nil, err
	}
	return client.(*costexplorer.Client), nil
}

// ListCompanies lista as contas vinculadas com custo nos últimos doze meses.
// Sem Organizations, devolve só a conta do próprio perfil.
func (r *LedgerRepository) ListCompanies(ctx context.Context, tenantID string) ([]entity.Company, error) {
	ceClient, err := r.costExplorer(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	end := firstOfMonth(r.now().UTC()).AddDate(0, 1, 0)
	start := end.AddDate(0, -benchmarkMonths, 0)

	companies := []entity.Company{}
	var token *string
	for {
		out, err := ceClient.GetDimensionValues(ctx, &costexplorer.GetDimensionValuesInput{
			Dimension:     ceTypes.DimensionLinkedAccount,
			TimePeriod:    dateInterval(start, end),
			NextPageToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list linked accounts: %w", err)
		}
		for _, v := range out.DimensionValues {
			id := aws.ToString(v.Value)
			name := v.Attributes["description"]
			if name == "" {
				name = id
			}
			companies = append(companies, entity.Company{ID: id, Name: name})
		}
		if out.NextPageToken == nil {
			break
		}
		token = out.NextPageToken
	}

	if len(companies) == 0 {
		accountID, err := r.clients.accountID(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		companies = append(companies, entity.Company{ID: accountID, Name: accountID})
	}
	return companies, nil
}

func (r *LedgerRepository) FetchLedgerRows(ctx context.Context, query entity.LedgerQuery) ([]entity.LedgerRow, error) {
	ceClient, err := r.costExplorer(ctx, query.TenantID)
	if err != nil {
		return nil, err
	}

	start, end := queryRange(query)
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod:  dateInterval(start, end),
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("LINKED_ACCOUNT")},
		},
		Filter: linkedAccountFilter(query.CompanyIDs),
	}

	rows := []entity.LedgerRow{}
	for {
		out, err := ceClient.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to get cost and usage: %w", err)
		}
		rows = append(rows, groupsToRows(out.ResultsByTime)...)
		if out.NextPageToken == nil {
			break
		}
		input.NextPageToken = out.NextPageToken
	}
	return rows, nil
}

// FetchLedgerPage lê tudo e fatia; o Cost Explorer não pagina por offset.
func (r *LedgerRepository) FetchLedgerPage(ctx context.Context, query entity.LedgerQuery, offset, limit int) ([]entity.LedgerRow, error) {
	rows, err := r.FetchLedgerRows(ctx, query)
	if err != nil {
		return nil, err
	}
	if offset >= len(rows) {
		return []entity.LedgerRow{}, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

// ListBenchmarks usa a média mensal dos últimos doze meses fechados de cada
// serviço como valor de referência.
func (r *LedgerRepository) ListBenchmarks(ctx context.Context, tenantID string) ([]entity.Benchmark, error) {
	ceClient, err := r.costExplorer(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	end := firstOfMonth(r.now().UTC())
	start := end.AddDate(0, -benchmarkMonths, 0)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod:  dateInterval(start, end),
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
	}

	var results []ceTypes.ResultByTime
	for {
		out, err := ceClient.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to get benchmark costs: %w", err)
		}
		results = append(results, out.ResultsByTime...)
		if out.NextPageToken == nil {
			break
		}
		input.NextPageToken = out.NextPageToken
	}
	return averageByService(results, benchmarkMonths), nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// queryRange devolve [início, fim) do mês pedido ou do ano inteiro.
func queryRange(q entity.LedgerQuery) (time.Time, time.Time) {
	if q.AllMonths() {
		start := time.Date(q.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	}
	start := time.Date(q.Year, time.Month(q.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func dateInterval(start, end time.Time) *ceTypes.DateInterval {
	return &ceTypes.DateInterval{
		Start: aws.String(start.Format("2006-01-02")),
		End:   aws.String(end.Format("2006-01-02")),
	}
}

func linkedAccountFilter(accountIDs []string) *ceTypes.Expression {
	if len(accountIDs) == 0 {
		return nil
	}
	return &ceTypes.Expression{
		Dimensions: &ceTypes.DimensionValues{
			Key:    ceTypes.DimensionLinkedAccount,
			Values: accountIDs,
		},
	}
}

// groupsToRows converte os grupos SERVICE x LINKED_ACCOUNT em lançamentos de
// débito, em ordem estável para a paginação.
func groupsToRows(results []ceTypes.ResultByTime) []entity.LedgerRow {
	type keyed struct {
		start string
		row   entity.LedgerRow
	}
	var items []keyed

	for _, result := range results {
		start := ""
		if result.TimePeriod != nil {
			start = aws.ToString(result.TimePeriod.Start)
		}
		for _, group := range result.Groups {
			if len(group.Keys) < 2 {
				continue
			}
			metric, ok := group.Metrics[costMetric]
			if !ok || metric.Amount == nil {
				continue
			}
			amount, err := decimal.NewFromString(aws.ToString(metric.Amount))
			if err != nil || amount.IsZero() {
				continue
			}
			items = append(items, keyed{
				start: start,
				row: entity.LedgerRow{
					AccountID:   group.Keys[0],
					AccountName: group.Keys[0],
					AccountType: entity.AccountTypeExpense,
					Department:  CloudDepartment,
					CompanyRef:  group.Keys[1],
					Amount:      amount,
					Nature:      entity.NatureDebit,
				},
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.row.AccountName != b.row.AccountName {
			return a.row.AccountName < b.row.AccountName
		}
		return a.row.CompanyRef < b.row.CompanyRef
	})

	rows := make([]entity.LedgerRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, it.row)
	}
	return rows
}

func averageByService(results []ceTypes.ResultByTime, months int) []entity.Benchmark {
	totals := map[string]decimal.Decimal{}
	for _, result := range results {
		for _, group := range result.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			metric, ok := group.Metrics[costMetric]
			if !ok || metric.Amount == nil {
				continue
			}
			amount, err := decimal.NewFromString(aws.ToString(metric.Amount))
			if err != nil {
				continue
			}
			totals[group.Keys[0]] = totals[group.Keys[0]].Add(amount)
		}
	}

	benchmarks := make([]entity.Benchmark, 0, len(totals))
	for service, total := range totals {
		benchmarks = append(benchmarks, entity.Benchmark{
			AccountName: service,
			Value:       total.Div(decimal.NewFromInt(int64(months))).InexactFloat64(),
		})
	}
	sort.Slice(benchmarks, func(i, j int) bool {
		return benchmarks[i].AccountName < benchmarks[j].AccountName
	})
	return benchmarks
}

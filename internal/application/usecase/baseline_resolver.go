package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/domain/repository"
	"github.com/diillson/finops-variance-go/internal/logger"
)

// Baselines reúne tudo o que o classificador precisa para uma requisição.
type Baselines struct {
	Current    entity.PeriodAggregation
	Previous   entity.PeriodAggregation
	LastYear   entity.PeriodAggregation
	Benchmarks []entity.Benchmark
	Budget     entity.BudgetSnapshot
	Errors     []error
}

// BaselineResolver dispara em paralelo as três bases do razão, os benchmarks e
// o orçamento, e só retorna quando todas terminaram.
type BaselineResolver struct {
	aggregator    *LedgerAggregator
	budgetRepo    repository.BudgetRepository
	benchmarkRepo repository.BenchmarkRepository
}

// NewBaselineResolver cria o resolvedor. budgetRepo e benchmarkRepo são opcionais.
func NewBaselineResolver(
	aggregator *LedgerAggregator,
	budgetRepo repository.BudgetRepository,
	benchmarkRepo repository.BenchmarkRepository,
) *BaselineResolver {
	return &BaselineResolver{
		aggregator:    aggregator,
		budgetRepo:    budgetRepo,
		benchmarkRepo: benchmarkRepo,
	}
}

// Resolve busca período corrente, anterior (com virada de ano) e mesmo mês do
// ano anterior. A falha de uma fonte deixa só aquela fonte vazia.
func (r *BaselineResolver) Resolve(ctx context.Context, req entity.AnalysisRequest) Baselines {
	current := req.Period
	previous := current.Previous()
	lastYear := current.SameMonthLastYear()

	b := Baselines{
		Current:  entity.PeriodAggregation{Period: current},
		Previous: entity.PeriodAggregation{Period: previous},
		LastYear: entity.PeriodAggregation{Period: lastYear},
		Budget:   entity.BudgetSnapshot{},
	}

	var wg sync.WaitGroup
	errChan := make(chan error, 5)

	aggregate := func(dst *entity.PeriodAggregation, label string, period entity.Period) {
		defer wg.Done()
		agg, err := r.aggregator.Aggregate(ctx, req.TenantID, period, req.CompanyFilter)
		if err != nil {
			errChan <- fmt.Errorf("failed to load %s: %w", label, err)
		}
		*dst = agg
	}

	wg.Add(3)
	go aggregate(&b.Current, "current period", current)
	go aggregate(&b.Previous, "previous period", previous)
	go aggregate(&b.LastYear, "same month last year", lastYear)

	if r.benchmarkRepo != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			benchmarks, err := r.benchmarkRepo.ListBenchmarks(ctx, req.TenantID)
			if err != nil {
				errChan <- fmt.Errorf("failed to load benchmarks: %w", err)
				return
			}
			b.Benchmarks = benchmarks
		}()
	}

	if r.budgetRepo != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snapshot, err := r.loadBudget(ctx, req)
			if err != nil {
				errChan <- fmt.Errorf("failed to load budget: %w", err)
				return
			}
			b.Budget = snapshot
		}()
	}

	wg.Wait()
	close(errChan)

	log := logger.FromContext(ctx)
	for err := range errChan {
		log.Warn().Err(err).Str("period", current.Label()).Msg("source unavailable, using empty data")
		b.Errors = append(b.Errors, err)
	}

	return b
}

func (r *BaselineResolver) loadBudget(ctx context.Context, req entity.AnalysisRequest) (entity.BudgetSnapshot, error) {
	assumptions, err := r.budgetRepo.ListAssumptions(ctx, req.TenantID)
	if err != nil {
		return entity.BudgetSnapshot{}, fmt.Errorf("listing assumptions: %w", err)
	}
	values, err := r.budgetRepo.ListAssumptionValues(ctx, req.TenantID, req.Period)
	if err != nil {
		return entity.BudgetSnapshot{}, fmt.Errorf("listing assumption values: %w", err)
	}
	mappings, err := r.budgetRepo.ListMappings(ctx, req.TenantID)
	if err != nil {
		return entity.BudgetSnapshot{}, fmt.Errorf("listing mappings: %w", err)
	}
	return entity.BudgetSnapshot{
		Assumptions: assumptions,
		Values:      values,
		Mappings:    mappings,
	}, nil
}

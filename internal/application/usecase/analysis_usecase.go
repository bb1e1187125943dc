package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/diillson/finops-variance-go/internal/domain/entity"
	"github.com/diillson/finops-variance-go/internal/domain/repository"
	"github.com/diillson/finops-variance-go/internal/domain/service"
	"github.com/diillson/finops-variance-go/internal/logger"
	"github.com/google/uuid"
)

// AnalysisUseCase executa o pipeline de variação e mantém o último snapshot
// aplicado. Só a requisição mais recente pode publicar resultado.
type AnalysisUseCase struct {
	resolver   *BaselineResolver
	classifier *service.Classifier

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	snapshot   entity.AnalysisResult
}

// NewAnalysisUseCase cria o caso de uso. budgetRepo e benchmarkRepo podem ser nil.
func NewAnalysisUseCase(
	ledgerRepo repository.LedgerRepository,
	budgetRepo repository.BudgetRepository,
	benchmarkRepo repository.BenchmarkRepository,
	thresholds service.Thresholds,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		resolver:   NewBaselineResolver(NewLedgerAggregator(ledgerRepo), budgetRepo, benchmarkRepo),
		classifier: service.NewClassifier(thresholds),
		snapshot:   emptyResult(entity.AnalysisRequest{}),
	}
}

// Thresholds devolve os limites em uso.
func (uc *AnalysisUseCase) Thresholds() service.Thresholds {
	return uc.classifier.Thresholds()
}

// Analyze roda uma análise completa sem tocar no snapshot compartilhado.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, req entity.AnalysisRequest) entity.AnalysisResult {
	result := emptyResult(req)
	result.RequestID = uuid.NewString()

	if !req.Valid() {
		return result
	}

	ctx = logger.WithRequest(ctx, result.RequestID, req.TenantID)
	log := logger.FromContext(ctx)
	log.Debug().
		Str("period", req.Period.Label()).
		Strs("companies", req.CompanyFilter).
		Msg("starting variance analysis")

	baselines := uc.resolver.Resolve(ctx, req)

	alerts := uc.classifier.Classify(service.ClassifierInput{
		Period:     req.Period,
		Current:    baselines.Current.Cells,
		Previous:   baselines.Previous.Cells,
		LastYear:   baselines.LastYear.Cells,
		Budget:     service.NewBudgetResolver(baselines.Budget),
		Benchmarks: baselines.Benchmarks,
	})

	summary := service.BuildSummary(alerts)
	insight := service.BuildInsightContext(req.Period, summary, alerts)

	result.Summary = summary
	result.Alerts = alerts
	result.TopCritical = service.TopAlerts(alerts, entity.SeverityCritical, service.TopOffenders)
	result.TopWarning = service.TopAlerts(alerts, entity.SeverityWarning, service.TopOffenders)
	result.AIContext = &insight

	if err := errors.Join(baselines.Errors...); err != nil {
		result.Error = err.Error()
	}

	log.Debug().
		Int("alerts", len(alerts)).
		Str("health", string(summary.OverallHealth)).
		Msg("variance analysis finished")

	return result
}

// Refresh roda a análise e publica o resultado no snapshot, a menos que uma
// requisição mais nova tenha começado nesse meio tempo. O bool informa se o
// resultado foi aplicado.
func (uc *AnalysisUseCase) Refresh(ctx context.Context, req entity.AnalysisRequest) (entity.AnalysisResult, bool) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	uc.mu.Lock()
	uc.generation++
	generation := uc.generation
	if uc.cancel != nil {
		uc.cancel()
	}
	uc.cancel = cancel
	uc.snapshot.IsLoading = true
	uc.mu.Unlock()

	result := uc.Analyze(runCtx, req)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if generation != uc.generation {
		log := logger.FromContext(ctx)
		log.Debug().
			Str("request_id", result.RequestID).
			Msg("discarding stale analysis result")
		return result, false
	}

	uc.cancel = nil
	uc.snapshot = result
	return result, true
}

// Snapshot devolve o último resultado aplicado.
func (uc *AnalysisUseCase) Snapshot() entity.AnalysisResult {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshot
}

func emptyResult(req entity.AnalysisRequest) entity.AnalysisResult {
	return entity.AnalysisResult{
		Request:     req,
		Summary:     service.BuildSummary(nil),
		Alerts:      []entity.Alert{},
		TopCritical: []entity.Alert{},
		TopWarning:  []entity.Alert{},
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	awsadapter "github.com/diillson/finops-variance-go/internal/adapter/driven/aws"
	"github.com/diillson/finops-variance-go/internal/adapter/driven/config"
	"github.com/diillson/finops-variance-go/internal/adapter/driven/export"
	"github.com/diillson/finops-variance-go/internal/adapter/driven/narrative"
	"github.com/diillson/finops-variance-go/internal/adapter/driven/postgres"
	"github.com/diillson/finops-variance-go/internal/adapter/driving/cli"
	"github.com/diillson/finops-variance-go/internal/application/usecase"
	"github.com/diillson/finops-variance-go/internal/domain/repository"
	"github.com/diillson/finops-variance-go/internal/domain/service"
	"github.com/diillson/finops-variance-go/internal/shared/types"
	"github.com/diillson/finops-variance-go/pkg/console"
	"github.com/diillson/finops-variance-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, config.NewConfigRepository())

	// Os repositórios dependem da fonte escolhida, então são montados por requisição
	app.SetDashboardFactory(buildDashboard)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildDashboard(ctx context.Context, args *types.CLIArgs) (*usecase.DashboardUseCase, func(), error) {
	var (
		ledgerRepo    repository.LedgerRepository
		budgetRepo    repository.BudgetRepository
		benchmarkRepo repository.BenchmarkRepository
		cleanup       = func() {}
	)

	switch args.Source {
	case types.SourcePostgres:
		pool, err := postgres.NewPool(ctx, args.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		cleanup = pool.Close
		ledgerRepo = postgres.NewLedgerRepository(pool)
		budgets := postgres.NewBudgetRepository(pool)
		budgetRepo = budgets
		benchmarkRepo = budgets
	case types.SourceAWS:
		ledger := awsadapter.NewLedgerRepository()
		ledgerRepo = ledger
		budgetRepo = awsadapter.NewBudgetRepository()
		benchmarkRepo = ledger
	default:
		return nil, nil, fmt.Errorf("%w: %q", types.ErrUnsupportedSource, args.Source)
	}

	var uploader repository.ReportUploader
	if args.S3Bucket != "" {
		profile := args.Profile
		if profile == "" && args.Source == types.SourceAWS {
			profile = args.Organization
		}
		uploader = awsadapter.NewReportUploader(profile, args.S3Bucket)
	}

	var narrativeRepo repository.NarrativeRepository
	if args.Insight {
		narrativeRepo = narrative.NewGeminiRepository("", args.Model)
	}

	thresholds := service.Thresholds{Warning: args.WarningThreshold, Critical: args.CriticalThreshold}

	dashboard := usecase.NewDashboardUseCase(
		usecase.NewAnalysisUseCase(ledgerRepo, budgetRepo, benchmarkRepo, thresholds),
		usecase.NewAuditUseCase(ledgerRepo),
		usecase.NewInsightUseCase(narrativeRepo),
		export.NewExportRepository(),
		uploader,
		console.NewConsole(),
	)
	return dashboard, cleanup, nil
}

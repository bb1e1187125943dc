package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/finops-variance-go/internal/application/usecase"
	"github.com/diillson/finops-variance-go/internal/domain/repository"
	"github.com/diillson/finops-variance-go/internal/domain/service"
	"github.com/diillson/finops-variance-go/internal/logger"
	"github.com/diillson/finops-variance-go/internal/shared/types"
	"github.com/diillson/finops-variance-go/pkg/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// DashboardFactory monta o caso de uso do dashboard para os argumentos
// resolvidos. A função devolvida libera os recursos abertos.
type DashboardFactory func(ctx context.Context, args *types.CLIArgs) (*usecase.DashboardUseCase, func(), error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	factory    DashboardFactory
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: configRepo,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:          "finops-variance",
		Short:        "Budget variance analysis for multi-company financial reporting",
		Version:      formattedVersion,
		RunE:         app.runCommand,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "FinOps Variance version: %s\n" .Version}}`)

	defaults := service.DefaultThresholds()
	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.String("env-file", ".env", "Path to a .env file with DATABASE_URL, GEMINI_API_KEY and friends")
	flags.StringP("org", "o", "", "Organization (tenant) to analyze; for the aws source this is the AWS profile")
	flags.IntP("year", "Y", 0, "Year to analyze (default: current year)")
	flags.StringP("month", "m", "", "Month to analyze, e.g. MARÇO, marco or 3 (default: current month)")
	flags.StringSliceP("company", "c", nil, "Restrict the analysis to these companies, by id or name (comma-separated)")
	flags.Float64("warning", defaults.Warning, "Warning threshold in percent")
	flags.Float64("critical", defaults.Critical, "Critical threshold in percent")
	flags.StringP("source", "s", types.SourcePostgres, "Data source: postgres or aws")
	flags.StringP("profile", "p", "", "AWS profile used for S3 uploads (default: the organization)")
	flags.String("database-url", "", "PostgreSQL connection string (default: $DATABASE_URL)")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.String("s3-bucket", "", "Upload exported reports to this S3 bucket, optionally with a prefix (bucket/prefix)")
	flags.String("model", "", "Gemini model used for --insight")
	flags.Bool("insight", false, "Generate a plain-language narrative of the month with Gemini")
	flags.Bool("audit", false, "Aggregate the whole year of ledger entries instead of the monthly variance view")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetDashboardFactory define como o caso de uso do dashboard é montado.
func (app *CLIApp) SetDashboardFactory(factory DashboardFactory) {
	app.factory = factory
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	args := &types.CLIArgs{}
	args.ConfigFile, _ = flags.GetString("config-file")
	args.Organization, _ = flags.GetString("org")
	args.Year, _ = flags.GetInt("year")
	args.Month, _ = flags.GetString("month")
	args.Companies, _ = flags.GetStringSlice("company")
	args.WarningThreshold, _ = flags.GetFloat64("warning")
	args.CriticalThreshold, _ = flags.GetFloat64("critical")
	args.Source, _ = flags.GetString("source")
	args.Profile, _ = flags.GetString("profile")
	args.DatabaseURL, _ = flags.GetString("database-url")
	args.ReportName, _ = flags.GetString("report-name")
	args.ReportType, _ = flags.GetStringSlice("report-type")
	args.Dir, _ = flags.GetString("dir")
	args.S3Bucket, _ = flags.GetString("s3-bucket")
	args.Model, _ = flags.GetString("model")
	args.Insight, _ = flags.GetBool("insight")
	args.Audit, _ = flags.GetBool("audit")
	args.LogLevel, _ = flags.GetString("log-level")

	if args.ConfigFile != "" {
		cfg, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		mergeConfig(args, cfg, flags)
	}

	return args, normalizeArgs(args)
}

// mergeConfig aplica valores do arquivo de configuração apenas às flags que
// não foram passadas explicitamente.
func mergeConfig(args *types.CLIArgs, cfg *types.Config, flags *pflag.FlagSet) {
	unset := func(name string) bool { return !flags.Changed(name) }

	if unset("org") && cfg.Organization != "" {
		args.Organization = cfg.Organization
	}
	if unset("year") && cfg.Year != 0 {
		args.Year = cfg.Year
	}
	if unset("month") && cfg.Month != "" {
		args.Month = cfg.Month
	}
	if unset("company") && len(cfg.Companies) > 0 {
		args.Companies = cfg.Companies
	}
	if unset("warning") && cfg.WarningThreshold != nil {
		args.WarningThreshold = *cfg.WarningThreshold
	}
	if unset("critical") && cfg.CriticalThreshold != nil {
		args.CriticalThreshold = *cfg.CriticalThreshold
	}
	if unset("source") && cfg.Source != "" {
		args.Source = cfg.Source
	}
	if unset("profile") && cfg.Profile != "" {
		args.Profile = cfg.Profile
	}
	if unset("database-url") && cfg.DatabaseURL != "" {
		args.DatabaseURL = cfg.DatabaseURL
	}
	if unset("report-name") && cfg.ReportName != "" {
		args.ReportName = cfg.ReportName
	}
	if unset("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if unset("dir") && cfg.Dir != "" {
		args.Dir = cfg.Dir
	}
	if unset("s3-bucket") && cfg.S3Bucket != "" {
		args.S3Bucket = cfg.S3Bucket
	}
	if unset("model") && cfg.Model != "" {
		args.Model = cfg.Model
	}
	if unset("insight") && cfg.Insight {
		args.Insight = true
	}
	if unset("log-level") && cfg.LogLevel != "" {
		args.LogLevel = cfg.LogLevel
	}
}

// normalizeArgs valida fonte e limites e resolve o diretório de saída.
func normalizeArgs(args *types.CLIArgs) error {
	args.Source = strings.ToLower(strings.TrimSpace(args.Source))
	if args.Source != types.SourcePostgres && args.Source != types.SourceAWS {
		return fmt.Errorf("%w: %q", types.ErrUnsupportedSource, args.Source)
	}

	thresholds := service.Thresholds{Warning: args.WarningThreshold, Critical: args.CriticalThreshold}
	if err := thresholds.Validate(); err != nil {
		return err
	}

	for i, t := range args.ReportType {
		args.ReportType[i] = strings.ToLower(strings.TrimSpace(t))
	}

	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return err
		}
		args.Dir = absDir
	}
	return nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	envFile, _ := cmd.Flags().GetString("env-file")
	if err := app.configRepo.LoadEnv(envFile); err != nil {
		return err
	}

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	log := logger.New()
	if level, err := zerolog.ParseLevel(strings.ToLower(cliArgs.LogLevel)); err == nil {
		log = log.Level(level)
	}
	ctx := logger.WithContext(cmd.Context(), log)

	if app.factory == nil {
		return fmt.Errorf("dashboard is not configured")
	}
	dashboard, cleanup, err := app.factory(ctx, cliArgs)
	if err != nil {
		return err
	}
	defer cleanup()

	return dashboard.RunDashboard(ctx, cliArgs)
}

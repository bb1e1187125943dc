package cli

import (
	"testing"

	"github.com/diillson/finops-variance-go/internal/shared/types"
	"github.com/stretchr/testify/require"
)

type stubConfigRepo struct {
	cfg     *types.Config
	envFile []string
}

func (s *stubConfigRepo) LoadConfigFile(filePath string) (*types.Config, error) {
	return s.cfg, nil
}

func (s *stubConfigRepo) LoadEnv(filenames ...string) error {
	s.envFile = filenames
	return nil
}

func float64Ptr(v float64) *float64 {
	return &v
}

func TestParseArgs_ConfigFileDoesNotOverrideFlags(t *testing.T) {
	repo := &stubConfigRepo{cfg: &types.Config{
		Organization:      "from-file",
		Year:              2023,
		Month:             "JANEIRO",
		Companies:         []string{"Loja A"},
		WarningThreshold:  float64Ptr(3),
		CriticalThreshold: float64Ptr(9),
		Source:            "aws",
		ReportType:        []string{"PDF"},
		Insight:           true,
	}}
	app := NewCLIApp("test", repo)

	require.NoError(t, app.rootCmd.ParseFlags([]string{
		"--config-file", "finops.toml",
		"--org", "from-flag",
		"--critical", "20",
		"--dir", "reports",
	}))

	args, err := app.parseArgs()
	require.NoError(t, err)
	require.Equal(t, "from-flag", args.Organization)
	require.Equal(t, 2023, args.Year)
	require.Equal(t, "JANEIRO", args.Month)
	require.Equal(t, []string{"Loja A"}, args.Companies)
	require.InDelta(t, 3.0, args.WarningThreshold, 1e-9)
	require.InDelta(t, 20.0, args.CriticalThreshold, 1e-9)
	require.Equal(t, types.SourceAWS, args.Source)
	require.Equal(t, []string{"pdf"}, args.ReportType)
	require.True(t, args.Insight)
	require.True(t, len(args.Dir) > len("reports"))
}

func TestParseArgs_Defaults(t *testing.T) {
	app := NewCLIApp("test", &stubConfigRepo{})
	require.NoError(t, app.rootCmd.ParseFlags([]string{"-o", "acme", "-c", "c1,c2"}))

	args, err := app.parseArgs()
	require.NoError(t, err)
	require.Equal(t, "acme", args.Organization)
	require.Equal(t, []string{"c1", "c2"}, args.Companies)
	require.Equal(t, types.SourcePostgres, args.Source)
	require.InDelta(t, 5.0, args.WarningThreshold, 1e-9)
	require.InDelta(t, 15.0, args.CriticalThreshold, 1e-9)
	require.Equal(t, []string{"csv"}, args.ReportType)
	require.NotEmpty(t, args.Dir)
}

func TestParseArgs_Validation(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
	}{
		{name: "unknown source", flags: []string{"--source", "oracle"}},
		{name: "warning above critical", flags: []string{"--warning", "20", "--critical", "10"}},
		{name: "negative threshold", flags: []string{"--warning", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewCLIApp("test", &stubConfigRepo{})
			require.NoError(t, app.rootCmd.ParseFlags(tt.flags))
			_, err := app.parseArgs()
			require.Error(t, err)
		})
	}
}

func TestParseArgs_ConfigFileZeroThresholdAndLogLevel(t *testing.T) {
	repo := &stubConfigRepo{cfg: &types.Config{
		WarningThreshold: float64Ptr(0),
		LogLevel:         "debug",
	}}
	app := NewCLIApp("test", repo)
	require.NoError(t, app.rootCmd.ParseFlags([]string{"--config-file", "finops.yaml", "-o", "acme"}))

	args, err := app.parseArgs()
	require.NoError(t, err)
	require.Zero(t, args.WarningThreshold)
	require.InDelta(t, 15.0, args.CriticalThreshold, 1e-9)
	require.Equal(t, "debug", args.LogLevel)

	app = NewCLIApp("test", repo)
	require.NoError(t, app.rootCmd.ParseFlags([]string{"--config-file", "finops.yaml", "--log-level", "error"}))
	args, err = app.parseArgs()
	require.NoError(t, err)
	require.Equal(t, "error", args.LogLevel)
}

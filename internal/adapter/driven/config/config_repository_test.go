package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/finops-variance-go/internal/shared/types"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "config.toml",
			content: `organization = "acme"
year = 2024
month = "MARÇO"
companies = ["Loja A", "c2"]
warning_threshold = 4.0
critical_threshold = 12.5
source = "Postgres"
report_type = ["csv", "pdf"]
`,
		},
		{
			name: "yaml",
			file: "config.yml",
			content: `organization: acme
year: 2024
month: MARÇO
companies: ["Loja A", "c2"]
warning_threshold: 4
critical_threshold: 12.5
source: postgres
report_type: [csv, pdf]
`,
		},
		{
			name: "json",
			file: "config.json",
			content: `{"organization":"acme","year":2024,"month":"MARÇO","companies":["Loja A","c2"],
"warning_threshold":4,"critical_threshold":12.5,"source":"postgres","report_type":["csv","pdf"]}`,
		},
	}

	repo := NewConfigRepository()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			require.Equal(t, "acme", cfg.Organization)
			require.Equal(t, 2024, cfg.Year)
			require.Equal(t, "MARÇO", cfg.Month)
			require.Equal(t, []string{"Loja A", "c2"}, cfg.Companies)
			require.NotNil(t, cfg.WarningThreshold)
			require.NotNil(t, cfg.CriticalThreshold)
			require.InDelta(t, 4.0, *cfg.WarningThreshold, 1e-9)
			require.InDelta(t, 12.5, *cfg.CriticalThreshold, 1e-9)
			require.Equal(t, types.SourcePostgres, cfg.Source)
			require.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
		})
	}
}

func TestLoadConfigFile_ThresholdPresence(t *testing.T) {
	repo := NewConfigRepository()

	cfg, err := repo.LoadConfigFile(writeFile(t, "config.yaml", "organization: acme\nwarning_threshold: 0\nlog_level: debug\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.WarningThreshold)
	require.Zero(t, *cfg.WarningThreshold)
	require.Nil(t, cfg.CriticalThreshold)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = repo.LoadConfigFile(t.TempDir())
	require.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, "config.ini", "organization=acme"))
	require.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(writeFile(t, "config.json", `{"source":"oracle"}`))
	require.ErrorIs(t, err, types.ErrUnsupportedSource)
}

func TestLoadEnv(t *testing.T) {
	repo := NewConfigRepository()

	t.Setenv("FINOPS_EXISTING", "kept")
	path := writeFile(t, ".env", "FINOPS_FROM_FILE=loaded\nFINOPS_EXISTING=overwritten\n")
	t.Cleanup(func() { os.Unsetenv("FINOPS_FROM_FILE") })

	require.NoError(t, repo.LoadEnv(path))
	require.Equal(t, "loaded", os.Getenv("FINOPS_FROM_FILE"))
	require.Equal(t, "kept", os.Getenv("FINOPS_EXISTING"))

	require.NoError(t, repo.LoadEnv(filepath.Join(t.TempDir(), "absent.env")))
}

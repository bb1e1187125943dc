package types

// Config represents the application configuration that can be loaded from a file.
// Thresholds are pointers so that an explicit 0 is told apart from an absent key.
type Config struct {
	Organization      string   `json:"organization" yaml:"organization" toml:"organization"`
	Year              int      `json:"year" yaml:"year" toml:"year"`
	Month             string   `json:"month" yaml:"month" toml:"month"`
	Companies         []string `json:"companies" yaml:"companies" toml:"companies"`
	WarningThreshold  *float64 `json:"warning_threshold" yaml:"warning_threshold" toml:"warning_threshold"`
	CriticalThreshold *float64 `json:"critical_threshold" yaml:"critical_threshold" toml:"critical_threshold"`
	Source            string   `json:"source" yaml:"source" toml:"source"`
	Profile           string   `json:"profile" yaml:"profile" toml:"profile"`
	DatabaseURL       string   `json:"database_url" yaml:"database_url" toml:"database_url"`
	ReportName        string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType        []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir               string   `json:"dir" yaml:"dir" toml:"dir"`
	S3Bucket          string   `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	Model             string   `json:"model" yaml:"model" toml:"model"`
	Insight           bool     `json:"insight" yaml:"insight" toml:"insight"`
	LogLevel          string   `json:"log_level" yaml:"log_level" toml:"log_level"`
}

const (
	SourcePostgres = "postgres"
	SourceAWS      = "aws"
)

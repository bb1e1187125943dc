package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile        string
	Organization      string
	Year              int
	Month             string
	Companies         []string
	WarningThreshold  float64
	CriticalThreshold float64
	Source            string
	Profile           string
	DatabaseURL       string
	ReportName        string
	ReportType        []string
	Dir               string
	S3Bucket          string
	Model             string
	Insight           bool
	Audit             bool
	LogLevel          string
}

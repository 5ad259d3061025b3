package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	BaseURL     string
	APIKey      string
	ReportName  string
	ReportType  []string
	Dir         string
	BillingDays int
}

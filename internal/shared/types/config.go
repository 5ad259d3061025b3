package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	BaseURL     string   `json:"base_url" yaml:"base_url" toml:"base_url"`
	APIKey      string   `json:"api_key" yaml:"api_key" toml:"api_key"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir"`
	BillingDays int      `json:"billing_days" yaml:"billing_days" toml:"billing_days"`
}

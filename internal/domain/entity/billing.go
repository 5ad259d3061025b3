package entity

import "time"

// BillingSummary agrega os totais do período retornados pela API.
type BillingSummary struct {
	TotalJobs   int     `json:"total_jobs"`
	TotalTokens int64   `json:"total_tokens"`
	TotalCost   float64 `json:"total_cost,omitempty"`
}

// ModelUsage represents aggregated usage for a single model within the period.
type ModelUsage struct {
	ModelName string  `json:"model_name"`
	Jobs      int     `json:"jobs"`
	Tokens    int64   `json:"tokens"`
	Cost      float64 `json:"cost,omitempty"`
}

// BillingReport is the summary report for a period, optionally filtered by account.
type BillingReport struct {
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	AccountID int            `json:"account_id,omitempty"`
	Summary   BillingSummary `json:"summary"`
	ByModel   []ModelUsage   `json:"by_model"`
}

// BillingJobRow is one itemized job line of the detailed billing report.
type BillingJobRow struct {
	Timestamp   time.Time `json:"timestamp"`
	AccountName string    `json:"account_name"`
	UserName    string    `json:"user_name"`
	JobID       string    `json:"job_id"`
	PromptName  string    `json:"prompt_name"`
	ModelName   string    `json:"model_name"`
	Cost        float64   `json:"cost"`
}

// DetailedBillingReport carrega as linhas itemizadas do período.
type DetailedBillingReport struct {
	AccountID int             `json:"account_id"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Breakdown []BillingJobRow `json:"breakdown"`
}

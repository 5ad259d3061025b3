package repository

import (
	"context"

	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
)

// APIRepository defines the interface for the remote admin API. Every method
// issues exactly one HTTP request; there are no retries and no client-side
// state beyond the key attached to each call.
type APIRepository interface {
	// Login probe: a privileged list-accounts call returning 200 proves the key.
	ProbeKey(ctx context.Context, apiKey string) error

	// Account Operations
	ListAccounts(ctx context.Context) ([]entity.Account, error)
	CreateAccount(ctx context.Context, input entity.NewAccountInput) (*entity.Account, error)
	SetAccountStatus(ctx context.Context, accountID int, active bool) error

	// User Operations
	ListUsers(ctx context.Context, accountID int) ([]entity.User, error)
	CreateUser(ctx context.Context, input entity.NewUserInput) (*entity.User, error)
	SetUserStatus(ctx context.Context, userID int, active bool) error
	RegenerateAPIKey(ctx context.Context, userID int) (string, error)

	// Prompt Operations
	ListPrompts(ctx context.Context) ([]entity.Prompt, error)
	CreatePrompt(ctx context.Context, input entity.PromptInput) (*entity.Prompt, error)
	UpdatePrompt(ctx context.Context, promptID int, input entity.PromptInput) error
	DeletePrompt(ctx context.Context, promptID int) error

	// Permission Operations
	GetPermissions(ctx context.Context, accountID int) (entity.PermissionSet, error)
	SyncPermissions(ctx context.Context, accountID int, perms entity.PermissionSet) error

	// Billing Operations
	GetBillingReport(ctx context.Context, startDate, endDate string, accountID int) (*entity.BillingReport, error)
	GetDetailedBillingReport(ctx context.Context, accountID int, startDate, endDate string) (*entity.DetailedBillingReport, error)

	// SetAPIKey defines the key attached as x-api-key to every request.
	SetAPIKey(apiKey string)

	// SetBaseURL defines the API base URL (flags/config are parsed after wiring).
	SetBaseURL(baseURL string)
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/setdocai/setdoc-admin-go/internal/application/gate"
	"github.com/setdocai/setdoc-admin-go/internal/application/session"
	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
	"github.com/setdocai/setdoc-admin-go/internal/domain/repository"
	"github.com/setdocai/setdoc-admin-go/internal/shared/types"
)

// TTLs do cache de leitura. O cache é uma otimização: a API remota continua
// sendo a fonte de verdade.
const (
	accountsTTL = 30 * time.Second
	promptsTTL  = 60 * time.Second
)

const (
	cacheKeyAccounts = "accounts"
	cacheKeyPrompts  = "prompts"
)

// AdminUseCase orchestrates the admin dashboard pages: accounts and users,
// prompt catalog, per-account permissions and billing reports.
type AdminUseCase struct {
	apiRepo    repository.APIRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface

	session *session.Store
	gate    *gate.Gate
	cache   *gocache.Cache
}

// NewAdminUseCase creates a new admin use case.
func NewAdminUseCase(
	apiRepo repository.APIRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *AdminUseCase {
	store := session.NewStore()
	return &AdminUseCase{
		apiRepo:    apiRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		session:    store,
		gate:       gate.New(store),
		cache:      gocache.New(accountsTTL, 5*time.Minute),
	}
}

// Session expõe o estado da sessão para a camada de visualização.
func (uc *AdminUseCase) Session() *session.Store {
	return uc.session
}

// SetBaseURL repassa a base URL resolvida (flags/config) ao cliente da API.
func (uc *AdminUseCase) SetBaseURL(baseURL string) {
	uc.apiRepo.SetBaseURL(baseURL)
}

// Login valida a chave com o probe de listagem de contas. Um 200 é tratado
// como prova de que a chave é de administrador.
func (uc *AdminUseCase) Login(ctx context.Context, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return types.ErrNoAPIKey
	}
	if err := uc.apiRepo.ProbeKey(ctx, apiKey); err != nil {
		if types.IsUnauthorized(err) {
			return types.ErrNotAuthorized
		}
		return err
	}
	uc.apiRepo.SetAPIKey(apiKey)
	uc.session.Authenticate(apiKey)
	return nil
}

// Logout descarta toda a sessão: estado, cache e chave.
func (uc *AdminUseCase) Logout() {
	uc.session.Reset()
	uc.cache.Flush()
	uc.apiRepo.SetAPIKey("")
}

// invalidateCaches discards every cached read after a successful mutation.
// Coarse on purpose: clearing everything beats computing dependency sets.
func (uc *AdminUseCase) invalidateCaches() {
	uc.cache.Flush()
}

// checkAuth derruba a sessão quando a API passa a recusar a chave.
func (uc *AdminUseCase) checkAuth(err error) error {
	if err != nil && types.IsUnauthorized(err) && uc.session.IsAuthenticated() {
		uc.console.LogWarning("The administrator key was rejected by the API. Logging out.")
		uc.Logout()
	}
	return err
}

// --- Leituras (com cache de curta duração) ---

// ListAccounts retorna as contas, do cache quando recente.
func (uc *AdminUseCase) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	if cached, ok := uc.cache.Get(cacheKeyAccounts); ok {
		return cached.([]entity.Account), nil
	}
	accounts, err := uc.apiRepo.ListAccounts(ctx)
	if err != nil {
		return nil, uc.checkAuth(err)
	}
	uc.cache.Set(cacheKeyAccounts, accounts, accountsTTL)
	return accounts, nil
}

// ListUsers retorna os usuários de uma conta, do cache quando recente.
func (uc *AdminUseCase) ListUsers(ctx context.Context, accountID int) ([]entity.User, error) {
	key := fmt.Sprintf("users:%d", accountID)
	if cached, ok := uc.cache.Get(key); ok {
		return cached.([]entity.User), nil
	}
	users, err := uc.apiRepo.ListUsers(ctx, accountID)
	if err != nil {
		return nil, uc.checkAuth(err)
	}
	uc.cache.Set(key, users, accountsTTL)
	return users, nil
}

// ListPrompts retorna o catálogo de prompts, do cache quando recente.
func (uc *AdminUseCase) ListPrompts(ctx context.Context) ([]entity.Prompt, error) {
	if cached, ok := uc.cache.Get(cacheKeyPrompts); ok {
		return cached.([]entity.Prompt), nil
	}
	prompts, err := uc.apiRepo.ListPrompts(ctx)
	if err != nil {
		return nil, uc.checkAuth(err)
	}
	uc.cache.Set(cacheKeyPrompts, prompts, promptsTTL)
	return prompts, nil
}

// GetPermissions retorna as permissões de uma conta, invalidando o cache
// quando a conta selecionada mudou desde a última leitura.
func (uc *AdminUseCase) GetPermissions(ctx context.Context, accountID int) (entity.PermissionSet, error) {
	key := fmt.Sprintf("perms:%d", accountID)
	if uc.session.SelectedAccount() != accountID {
		uc.cache.Delete(key)
		uc.session.SelectAccount(accountID)
	}
	if cached, ok := uc.cache.Get(key); ok {
		return cached.(entity.PermissionSet), nil
	}
	perms, err := uc.apiRepo.GetPermissions(ctx, accountID)
	if err != nil {
		return entity.PermissionSet{}, uc.checkAuth(err)
	}
	uc.cache.Set(key, perms, accountsTTL)
	return perms, nil
}

// --- Mutações diretas (não destrutivas, sem gate) ---

// CreateAccount cria uma conta e invalida os caches de leitura.
func (uc *AdminUseCase) CreateAccount(ctx context.Context, input entity.NewAccountInput) (*entity.Account, error) {
	account, err := uc.apiRepo.CreateAccount(ctx, input)
	if err != nil {
		return nil, uc.checkAuth(err)
	}
	uc.invalidateCaches()
	return account, nil
}

// CreateUser cria um usuário e retém a API key emitida para exibição única.
func (uc *AdminUseCase) CreateUser(ctx context.Context, input entity.NewUserInput) (*entity.User, error) {
	user, err := uc.apiRepo.CreateUser(ctx, input)
	if err != nil {
		return nil, uc.checkAuth(err)
	}
	uc.invalidateCaches()
	if user.APIKey != "" {
		uc.session.SetIssuedSecret(user.FullName, user.APIKey)
		user.APIKey = ""
	}
	return user, nil
}

// CreatePrompt cria um prompt no catálogo.
func (uc *AdminUseCase) CreatePrompt(ctx context.Context, input entity.PromptInput) (*entity.Prompt, error) {
	prompt, err := uc.apiRepo.CreatePrompt(ctx, input)
	if err != nil {
		return nil, uc.checkAuth(err)
	}
	uc.invalidateCaches()
	return prompt, nil
}

// UpdatePrompt atualiza nome e texto de um prompt existente.
func (uc *AdminUseCase) UpdatePrompt(ctx context.Context, promptID int, input entity.PromptInput) error {
	if err := uc.apiRepo.UpdatePrompt(ctx, promptID, input); err != nil {
		return uc.checkAuth(err)
	}
	uc.invalidateCaches()
	return nil
}

// SyncPermissions substitui o conjunto inteiro de permissões da conta.
func (uc *AdminUseCase) SyncPermissions(ctx context.Context, accountID int, promptIDs []int) error {
	if err := uc.apiRepo.SyncPermissions(ctx, accountID, entity.PermissionSet{PromptIDs: promptIDs}); err != nil {
		return uc.checkAuth(err)
	}
	uc.invalidateCaches()
	return nil
}

// --- Ações destrutivas (via gate de confirmação) ---

// ArmSetAccountStatus arma a troca de status de uma conta.
func (uc *AdminUseCase) ArmSetAccountStatus(accountID int, newActive bool, label string) {
	uc.gate.Arm(entity.PendingConfirmation{
		Kind:     entity.ActionSetAccountStatus,
		TargetID: accountID,
		NewValue: &newActive,
		Label:    label,
	})
}

// ArmSetUserStatus arma a troca de status de um usuário.
func (uc *AdminUseCase) ArmSetUserStatus(userID int, newActive bool, label string) {
	uc.gate.Arm(entity.PendingConfirmation{
		Kind:     entity.ActionSetUserStatus,
		TargetID: userID,
		NewValue: &newActive,
		Label:    label,
	})
}

// ArmRegenerateKey arma a regeneração da API key de um usuário.
func (uc *AdminUseCase) ArmRegenerateKey(userID int, label string) {
	uc.gate.Arm(entity.PendingConfirmation{
		Kind:     entity.ActionRegenerateKey,
		TargetID: userID,
		Label:    label,
	})
}

// ArmDeletePrompt arma a exclusão de um prompt.
func (uc *AdminUseCase) ArmDeletePrompt(promptID int, label string) {
	uc.gate.Arm(entity.PendingConfirmation{
		Kind:     entity.ActionDeletePrompt,
		TargetID: promptID,
		Label:    label,
	})
}

// Pending retorna a ação armada, se houver.
func (uc *AdminUseCase) Pending() *entity.PendingConfirmation {
	return uc.gate.Armed()
}

// CancelPending descarta a ação armada sem efeito algum.
func (uc *AdminUseCase) CancelPending() error {
	return uc.gate.Cancel()
}

// ConfirmPending executa exatamente uma chamada mutante para a ação armada e
// volta ao estado ocioso, com ou sem sucesso. Sucesso invalida os caches.
func (uc *AdminUseCase) ConfirmPending(ctx context.Context) error {
	err := uc.gate.Confirm(ctx, func(ctx context.Context, pending entity.PendingConfirmation) error {
		switch pending.Kind {
		case entity.ActionSetAccountStatus:
			return uc.apiRepo.SetAccountStatus(ctx, pending.TargetID, *pending.NewValue)
		case entity.ActionSetUserStatus:
			return uc.apiRepo.SetUserStatus(ctx, pending.TargetID, *pending.NewValue)
		case entity.ActionRegenerateKey:
			newKey, err := uc.apiRepo.RegenerateAPIKey(ctx, pending.TargetID)
			if err != nil {
				return err
			}
			uc.session.SetIssuedSecret(pending.Label, newKey)
			return nil
		case entity.ActionDeletePrompt:
			return uc.apiRepo.DeletePrompt(ctx, pending.TargetID)
		default:
			return fmt.Errorf("unknown pending action kind: %s", pending.Kind)
		}
	})
	if err != nil {
		return uc.checkAuth(err)
	}
	uc.invalidateCaches()
	return nil
}

// --- Faturamento ---

// GetBillingReport busca o relatório resumido. Nunca é cacheado além da
// visualização corrente.
func (uc *AdminUseCase) GetBillingReport(ctx context.Context, startDate, endDate string, accountID int) (*entity.BillingReport, error) {
	report, err := uc.apiRepo.GetBillingReport(ctx, startDate, endDate, accountID)
	if err != nil {
		return nil, uc.checkAuth(err)
	}
	return report, nil
}

// GetDetailedBillingReport busca o relatório itemizado por job.
func (uc *AdminUseCase) GetDetailedBillingReport(ctx context.Context, accountID int, startDate, endDate string) (*entity.DetailedBillingReport, error) {
	report, err := uc.apiRepo.GetDetailedBillingReport(ctx, accountID, startDate, endDate)
	if err != nil {
		return nil, uc.checkAuth(err)
	}
	return report, nil
}

// ExportDetailedReport exporta o relatório itemizado nos formatos pedidos.
func (uc *AdminUseCase) ExportDetailedReport(report *entity.DetailedBillingReport, accountName string, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			path, err := uc.exportRepo.ExportDetailedToCSV(report, accountName, args.ReportName, args.Dir)
			uc.reportExportResult("CSV", path, err)
		case "json":
			path, err := uc.exportRepo.ExportDetailedToJSON(report, args.ReportName, args.Dir)
			uc.reportExportResult("JSON", path, err)
		case "pdf":
			path, err := uc.exportRepo.ExportDetailedToPDF(report, accountName, args.ReportName, args.Dir)
			uc.reportExportResult("PDF", path, err)
		case "xlsx":
			path, err := uc.exportRepo.ExportDetailedToXLSX(report, accountName, args.ReportName, args.Dir)
			uc.reportExportResult("XLSX", path, err)
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}

// ExportSummaryReport exporta o relatório resumido nos formatos pedidos.
func (uc *AdminUseCase) ExportSummaryReport(report *entity.BillingReport, accountName string, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			path, err := uc.exportRepo.ExportSummaryToCSV(report, accountName, args.ReportName, args.Dir)
			uc.reportExportResult("CSV", path, err)
		case "json":
			path, err := uc.exportRepo.ExportSummaryToJSON(report, args.ReportName, args.Dir)
			uc.reportExportResult("JSON", path, err)
		case "pdf":
			path, err := uc.exportRepo.ExportSummaryToPDF(report, accountName, args.ReportName, args.Dir)
			uc.reportExportResult("PDF", path, err)
		case "xlsx":
			uc.console.LogWarning("XLSX export only applies to the detailed report")
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}

func (uc *AdminUseCase) reportExportResult(format, path string, err error) {
	if err != nil {
		uc.console.LogError("Failed to export to %s: %s", format, err)
	} else {
		uc.console.LogSuccess("Successfully exported to %s: %s", format, path)
	}
}

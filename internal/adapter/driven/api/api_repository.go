package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
	"github.com/setdocai/setdoc-admin-go/internal/domain/repository"
	"github.com/setdocai/setdoc-admin-go/internal/shared/types"
)

// Rotas da API administrativa. O contrato é fixo; apenas a base URL varia.
const (
	routeAccounts        = "/admin/accounts/"
	routeAccountStatus   = "/admin/accounts/%d/status"
	routeAccountUsers    = "/admin/accounts/%d/users/"
	routeAccountPerms    = "/admin/accounts/%d/permissions"
	routeUsers           = "/admin/users/"
	routeUserStatus      = "/admin/users/%d/status"
	routeRegenerateKey   = "/admin/users/%d/regenerate-api-key"
	routePrompts         = "/admin/prompts/"
	routePrompt          = "/admin/prompts/%d"
	routeBillingReport   = "/billing/report/"
	routeBillingDetailed = "/billing/report/detailed"
)

// probeTimeout limita a validação de chave no login; as demais chamadas usam
// o default do transporte.
const probeTimeout = 10 * time.Second

// APIRepositoryImpl implementa o APIRepository sobre HTTP.
type APIRepositoryImpl struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAPIRepository cria uma nova implementação do APIRepository.
func NewAPIRepository(baseURL string) repository.APIRepository {
	return &APIRepositoryImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// SetAPIKey defines the administrator key attached to every request.
func (r *APIRepositoryImpl) SetAPIKey(apiKey string) {
	r.apiKey = apiKey
}

// SetBaseURL redefine a base URL (usado quando --base-url ou config a sobrepõe).
func (r *APIRepositoryImpl) SetBaseURL(baseURL string) {
	r.baseURL = strings.TrimRight(baseURL, "/")
}

// do issues a single request and decodes the JSON response into out (when out
// is non-nil). Failures are always returned as *types.APIError.
func (r *APIRepositoryImpl) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	u := r.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &types.APIError{Kind: types.ErrKindTransport, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &types.APIError{Kind: types.ErrKindTransport, Err: err}
	}
	req.Header.Set("x-api-key", r.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return &types.APIError{Kind: types.ErrKindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}

	if out == nil {
		// Drena o corpo para permitir reuso da conexão.
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return &types.APIError{
			Kind:   types.ErrKindServer,
			Status: resp.StatusCode,
			Detail: fmt.Sprintf("unexpected response shape: %v", err),
		}
	}
	return nil
}

// newStatusError mapeia um status não-2xx para a taxonomia de erros, extraindo
// a mensagem "detail" do corpo JSON quando houver.
func newStatusError(resp *http.Response) *types.APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	detail := strings.TrimSpace(string(raw))
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		detail = payload.Detail
	}

	kind := types.ErrKindValidation
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = types.ErrKindUnauthorized
	case resp.StatusCode >= 500:
		kind = types.ErrKindServer
	}

	return &types.APIError{Kind: kind, Status: resp.StatusCode, Detail: detail}
}

// ProbeKey valida a chave com a chamada privilegiada de listagem de contas.
// Um 200 é tratado como prova de chave de administrador válida.
func (r *APIRepositoryImpl) ProbeKey(ctx context.Context, apiKey string) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	previous := r.apiKey
	r.apiKey = apiKey
	var accounts []entity.Account
	if err := r.do(probeCtx, http.MethodGet, routeAccounts, nil, nil, &accounts); err != nil {
		r.apiKey = previous
		return err
	}
	return nil
}

// --- Contas ---

func (r *APIRepositoryImpl) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	var accounts []entity.Account
	if err := r.do(ctx, http.MethodGet, routeAccounts, nil, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *APIRepositoryImpl) CreateAccount(ctx context.Context, input entity.NewAccountInput) (*entity.Account, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, types.ErrEmptyField
	}
	var account entity.Account
	if err := r.do(ctx, http.MethodPost, routeAccounts, nil, input, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *APIRepositoryImpl) SetAccountStatus(ctx context.Context, accountID int, active bool) error {
	query := url.Values{"active_status": {strconv.FormatBool(active)}}
	return r.do(ctx, http.MethodPut, fmt.Sprintf(routeAccountStatus, accountID), query, nil, nil)
}

// --- Usuários ---

func (r *APIRepositoryImpl) ListUsers(ctx context.Context, accountID int) ([]entity.User, error) {
	var users []entity.User
	if err := r.do(ctx, http.MethodGet, fmt.Sprintf(routeAccountUsers, accountID), nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *APIRepositoryImpl) CreateUser(ctx context.Context, input entity.NewUserInput) (*entity.User, error) {
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, types.ErrEmptyField
	}
	var user entity.User
	if err := r.do(ctx, http.MethodPost, routeUsers, nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *APIRepositoryImpl) SetUserStatus(ctx context.Context, userID int, active bool) error {
	query := url.Values{"active_status": {strconv.FormatBool(active)}}
	return r.do(ctx, http.MethodPut, fmt.Sprintf(routeUserStatus, userID), query, nil, nil)
}

func (r *APIRepositoryImpl) RegenerateAPIKey(ctx context.Context, userID int) (string, error) {
	var payload struct {
		APIKey string `json:"api_key"`
	}
	if err := r.do(ctx, http.MethodPost, fmt.Sprintf(routeRegenerateKey, userID), nil, nil, &payload); err != nil {
		return "", err
	}
	return payload.APIKey, nil
}

// --- Prompts ---

func (r *APIRepositoryImpl) ListPrompts(ctx context.Context) ([]entity.Prompt, error) {
	var prompts []entity.Prompt
	if err := r.do(ctx, http.MethodGet, routePrompts, nil, nil, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

func (r *APIRepositoryImpl) CreatePrompt(ctx context.Context, input entity.PromptInput) (*entity.Prompt, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.PromptText) == "" {
		return nil, types.ErrEmptyField
	}
	var prompt entity.Prompt
	if err := r.do(ctx, http.MethodPost, routePrompts, nil, input, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r *APIRepositoryImpl) UpdatePrompt(ctx context.Context, promptID int, input entity.PromptInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.PromptText) == "" {
		return types.ErrEmptyField
	}
	return r.do(ctx, http.MethodPut, fmt.Sprintf(routePrompt, promptID), nil, input, nil)
}

func (r *APIRepositoryImpl) DeletePrompt(ctx context.Context, promptID int) error {
	return r.do(ctx, http.MethodDelete, fmt.Sprintf(routePrompt, promptID), nil, nil, nil)
}

// --- Permissões ---

func (r *APIRepositoryImpl) GetPermissions(ctx context.Context, accountID int) (entity.PermissionSet, error) {
	var perms entity.PermissionSet
	if err := r.do(ctx, http.MethodGet, fmt.Sprintf(routeAccountPerms, accountID), nil, nil, &perms); err != nil {
		return entity.PermissionSet{}, err
	}
	return perms, nil
}

// SyncPermissions substitui o conjunto inteiro de permissões da conta.
func (r *APIRepositoryImpl) SyncPermissions(ctx context.Context, accountID int, perms entity.PermissionSet) error {
	if perms.PromptIDs == nil {
		perms.PromptIDs = []int{}
	}
	return r.do(ctx, http.MethodPut, fmt.Sprintf(routeAccountPerms, accountID), nil, perms, nil)
}

// --- Faturamento ---

func (r *APIRepositoryImpl) GetBillingReport(ctx context.Context, startDate, endDate string, accountID int) (*entity.BillingReport, error) {
	query := url.Values{
		"start_date": {startDate},
		"end_date":   {endDate},
	}
	if accountID > 0 {
		query.Set("account_id", strconv.Itoa(accountID))
	}

	var report entity.BillingReport
	if err := r.do(ctx, http.MethodGet, routeBillingReport, query, nil, &report); err != nil {
		return nil, err
	}
	report.StartDate = startDate
	report.EndDate = endDate
	report.AccountID = accountID
	return &report, nil
}

func (r *APIRepositoryImpl) GetDetailedBillingReport(ctx context.Context, accountID int, startDate, endDate string) (*entity.DetailedBillingReport, error) {
	query := url.Values{
		"account_id": {strconv.Itoa(accountID)},
		"start_date": {startDate},
		"end_date":   {endDate},
	}

	var report entity.DetailedBillingReport
	if err := r.do(ctx, http.MethodGet, routeBillingDetailed, query, nil, &report); err != nil {
		return nil, err
	}
	report.AccountID = accountID
	report.StartDate = startDate
	report.EndDate = endDate
	return &report, nil
}

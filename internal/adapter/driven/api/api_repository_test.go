package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
	"github.com/setdocai/setdoc-admin-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeKeySuccess(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/admin/accounts/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL)
	err := repo.ProbeKey(context.Background(), "sk-admin-ok")
	require.NoError(t, err)
	assert.Equal(t, "sk-admin-ok", gotKey)

	// A chave aceita fica anexada às chamadas seguintes.
	_, err = repo.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-admin-ok", gotKey)
}

func TestProbeKeyRejectedDoesNotRetainKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid API Key"}`))
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL)
	err := repo.ProbeKey(context.Background(), "sk-bad")
	require.Error(t, err)

	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, types.ErrKindUnauthorized, apiErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid API Key", apiErr.Detail)
	assert.True(t, types.IsUnauthorized(err))

	// A chave rejeitada não pode vazar para chamadas posteriores.
	repo.ListAccounts(context.Background())
	assert.Empty(t, gotKey)
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	repo := NewAPIRepository(server.URL)
	_, err := repo.ListAccounts(context.Background())
	require.Error(t, err)

	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, types.ErrKindTransport, apiErr.Kind)
	assert.True(t, types.IsTransport(err))
	assert.False(t, types.IsUnauthorized(err))
}

func TestServerErrorKeepsRawBodyWhenNotJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL)
	_, err := repo.ListPrompts(context.Background())
	require.Error(t, err)

	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, types.ErrKindServer, apiErr.Kind)
	assert.Equal(t, "upstream unavailable", apiErr.Detail)
}

func TestValidationErrorFromAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "Nome da conta já existe"}`))
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL)
	_, err := repo.CreateAccount(context.Background(), entity.NewAccountInput{Name: "Cartório A"})
	require.Error(t, err)

	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, types.ErrKindValidation, apiErr.Kind)
	assert.Equal(t, "Nome da conta já existe", apiErr.Detail)
	assert.False(t, types.IsUnauthorized(err))
}

func TestCreateAccountEmptyNameNeverHitsAPI(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL)
	_, err := repo.CreateAccount(context.Background(), entity.NewAccountInput{Name: "   "})
	assert.ErrorIs(t, err, types.ErrEmptyField)
	assert.Zero(t, requests)
}

func TestCreateUserEmptyFieldsNeverHitAPI(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL)
	for _, input := range []entity.NewUserInput{
		{FullName: "", Email: "a@b.com", Password: "x", AccountID: 1},
		{FullName: "Maria", Email: "", Password: "x", AccountID: 1},
		{FullName: "Maria", Email: "a@b.com", Password: "", AccountID: 1},
	} {
		_, err := repo.CreateUser(context.Background(), input)
		assert.ErrorIs(t, err, types.ErrEmptyField)
	}
	assert.Zero(t, requests)
}

func TestSetAccountStatusRequestShape(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("active_status")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL)
	require.NoError(t, repo.SetAccountStatus(context.Background(), 7, false))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/admin/accounts/7/status", gotPath)
	assert.Equal(t, "false", gotQuery)
}

func TestRegenerateAPIKeyReturnsSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/users/12/regenerate-api-key", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"api_key": "sk-fresh-secret"}`))
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL)
	key, err := repo.RegenerateAPIKey(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "sk-fresh-secret", key)
}

func TestPermissionsFullReplaceRoundTrip(t *testing.T) {
	// Servidor em memória que substitui o conjunto inteiro a cada PUT.
	stored := entity.PermissionSet{PromptIDs: []int{1, 2, 3}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/accounts/5/permissions", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(stored)
		case http.MethodPut:
			var incoming entity.PermissionSet
			require.NoError(t, json.NewDecoder(r.Body).Decode(&incoming))
			require.NotNil(t, incoming.PromptIDs)
			stored = incoming
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL)

	perms, err := repo.GetPermissions(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, perms.PromptIDs)

	// Sincronizar com um subconjunto remove o que ficou de fora.
	require.NoError(t, repo.SyncPermissions(context.Background(), 5, entity.PermissionSet{PromptIDs: []int{2}}))
	perms, err = repo.GetPermissions(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, perms.PromptIDs)

	// Sincronizar vazio zera o conjunto; nil é normalizado para lista vazia.
	require.NoError(t, repo.SyncPermissions(context.Background(), 5, entity.PermissionSet{}))
	perms, err = repo.GetPermissions(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, perms.PromptIDs)
}

func TestGetBillingReportQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/billing/report/", r.URL.Path)
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("end_date"))
		assert.Equal(t, "9", r.URL.Query().Get("account_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary": {"total_cost": 12.5, "total_jobs": 4}, "by_model": []}`))
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL)
	report, err := repo.GetBillingReport(context.Background(), "2026-08-01", "2026-08-31", 9)
	require.NoError(t, err)
	assert.Equal(t, 12.5, report.Summary.TotalCost)
	assert.Equal(t, 4, report.Summary.TotalJobs)
	assert.Equal(t, "2026-08-01", report.StartDate)
	assert.Equal(t, 9, report.AccountID)
}

func TestBaseURLTrailingSlashNormalized(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL + "/")
	_, err := repo.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/admin/accounts/", gotPath)
}

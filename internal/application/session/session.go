package session

import (
	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
)

// Store holds the per-operator-session state for the duration of the
// interactive session. There is exactly one logical actor, so no locking.
type Store struct {
	isAuthenticated bool
	apiKey          string
	pending         *entity.PendingConfirmation
	lastSecret      *entity.IssuedSecret

	// Última conta selecionada na edição de permissões, usada para decidir
	// quando invalidar o cache de permissões.
	selectedAccountID int
}

// NewStore cria um Store com os valores padrão de início de sessão.
func NewStore() *Store {
	return &Store{}
}

// Reset returns every field to its default value. Logout is a full reset,
// never a partial clear.
func (s *Store) Reset() {
	*s = Store{}
}

// Authenticate marca a sessão como autenticada com a chave informada.
func (s *Store) Authenticate(apiKey string) {
	s.isAuthenticated = true
	s.apiKey = apiKey
}

// IsAuthenticated reporta se o probe de login já foi aceito.
func (s *Store) IsAuthenticated() bool {
	return s.isAuthenticated
}

// APIKey retorna a chave de administrador da sessão.
func (s *Store) APIKey() string {
	return s.apiKey
}

// SetPending registra a única confirmação pendente (last-armed-wins).
func (s *Store) SetPending(p entity.PendingConfirmation) {
	s.pending = &p
}

// Pending retorna a confirmação pendente, se houver.
func (s *Store) Pending() *entity.PendingConfirmation {
	return s.pending
}

// ClearPending descarta a confirmação pendente.
func (s *Store) ClearPending() {
	s.pending = nil
}

// SetIssuedSecret stores a freshly issued API key for its one-time display.
// The raw secret is never logged and never survives the display that reads it.
func (s *Store) SetIssuedSecret(label, secret string) {
	s.lastSecret = &entity.IssuedSecret{Label: label, Secret: secret}
}

// TakeIssuedSecret returns the stored secret and clears it, so a second call
// within the same session always reports nothing (at-most-once display).
func (s *Store) TakeIssuedSecret() (entity.IssuedSecret, bool) {
	if s.lastSecret == nil {
		return entity.IssuedSecret{}, false
	}
	secret := *s.lastSecret
	s.lastSecret = nil
	return secret, true
}

// SelectAccount registra a conta em edição de permissões.
func (s *Store) SelectAccount(accountID int) {
	s.selectedAccountID = accountID
}

// SelectedAccount retorna a conta em edição de permissões (0 quando nenhuma).
func (s *Store) SelectedAccount() int {
	return s.selectedAccountID
}

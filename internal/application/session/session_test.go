package session

import (
	"testing"

	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	s := NewStore()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.APIKey())

	s.Authenticate("sk-admin-123")
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "sk-admin-123", s.APIKey())
}

func TestTakeIssuedSecretAtMostOnce(t *testing.T) {
	s := NewStore()

	_, ok := s.TakeIssuedSecret()
	assert.False(t, ok)

	s.SetIssuedSecret("Nova chave do usuário 'Maria'", "sk-user-xyz")

	secret, ok := s.TakeIssuedSecret()
	require.True(t, ok)
	assert.Equal(t, "Nova chave do usuário 'Maria'", secret.Label)
	assert.Equal(t, "sk-user-xyz", secret.Secret)

	// A segunda leitura na mesma sessão nunca devolve o segredo de novo.
	_, ok = s.TakeIssuedSecret()
	assert.False(t, ok)
}

func TestIssuedSecretLastWins(t *testing.T) {
	s := NewStore()
	s.SetIssuedSecret("first", "sk-1")
	s.SetIssuedSecret("second", "sk-2")

	secret, ok := s.TakeIssuedSecret()
	require.True(t, ok)
	assert.Equal(t, "sk-2", secret.Secret)
}

func TestResetClearsEverything(t *testing.T) {
	s := NewStore()
	s.Authenticate("sk-admin-123")
	s.SetPending(entity.PendingConfirmation{Kind: entity.ActionDeletePrompt, TargetID: 4})
	s.SetIssuedSecret("chave", "sk-user-xyz")
	s.SelectAccount(42)

	s.Reset()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.APIKey())
	assert.Nil(t, s.Pending())
	_, ok := s.TakeIssuedSecret()
	assert.False(t, ok)
	assert.Zero(t, s.SelectedAccount())
}

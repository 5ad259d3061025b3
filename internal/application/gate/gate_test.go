package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/setdocai/setdoc-admin-go/internal/application/session"
	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestArmDoesNotRunEffect(t *testing.T) {
	store := session.NewStore()
	g := New(store)

	g.Arm(entity.PendingConfirmation{
		Kind:     entity.ActionSetAccountStatus,
		TargetID: 7,
		NewValue: boolPtr(false),
		Label:    "Desativar a conta 'Cartório A'?",
	})

	require.NotNil(t, g.Armed())
	assert.Equal(t, 7, g.Armed().TargetID)
	// Arming alone must leave the remote system untouched; the effect only
	// exists at Confirm time, so there is nothing to have been called yet.
}

func TestCancelClearsWithoutEffect(t *testing.T) {
	store := session.NewStore()
	g := New(store)

	g.Arm(entity.PendingConfirmation{Kind: entity.ActionDeletePrompt, TargetID: 3})
	require.NoError(t, g.Cancel())
	assert.Nil(t, g.Armed())
}

func TestConfirmRunsExactlyOneEffect(t *testing.T) {
	store := session.NewStore()
	g := New(store)

	g.Arm(entity.PendingConfirmation{
		Kind:     entity.ActionSetUserStatus,
		TargetID: 12,
		NewValue: boolPtr(false),
	})

	calls := 0
	err := g.Confirm(context.Background(), func(ctx context.Context, p entity.PendingConfirmation) error {
		calls++
		assert.Equal(t, entity.ActionSetUserStatus, p.Kind)
		assert.Equal(t, 12, p.TargetID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Nil(t, g.Armed(), "gate must return to Idle after confirm")
}

func TestConfirmOnFailureStillReturnsToIdle(t *testing.T) {
	store := session.NewStore()
	g := New(store)

	g.Arm(entity.PendingConfirmation{Kind: entity.ActionRegenerateKey, TargetID: 5})

	wantErr := errors.New("boom")
	err := g.Confirm(context.Background(), func(ctx context.Context, p entity.PendingConfirmation) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Nil(t, g.Armed(), "no automatic retry: failed confirm also clears")
}

func TestLastArmedWins(t *testing.T) {
	store := session.NewStore()
	g := New(store)

	g.Arm(entity.PendingConfirmation{Kind: entity.ActionSetAccountStatus, TargetID: 1, NewValue: boolPtr(false)})
	g.Arm(entity.PendingConfirmation{Kind: entity.ActionDeletePrompt, TargetID: 9})

	var executed []entity.PendingConfirmation
	err := g.Confirm(context.Background(), func(ctx context.Context, p entity.PendingConfirmation) error {
		executed = append(executed, p)
		return nil
	})
	require.NoError(t, err)

	// A single confirm never performs both effects; only the second survives.
	require.Len(t, executed, 1)
	assert.Equal(t, entity.ActionDeletePrompt, executed[0].Kind)
	assert.Equal(t, 9, executed[0].TargetID)
}

func TestConfirmAndCancelWithNothingArmed(t *testing.T) {
	store := session.NewStore()
	g := New(store)

	err := g.Confirm(context.Background(), func(ctx context.Context, p entity.PendingConfirmation) error {
		t.Fatal("effect must not run when nothing is armed")
		return nil
	})
	assert.ErrorIs(t, err, ErrNothingArmed)
	assert.ErrorIs(t, g.Cancel(), ErrNothingArmed)
}

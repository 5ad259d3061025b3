package gate

import (
	"context"
	"errors"

	"github.com/setdocai/setdoc-admin-go/internal/application/session"
	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
)

// ErrNothingArmed is returned by Confirm and Cancel when no action is pending.
var ErrNothingArmed = errors.New("no destructive action is armed")

// Effect performs the single mutating API call for a confirmed action.
type Effect func(ctx context.Context, pending entity.PendingConfirmation) error

// Gate é a guarda de duas etapas na frente das ações destrutivas: armar
// registra a intenção sem efeito algum; confirmar executa exatamente uma
// chamada mutante; cancelar descarta. Dois estados, três transições.
type Gate struct {
	store *session.Store
}

// New cria um Gate sobre o estado de sessão informado.
func New(store *session.Store) *Gate {
	return &Gate{store: store}
}

// Arm records the intent to perform a destructive action. Arming while a
// different action is pending replaces it: only one destructive control is
// reachable at a time, so last-armed-wins.
func (g *Gate) Arm(pending entity.PendingConfirmation) {
	g.store.SetPending(pending)
}

// Armed reporta a ação pendente, se houver.
func (g *Gate) Armed() *entity.PendingConfirmation {
	return g.store.Pending()
}

// Confirm runs the effect for the pending action and returns to Idle whether
// it succeeds or fails; there is no automatic retry.
func (g *Gate) Confirm(ctx context.Context, effect Effect) error {
	pending := g.store.Pending()
	if pending == nil {
		return ErrNothingArmed
	}
	g.store.ClearPending()
	return effect(ctx, *pending)
}

// Cancel descarta a ação pendente sem efeito algum.
func (g *Gate) Cancel() error {
	if g.store.Pending() == nil {
		return ErrNothingArmed
	}
	g.store.ClearPending()
	return nil
}

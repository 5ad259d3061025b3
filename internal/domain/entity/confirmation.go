package entity

// ActionKind identifies a destructive or sensitive action guarded by the
// confirmation gate.
type ActionKind string

const (
	ActionSetAccountStatus ActionKind = "set_account_status"
	ActionSetUserStatus    ActionKind = "set_user_status"
	ActionRegenerateKey    ActionKind = "regenerate_api_key"
	ActionDeletePrompt     ActionKind = "delete_prompt"
)

// PendingConfirmation records the single armed action awaiting a second
// acknowledgement. At most one exists per session; arming a different target
// replaces it (last-armed-wins).
type PendingConfirmation struct {
	Kind     ActionKind
	TargetID int
	// NewValue only applies to status toggles; nil for regenerate/delete.
	NewValue *bool
	Label    string
}

// IssuedSecret é um segredo recém-emitido (API key) exibido uma única vez.
type IssuedSecret struct {
	Label  string
	Secret string
}

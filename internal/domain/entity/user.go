package entity

// User represents an operator belonging to exactly one Account.
// APIKey is only populated by the API at creation/regeneration time and is
// never persisted client-side beyond its one-time display.
type User struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	AccountID int    `json:"account_id"`
	APIKey    string `json:"api_key,omitempty"`
}

// NewUserInput carrega os campos aceitos pela API na criação de um usuário.
type NewUserInput struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AccountID int    `json:"account_id"`
}

package entity

import "time"

// Account represents a tenant organization (cartório) as returned by the admin API.
type Account struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	CodTRI7   string    `json:"cod_tri7,omitempty"`
	Cidade    string    `json:"cidade,omitempty"`
	UF        string    `json:"uf,omitempty"`
}

// NewAccountInput carrega os campos aceitos pela API na criação de uma conta.
type NewAccountInput struct {
	Name    string `json:"name"`
	CodTRI7 string `json:"cod_tri7,omitempty"`
	Cidade  string `json:"cidade,omitempty"`
	UF      string `json:"uf,omitempty"`
}

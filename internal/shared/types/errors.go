package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifica as falhas da API em categorias que os chamadores podem
// tratar de forma diferente (apenas Unauthorized força logout, por exemplo).
type ErrorKind string

const (
	ErrKindTransport    ErrorKind = "transport"
	ErrKindUnauthorized ErrorKind = "unauthorized"
	ErrKindValidation   ErrorKind = "validation"
	ErrKindServer       ErrorKind = "server"
)

// APIError is the single error type returned by the API repository. Detail
// carries the server-provided message when one could be extracted.
type APIError struct {
	Kind   ErrorKind
	Status int
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	switch {
	case e.Kind == ErrKindTransport:
		return fmt.Sprintf("could not reach the API: %v", e.Err)
	case e.Detail != "":
		return fmt.Sprintf("API returned HTTP %d: %s", e.Status, e.Detail)
	default:
		return fmt.Sprintf("API returned HTTP %d", e.Status)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reporta se err é uma falha de autorização (HTTP 401/403).
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == ErrKindUnauthorized
}

// IsTransport reporta se err é uma falha de transporte (nenhuma resposta chegou).
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == ErrKindTransport
}

var (
	ErrNoAPIKey      = errors.New("no administrator API key provided. Use --api-key, the SETDOC_API_KEY environment variable, or a config file")
	ErrEmptyField    = errors.New("required field cannot be empty")
	ErrNotAuthorized = errors.New("the supplied key is not a valid administrator key")
)

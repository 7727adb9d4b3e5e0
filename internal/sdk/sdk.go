// Package sdk defines the document-store collaborator the API delegates to.
//
// A Client performs authenticated CRUD against named collections. The token
// argument is whatever the caller received in its Authorization header; an
// empty token tells the client to act with its default credentials.
package sdk

import (
	"context"
	"errors"
)

// Record is an opaque JSON-compatible document body.
type Record = map[string]any

// Document is a record together with its id, as returned by Search.
type Document struct {
	ID   string `json:"id"`
	Data Record `json:"data"`
}

// Constraint is one filter clause of a Search.
type Constraint struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value any    `json:"value"`
}

// Operation names, one per Client method. Faults and injected errors are keyed by them.
const (
	OpGet         = "get"
	OpCreate      = "create"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpSearch      = "search"
	OpCustomToken = "custom_token"
)

const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 500
)

// ClampLimit maps a requested search limit onto the range the clients accept.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}

type Client interface {
	Get(ctx context.Context, collection, id, token string) (Record, error)
	Create(ctx context.Context, collection, id string, data Record, token string) (Record, error)
	Update(ctx context.Context, collection, id string, data Record, token string) (Record, error)
	Delete(ctx context.Context, collection, id, token string) error
	Search(ctx context.Context, collection string, constraints []Constraint, limit int, token string) ([]Document, error)
	CustomToken(ctx context.Context, token string) (string, error)
}

var ErrNotInitialized = errors.New("SDK not initialized")

// Handle is the process-wide SDK handle built once at startup. It is either
// ready with a Client or carries the error its construction failed with.
type Handle struct {
	client  Client
	initErr error
}

func Ready(c Client) Handle {
	return Handle{client: c}
}

func Failed(err error) Handle {
	if err == nil {
		err = ErrNotInitialized
	}
	return Handle{initErr: err}
}

func (h Handle) Initialized() bool { return h.client != nil }

// InitErr is the construction error, nil when the handle is ready.
func (h Handle) InitErr() error { return h.initErr }

// Client returns ErrNotInitialized, wrapping the construction error, when the handle failed.
func (h Handle) Client() (Client, error) {
	if h.client == nil {
		if h.initErr != nil && !errors.Is(h.initErr, ErrNotInitialized) {
			return nil, &initError{cause: h.initErr}
		}
		return nil, ErrNotInitialized
	}
	return h.client, nil
}

type initError struct {
	cause error
}

// Error keeps the fixed message; the cause is only reachable through errors.Is/As.
func (e *initError) Error() string   { return ErrNotInitialized.Error() }
func (e *initError) Unwrap() []error { return []error{ErrNotInitialized, e.cause} }

// Package remote declares the narrow interfaces of the external
// collaborators the storefront core consumes: the auth provider, the
// document store, object storage and the payment-intent endpoint.
// HTTP implementations live under infra/; tests and the demo binary use
// the memory fakes.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
)

// ErrNotFound is returned by Documents.Get when no document matches.
var ErrNotFound = errors.New("document not found")

// Document is one record in a collection. Data holds the document fields
// as JSON; ID is assigned by the store.
type Document struct {
	ID   string
	Data json.RawMessage
}

// Filter is an equality filter on a single document field.
type Filter struct {
	Field string
	Value string
}

// Auth is the authentication provider boundary. CurrentUserID returns the
// empty string when no user is signed in.
type Auth interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	CurrentUserID() string
	SignOut()
}

// Documents is the document store boundary. A limit of zero means no limit.
type Documents interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, collection string, filter *Filter, limit int) ([]Document, error)
	Set(ctx context.Context, collection, id string, fields any) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Add(ctx context.Context, collection string, fields any) (string, error)
	Delete(ctx context.Context, collection, id string) error
}

// ObjectStorage uploads a file and returns its public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, path string, contents io.Reader) (string, error)
}

// PaymentIntents creates a payment intent for an amount in currency
// subunits and returns the client secret.
type PaymentIntents interface {
	Create(ctx context.Context, amount int) (string, error)
}

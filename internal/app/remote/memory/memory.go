// Package memory provides in-memory fakes of the remote collaborators for
// tests and the demo binary.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/lumenshop/storefront/internal/app/remote"
)

type account struct {
	id       string
	password string
}

// Store is an in-memory implementation of remote.Auth, remote.Documents,
// remote.ObjectStorage and remote.PaymentIntents.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
	order       map[string][]string
	accounts    map[string]account
	currentUser string
	objects     map[string][]byte
	fail        map[string]error
	calls       map[string]int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]json.RawMessage),
		order:       make(map[string][]string),
		accounts:    make(map[string]account),
		objects:     make(map[string][]byte),
		fail:        make(map[string]error),
		calls:       make(map[string]int),
	}
}

// FailWith forces the named operation (e.g. "documents.get") to return err.
// A nil err clears the injection.
func (s *Store) FailWith(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

// Calls reports how many times the named operation ran.
func (s *Store) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

func (s *Store) begin(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	return s.fail[op]
}

// =============================================================================
// remote.Auth
// =============================================================================

func (s *Store) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if err := s.begin("auth.create"); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		return "", fmt.Errorf("account already exists for %s", email)
	}
	acct := account{id: uuid.NewString(), password: password}
	s.accounts[email] = acct
	s.currentUser = acct.id
	return acct.id, nil
}

func (s *Store) SignIn(ctx context.Context, email, password string) (string, error) {
	if err := s.begin("auth.signin"); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, exists := s.accounts[email]
	if !exists || acct.password != password {
		return "", fmt.Errorf("invalid email or password")
	}
	s.currentUser = acct.id
	return acct.id, nil
}

func (s *Store) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser
}

func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = ""
}

// =============================================================================
// remote.Documents
// =============================================================================

func (s *Store) Get(ctx context.Context, collection, id string) (remote.Document, error) {
	if err := s.begin("documents.get"); err != nil {
		return remote.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[collection][id]
	if !ok {
		return remote.Document{}, remote.ErrNotFound
	}
	return remote.Document{ID: id, Data: data}, nil
}

func (s *Store) Query(ctx context.Context, collection string, filter *remote.Filter, limit int) ([]remote.Document, error) {
	if err := s.begin("documents.query"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []remote.Document
	for _, id := range s.order[collection] {
		data, ok := s.collections[collection][id]
		if !ok {
			continue
		}
		if filter != nil && !matches(data, filter) {
			continue
		}
		docs = append(docs, remote.Document{ID: id, Data: data})
		if limit > 0 && len(docs) == limit {
			break
		}
	}
	return docs, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields any) error {
	if err := s.begin("documents.set"); err != nil {
		return err
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, id, data)
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := s.begin("documents.update"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.collections[collection][id]
	if !ok {
		return remote.ErrNotFound
	}
	var merged map[string]any
	if err := json.Unmarshal(existing, &merged); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	for k, v := range fields {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	s.collections[collection][id] = data
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, fields any) (string, error) {
	if err := s.begin("documents.add"); err != nil {
		return "", err
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.put(collection, id, data)
	return id, nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.begin("documents.delete"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][id]; !ok {
		return remote.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

// put stores data under collection/id, tracking insertion order for stable
// query results. Caller holds the write lock.
func (s *Store) put(collection, id string, data json.RawMessage) {
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]json.RawMessage)
	}
	if _, exists := s.collections[collection][id]; !exists {
		s.order[collection] = append(s.order[collection], id)
	}
	s.collections[collection][id] = data
}

func matches(data json.RawMessage, filter *remote.Filter) bool {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	v, ok := fields[filter.Field]
	if !ok {
		return false
	}
	return fmt.Sprintf("%v", v) == filter.Value
}

// =============================================================================
// remote.ObjectStorage
// =============================================================================

func (s *Store) Upload(ctx context.Context, path string, contents io.Reader) (string, error) {
	if err := s.begin("storage.upload"); err != nil {
		return "", err
	}
	data, err := io.ReadAll(contents)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return "memory://" + path, nil
}

// =============================================================================
// remote.PaymentIntents
// =============================================================================

func (s *Store) Create(ctx context.Context, amount int) (string, error) {
	if err := s.begin("payments.create"); err != nil {
		return "", err
	}
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	return fmt.Sprintf("cs_test_%s", uuid.NewString()), nil
}

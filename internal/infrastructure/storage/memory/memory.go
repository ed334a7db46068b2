// Package memory holds mutex-guarded repositories used by tests and by
// the server when STORAGE=memory. Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"primer/internal/domain/errs"
	"primer/internal/domain/revocation"
	"primer/internal/domain/user"
	"primer/internal/domain/vault"
	"primer/internal/infrastructure/storage"
)

type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	byName map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byName: make(map[string]user.User)}
}

func (r *UserRepository) Create(_ context.Context, username, email, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[username]; ok {
		return 0, errs.ErrConflict
	}
	for _, u := range r.byName {
		if strings.EqualFold(u.Email, email) {
			return 0, errs.ErrConflict
		}
	}

	r.nextID++
	r.byName[username] = user.User{
		ID:           r.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	return r.nextID, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byName[username]
	if !ok {
		return user.User{}, errs.ErrNotFound
	}
	return u, nil
}

type RevocationRepository struct {
	mu      sync.RWMutex
	records map[string]revocation.Record
}

func NewRevocationRepository() *RevocationRepository {
	return &RevocationRepository{records: make(map[string]revocation.Record)}
}

// Insert keeps the first record for an id; later inserts are no-ops.
func (r *RevocationRepository) Insert(_ context.Context, rec revocation.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.TokenID]; !ok {
		r.records[rec.TokenID] = rec
	}
	return nil
}

func (r *RevocationRepository) Exists(_ context.Context, tokenID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[tokenID]
	return ok, nil
}

func (r *RevocationRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, rec := range r.records {
		if rec.ExpiresAt.Before(before) {
			delete(r.records, id)
			n++
		}
	}
	return n, nil
}

type VaultRepository struct {
	mu          sync.RWMutex
	nextID      int64
	credentials map[int64]vault.Credential
	entries     map[int64]vault.Entry
}

func NewVaultRepository() *VaultRepository {
	return &VaultRepository{
		credentials: make(map[int64]vault.Credential),
		entries:     make(map[int64]vault.Entry),
	}
}

func (r *VaultRepository) UpsertCredential(_ context.Context, userID int64, passwordHash string, setAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.credentials[userID] = vault.Credential{UserID: userID, PasswordHash: passwordHash, SetAt: setAt}
	return nil
}

func (r *VaultRepository) GetCredential(_ context.Context, userID int64) (vault.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.credentials[userID]
	if !ok {
		return vault.Credential{}, errs.ErrNotFound
	}
	return c, nil
}

func (r *VaultRepository) UpsertEntry(_ context.Context, e vault.Entry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.findByDomain(e.UserID, e.Domain); ok {
		existing.AccountName = e.AccountName
		existing.Secret = e.Secret
		existing.URL = e.URL
		existing.Notes = e.Notes
		r.entries[existing.ID] = existing
		return existing.ID, nil
	}

	r.nextID++
	e.ID = r.nextID
	r.entries[e.ID] = e
	return e.ID, nil
}

func (r *VaultRepository) GetEntry(_ context.Context, id int64) (vault.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return vault.Entry{}, errs.ErrNotFound
	}
	return e, nil
}

func (r *VaultRepository) ListEntries(_ context.Context, userID int64) ([]vault.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vault.Summary, 0)
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *VaultRepository) UpdateEntry(_ context.Context, id, userID int64, p vault.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return errs.ErrNotFound
	}
	if p.Domain != nil && *p.Domain != e.Domain {
		if _, taken := r.findByDomain(userID, *p.Domain); taken {
			return errs.ErrConflict
		}
		e.Domain = *p.Domain
	}
	if p.AccountName != nil {
		e.AccountName = *p.AccountName
	}
	if p.Secret != nil {
		e.Secret = *p.Secret
	}
	if p.URL != nil {
		e.URL = *p.URL
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	r.entries[id] = e
	return nil
}

func (r *VaultRepository) DeleteEntry(_ context.Context, id, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return errs.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// SetSecret overwrites the stored envelope as is. Tests use it to corrupt rows.
func (r *VaultRepository) SetSecret(id int64, sealed string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		e.Secret = sealed
		r.entries[id] = e
	}
}

// Entry returns the stored row for inspection.
func (r *VaultRepository) Entry(id int64) (vault.Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return e, ok
}

func (r *VaultRepository) findByDomain(userID int64, domain string) (vault.Entry, bool) {
	for _, e := range r.entries {
		if e.UserID == userID && e.Domain == domain {
			return e, true
		}
	}
	return vault.Entry{}, false
}

// Store bundles the repositories for wiring.
type Store struct {
	Users       *UserRepository
	Revocations *RevocationRepository
	Vault       *VaultRepository
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		Users:       NewUserRepository(),
		Revocations: NewRevocationRepository(),
		Vault:       NewVaultRepository(),
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"primer/internal/domain/errs"
)

type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// Cipher seals entry secrets. Decrypt must fail with errs.ErrIntegrity on
// any tampered or foreign envelope.
type Cipher interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(envelope string) ([]byte, error)
}

type Servicer interface {
	SetPassword(ctx context.Context, userID int64, password string) error
	Unlock(ctx context.Context, userID int64, password string) error
	AddEntry(ctx context.Context, userID int64, in NewEntry) (int64, error)
	UpdateEntry(ctx context.Context, userID, entryID int64, p Patch) error
	ViewEntry(ctx context.Context, userID, entryID int64, vaultPassword string) (Revealed, error)
	ListEntries(ctx context.Context, userID int64) ([]Summary, error)
	DeleteEntry(ctx context.Context, userID, entryID int64) error
}

type Service struct {
	repo   Repository
	hasher Hasher
	cipher Cipher
	now    func() time.Time
	log    *slog.Logger
}

func NewService(repo Repository, hasher Hasher, cipher Cipher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		cipher: cipher,
		now:    time.Now,
		log:    log.With("component", "vault_service"),
	}
}

// SetPassword creates or overwrites the caller's vault password.
func (s *Service) SetPassword(ctx context.Context, userID int64, password string) error {
	if password == "" {
		return errs.Invalid("vault password is required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash vault password: %w", err)
	}

	if err := s.repo.UpsertCredential(ctx, userID, hash, s.now().UTC()); err != nil {
		s.log.Error("failed to store vault password", "user_id", userID, "error", err)
		return fmt.Errorf("set vault password: %w", err)
	}

	s.log.Info("vault password set", "user_id", userID)
	return nil
}

// Unlock verifies the vault password. Nothing is remembered on success; every
// secret-revealing call checks the password again.
func (s *Service) Unlock(ctx context.Context, userID int64, password string) error {
	if password == "" {
		return errs.Invalid("vault password is required")
	}

	cred, err := s.repo.GetCredential(ctx, userID)
	if errors.Is(err, errs.ErrNotFound) {
		s.log.Info("vault unlock rejected", "reason", "vault_not_set", "user_id", userID)
		return errs.ErrVaultLocked
	}
	if err != nil {
		return fmt.Errorf("get vault password: %w", err)
	}

	if !s.hasher.Verify(password, cred.PasswordHash) {
		s.log.Info("vault unlock rejected", "reason", "vault_password_mismatch", "user_id", userID)
		return errs.ErrInvalidVaultPassword
	}
	return nil
}

// AddEntry stores a new entry or replaces the caller's entry for the same domain.
func (s *Service) AddEntry(ctx context.Context, userID int64, in NewEntry) (int64, error) {
	in.Domain = strings.TrimSpace(in.Domain)
	in.AccountName = strings.TrimSpace(in.AccountName)
	if in.Domain == "" || in.AccountName == "" || in.Secret == "" {
		return 0, errs.Invalid("domain, account_name and secret are required")
	}

	sealed, err := s.cipher.Encrypt([]byte(in.Secret))
	if err != nil {
		return 0, fmt.Errorf("encrypt secret: %w", err)
	}

	id, err := s.repo.UpsertEntry(ctx, Entry{
		UserID:      userID,
		Domain:      in.Domain,
		AccountName: in.AccountName,
		Secret:      sealed,
		URL:         in.URL,
		Notes:       in.Notes,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		s.log.Error("failed to store vault entry", "user_id", userID, "error", err)
		return 0, fmt.Errorf("add entry: %w", err)
	}

	s.log.Debug("vault entry stored", "user_id", userID, "entry_id", id)
	return id, nil
}

// UpdateEntry partially updates an entry. The secret must always be supplied.
func (s *Service) UpdateEntry(ctx context.Context, userID, entryID int64, p Patch) error {
	if p.Secret == nil || *p.Secret == "" {
		return errs.Invalid("secret is required")
	}
	if p.Domain != nil {
		d := strings.TrimSpace(*p.Domain)
		if d == "" {
			return errs.Invalid("domain must not be empty")
		}
		p.Domain = &d
	}
	if p.AccountName != nil && strings.TrimSpace(*p.AccountName) == "" {
		return errs.Invalid("account_name must not be empty")
	}

	if _, err := s.owned(ctx, userID, entryID); err != nil {
		return err
	}

	sealed, err := s.cipher.Encrypt([]byte(*p.Secret))
	if err != nil {
		return fmt.Errorf("encrypt secret: %w", err)
	}
	p.Secret = &sealed

	if err := s.repo.UpdateEntry(ctx, entryID, userID, p); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	s.log.Debug("vault entry updated", "user_id", userID, "entry_id", entryID)
	return nil
}

// ViewEntry returns the decrypted secret after ownership and vault password checks.
func (s *Service) ViewEntry(ctx context.Context, userID, entryID int64, vaultPassword string) (Revealed, error) {
	e, err := s.owned(ctx, userID, entryID)
	if err != nil {
		// A missing id reads the same as a foreign one so that revealing
		// never confirms which ids exist.
		if errors.Is(err, errs.ErrNotFound) {
			return Revealed{}, errs.ErrUnauthorized
		}
		return Revealed{}, err
	}

	if err := s.Unlock(ctx, userID, vaultPassword); err != nil {
		return Revealed{}, err
	}

	plain, err := s.cipher.Decrypt(e.Secret)
	if err != nil {
		s.log.Error("vault entry failed integrity check", "user_id", userID, "entry_id", entryID, "error", err)
		if !errors.Is(err, errs.ErrIntegrity) {
			err = fmt.Errorf("%w: %v", errs.ErrIntegrity, err)
		}
		return Revealed{}, err
	}

	return Revealed{Summary: e.Summary(), Secret: string(plain)}, nil
}

func (s *Service) ListEntries(ctx context.Context, userID int64) ([]Summary, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (s *Service) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	if _, err := s.owned(ctx, userID, entryID); err != nil {
		return err
	}

	if err := s.repo.DeleteEntry(ctx, entryID, userID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	s.log.Info("vault entry deleted", "user_id", userID, "entry_id", entryID)
	return nil
}

// owned loads an entry and runs authorize on it.
func (s *Service) owned(ctx context.Context, userID, entryID int64) (Entry, error) {
	e, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("get entry: %w", err)
	}

	if !authorize(userID, e) {
		s.log.Warn("vault entry access denied", "user_id", userID, "entry_id", entryID)
		return Entry{}, errs.ErrUnauthorized
	}
	return e, nil
}

// authorize is the single ownership check for every entry operation.
func authorize(userID int64, e Entry) bool {
	return e.UserID == userID
}

package vault_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"primer/internal/app/server/crypto"
	"primer/internal/domain/errs"
	"primer/internal/domain/vault"
	"primer/internal/infrastructure/storage/memory"
	"primer/internal/security/password"
)

const (
	aliceID int64 = 1
	otherID int64 = 2
)

func newService(t *testing.T) (*vault.Service, *memory.VaultRepository) {
	t.Helper()

	hasher, err := password.New(bcrypt.MinCost)
	require.NoError(t, err)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	cipher, err := crypto.NewServerEncryptor(key)
	require.NoError(t, err)

	repo := memory.NewVaultRepository()
	return vault.NewService(repo, hasher, cipher, slog.Default()), repo
}

func ptr(s string) *string { return &s }

func TestService_SetPasswordAndUnlock(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPassword(ctx, aliceID, "1234"))
	require.NoError(t, svc.Unlock(ctx, aliceID, "1234"))

	assert.ErrorIs(t, svc.Unlock(ctx, aliceID, "0000"), errs.ErrInvalidVaultPassword)
	assert.ErrorIs(t, svc.Unlock(ctx, otherID, "1234"), errs.ErrVaultLocked)
}

func TestService_SetPassword_Overwrites(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPassword(ctx, aliceID, "1234"))
	require.NoError(t, svc.SetPassword(ctx, aliceID, "5678"))

	assert.ErrorIs(t, svc.Unlock(ctx, aliceID, "1234"), errs.ErrInvalidVaultPassword)
	assert.NoError(t, svc.Unlock(ctx, aliceID, "5678"))
}

func TestService_EmptyPasswords(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetPassword(ctx, aliceID, ""), errs.ErrInvalidArgument)
	assert.ErrorIs(t, svc.Unlock(ctx, aliceID, ""), errs.ErrInvalidArgument)
}

func TestService_AddAndView(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPassword(ctx, aliceID, "1234"))
	id, err := svc.AddEntry(ctx, aliceID, vault.NewEntry{Domain: "x.com", AccountName: "alice", Secret: "p@ss"})
	require.NoError(t, err)

	stored, ok := repo.Entry(id)
	require.True(t, ok)
	assert.NotContains(t, stored.Secret, "p@ss")

	got, err := svc.ViewEntry(ctx, aliceID, id, "1234")
	require.NoError(t, err)
	assert.Equal(t, "p@ss", got.Secret)
	assert.Equal(t, "x.com", got.Domain)

	_, err = svc.ViewEntry(ctx, aliceID, id, "0000")
	assert.ErrorIs(t, err, errs.ErrInvalidVaultPassword)
}

func TestService_ViewEntry_Ownership(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPassword(ctx, aliceID, "1234"))
	id, err := svc.AddEntry(ctx, aliceID, vault.NewEntry{Domain: "x.com", AccountName: "alice", Secret: "p@ss"})
	require.NoError(t, err)

	_, err = svc.ViewEntry(ctx, otherID, id, "1234")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	require.NoError(t, svc.SetPassword(ctx, otherID, "1234"))
	_, err = svc.ViewEntry(ctx, otherID, id, "1234")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = svc.ViewEntry(ctx, aliceID, id+100, "1234")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.NotErrorIs(t, err, errs.ErrNotFound)
}

func TestService_ViewEntry_Integrity(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPassword(ctx, aliceID, "1234"))
	id, err := svc.AddEntry(ctx, aliceID, vault.NewEntry{Domain: "x.com", AccountName: "alice", Secret: "p@ss"})
	require.NoError(t, err)

	stored, _ := repo.Entry(id)
	b := []byte(stored.Secret)
	if b[len(b)-5] == 'A' {
		b[len(b)-5] = 'B'
	} else {
		b[len(b)-5] = 'A'
	}
	repo.SetSecret(id, string(b))

	got, err := svc.ViewEntry(ctx, aliceID, id, "1234")
	assert.ErrorIs(t, err, errs.ErrIntegrity)
	assert.Empty(t, got.Secret)
}

func TestService_ListEntries(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddEntry(ctx, aliceID, vault.NewEntry{Domain: "x.com", AccountName: "alice", Secret: "p@ss", URL: "https://x.com"})
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, aliceID, vault.NewEntry{Domain: "y.com", AccountName: "al", Secret: "hunter2", Notes: "work"})
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, otherID, vault.NewEntry{Domain: "z.com", AccountName: "bob", Secret: "s"})
	require.NoError(t, err)

	list, err := svc.ListEntries(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "x.com", list[0].Domain)
	assert.Equal(t, "https://x.com", list[0].URL)
	assert.Equal(t, "work", list[1].Notes)

	empty, err := svc.ListEntries(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestService_AddEntry_UpsertsByDomain(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	require.NoError(t, svc.SetPassword(ctx, aliceID, "1234"))

	first, err := svc.AddEntry(ctx, aliceID, vault.NewEntry{Domain: "x.com", AccountName: "alice", Secret: "old"})
	require.NoError(t, err)
	second, err := svc.AddEntry(ctx, aliceID, vault.NewEntry{Domain: "x.com", AccountName: "alice2", Secret: "new"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := svc.ViewEntry(ctx, aliceID, first, "1234")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Secret)
	assert.Equal(t, "alice2", got.AccountName)
}

func TestService_AddEntry_Validation(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name string
		in   vault.NewEntry
	}{
		{name: "missing domain", in: vault.NewEntry{AccountName: "a", Secret: "s"}},
		{name: "blank domain", in: vault.NewEntry{Domain: "  ", AccountName: "a", Secret: "s"}},
		{name: "missing account", in: vault.NewEntry{Domain: "x.com", Secret: "s"}},
		{name: "missing secret", in: vault.NewEntry{Domain: "x.com", AccountName: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddEntry(context.Background(), aliceID, tt.in)
			assert.ErrorIs(t, err, errs.ErrInvalidArgument)
		})
	}
}

func TestService_UpdateEntry(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	require.NoError(t, svc.SetPassword(ctx, aliceID, "1234"))

	id, err := svc.AddEntry(ctx, aliceID, vault.NewEntry{Domain: "x.com", AccountName: "alice", Secret: "p@ss", Notes: "n"})
	require.NoError(t, err)
	other, err := svc.AddEntry(ctx, aliceID, vault.NewEntry{Domain: "y.com", AccountName: "alice", Secret: "s"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateEntry(ctx, aliceID, id, vault.Patch{Secret: ptr("n3w"), URL: ptr("https://x.com")}))

	got, err := svc.ViewEntry(ctx, aliceID, id, "1234")
	require.NoError(t, err)
	assert.Equal(t, "n3w", got.Secret)
	assert.Equal(t, "https://x.com", got.URL)
	assert.Equal(t, "alice", got.AccountName)
	assert.Equal(t, "n", got.Notes)

	tests := []struct {
		name    string
		userID  int64
		entryID int64
		patch   vault.Patch
		wantErr error
	}{
		{name: "missing secret", userID: aliceID, entryID: id, patch: vault.Patch{Notes: ptr("x")}, wantErr: errs.ErrInvalidArgument},
		{name: "empty secret", userID: aliceID, entryID: id, patch: vault.Patch{Secret: ptr("")}, wantErr: errs.ErrInvalidArgument},
		{name: "empty domain", userID: aliceID, entryID: id, patch: vault.Patch{Secret: ptr("s"), Domain: ptr(" ")}, wantErr: errs.ErrInvalidArgument},
		{name: "other owner", userID: otherID, entryID: id, patch: vault.Patch{Secret: ptr("s")}, wantErr: errs.ErrUnauthorized},
		{name: "unknown entry", userID: aliceID, entryID: 999, patch: vault.Patch{Secret: ptr("s")}, wantErr: errs.ErrNotFound},
		{name: "domain collision", userID: aliceID, entryID: other, patch: vault.Patch{Secret: ptr("s"), Domain: ptr("x.com")}, wantErr: errs.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateEntry(ctx, tt.userID, tt.entryID, tt.patch)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_DeleteEntry(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	id, err := svc.AddEntry(ctx, aliceID, vault.NewEntry{Domain: "x.com", AccountName: "alice", Secret: "p@ss"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteEntry(ctx, otherID, id), errs.ErrUnauthorized)
	require.NoError(t, svc.DeleteEntry(ctx, aliceID, id))
	assert.ErrorIs(t, svc.DeleteEntry(ctx, aliceID, id), errs.ErrNotFound)
}

// MockRepository is a mock implementation of vault.Repository for failure paths
type MockRepository struct {
	mock.Mock
	vault.Repository
}

func (m *MockRepository) GetEntry(ctx context.Context, id int64) (vault.Entry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(vault.Entry), args.Error(1)
}

func (m *MockRepository) ListEntries(ctx context.Context, userID int64) ([]vault.Summary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]vault.Summary), args.Error(1)
}

func TestService_StorageErrors(t *testing.T) {
	hasher, err := password.New(bcrypt.MinCost)
	require.NoError(t, err)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	cipher, err := crypto.NewServerEncryptor(key)
	require.NoError(t, err)

	repo := new(MockRepository)
	svc := vault.NewService(repo, hasher, cipher, slog.Default())

	repo.On("GetEntry", mock.Anything, int64(1)).Return(vault.Entry{}, errs.ErrStorageUnavailable)
	repo.On("ListEntries", mock.Anything, aliceID).Return([]vault.Summary(nil), errors.New("pool closed"))

	err = svc.DeleteEntry(context.Background(), aliceID, 1)
	assert.ErrorIs(t, err, errs.ErrStorageUnavailable)

	_, err = svc.ListEntries(context.Background(), aliceID)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "pool closed"))
}

package migration

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMigrator — мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Down() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func engineFor(m Migrator) MigrationEngine {
	return func(string) (Migrator, error) {
		return m, nil
	}
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)

	// Настраиваем поведение
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	mg := NewMigration("postgres://test", engineFor(mockM))
	err := mg.Up()

	assert.NoError(t, err)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)

	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	mg := NewMigration("postgres://test", engineFor(mockM))
	err := mg.Up()

	assert.NoError(t, err)
}

func TestMigration_Up_Failure(t *testing.T) {
	mockM := new(MockMigrator)

	mockM.On("Up").Return(errors.New("dirty database version 2"))
	mockM.On("Close").Return(nil, errors.New("conn closed"))

	mg := NewMigration("postgres://test", engineFor(mockM))
	err := mg.Up()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dirty database version 2")
	assert.Contains(t, err.Error(), "conn closed")
}

func TestMigration_Down(t *testing.T) {
	mockM := new(MockMigrator)

	mockM.On("Down").Return(nil)
	mockM.On("Close").Return(nil, nil)

	mg := NewMigration("postgres://test", engineFor(mockM))
	assert.NoError(t, mg.Down())
	mockM.AssertNotCalled(t, "Up")
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	mg := NewMigration("postgres://test", engine)
	err := mg.Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Len(t, files, 6)

	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "token_blocklist")
}

func TestEmbeddedMigrations_EmailUniqueIgnoresCase(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000003_email_ci.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "DROP CONSTRAINT IF EXISTS users_email_key")
	assert.Contains(t, string(up), "UNIQUE INDEX IF NOT EXISTS users_email_lower_key ON users (lower(email))")

	down, err := fs.ReadFile(migrationsFS, "migrations/000003_email_ci.down.sql")
	require.NoError(t, err)
	assert.Contains(t, string(down), "DROP INDEX IF EXISTS users_email_lower_key")
}

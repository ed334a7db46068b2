package client

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoSession is returned when nobody has signed in on this machine.
var ErrNoSession = errors.New("нет активной сессии, выполните auth signin")

// Session - токены, сохраненные после входа
type Session struct {
	Username         string
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// HasAccess reports whether a usable access token is cached at now.
func (s Session) HasAccess(now time.Time) bool {
	return s.AccessToken != "" && now.Before(s.AccessExpiresAt)
}

// SQLiteStorage keeps a single session row in a local sqlite file.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			username TEXT NOT NULL,
			access_token TEXT NOT NULL DEFAULT '',
			refresh_token TEXT NOT NULL,
			access_expires_at DATETIME,
			refresh_expires_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	return err
}

// SaveSession replaces the stored session.
func (s *SQLiteStorage) SaveSession(sess Session) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, username, access_token, refresh_token,
		                     access_expires_at, refresh_expires_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username = excluded.username,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			access_expires_at = excluded.access_expires_at,
			refresh_expires_at = excluded.refresh_expires_at,
			updated_at = excluded.updated_at
	`, sess.Username, sess.AccessToken, sess.RefreshToken,
		sess.AccessExpiresAt.UTC(), sess.RefreshExpiresAt.UTC(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetSession() (Session, error) {
	var (
		sess      Session
		accessExp sql.NullTime
	)

	err := s.db.QueryRow(`
		SELECT username, access_token, refresh_token, access_expires_at, refresh_expires_at
		FROM session
		WHERE id = 1
	`).Scan(&sess.Username, &sess.AccessToken, &sess.RefreshToken, &accessExp, &sess.RefreshExpiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("ошибка чтения сессии: %w", err)
	}

	if accessExp.Valid {
		sess.AccessExpiresAt = accessExp.Time
	}
	return sess, nil
}

// UpdateAccess stores a new access token; the refresh token is untouched.
func (s *SQLiteStorage) UpdateAccess(token string, expiresAt time.Time) error {
	return s.exec(`
		UPDATE session SET access_token = ?, access_expires_at = ?, updated_at = ? WHERE id = 1
	`, token, expiresAt.UTC(), time.Now().UTC())
}

// ClearAccess forgets the access token after logout.
func (s *SQLiteStorage) ClearAccess() error {
	return s.exec(`
		UPDATE session SET access_token = '', access_expires_at = NULL, updated_at = ? WHERE id = 1
	`, time.Now().UTC())
}

func (s *SQLiteStorage) DeleteSession() error {
	return s.exec("DELETE FROM session WHERE id = 1")
}

func (s *SQLiteStorage) exec(query string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления сессии: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoSession
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

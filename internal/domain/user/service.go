package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"primer/internal/domain/errs"
)

// Hasher is the subset of password.Hasher the account service needs.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

type Servicer interface {
	Register(ctx context.Context, username, email, password string) (int64, error)
}

type Service struct {
	repo      Repository
	validator Validator
	hasher    Hasher
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, hasher Hasher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		hasher:    hasher,
		log:       log.With("component", "user_service"),
	}
}

func (s *Service) Register(ctx context.Context, username, email, password string) (int64, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := s.validator.ValidateRegister(username, email, password); err != nil {
		s.log.Debug("validation failed", "login", username, "error", err)
		return 0, errs.Invalid(err.Error())
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return 0, &errs.DomainError{Err: errs.ErrConflict, Message: "username or email already exists"}
		}
		s.log.Error("failed to create user", "login", username, "error", err)
		return 0, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", id)
	return id, nil
}

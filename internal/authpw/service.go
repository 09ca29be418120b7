// Package authpw provides username/password credential checks backed by bcrypt.
package authpw

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"portfolio/api/internal/store"
)

const minPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrPasswordUnchanged  = errors.New("new password must differ from the current one")
)

// UserStore defines the storage interface for credentials.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (store.User, error)
	CountUsers(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, username, passwordHash string) error
	UpdateUserPassword(ctx context.Context, username, passwordHash string) error
}

// Service verifies and updates admin credentials.
type Service struct {
	store      UserStore
	bcryptCost int
}

func NewService(store UserStore, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{store: store, bcryptCost: bcryptCost}
}

// Authenticate checks a username/password pair. It returns the same error
// for unknown usernames and wrong passwords so the login endpoint cannot
// be used to probe for accounts.
func (s *Service) Authenticate(ctx context.Context, username, password string) (store.User, error) {
	if username == "" || password == "" {
		return store.User{}, ErrInvalidCredentials
	}
	user, err := s.store.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return store.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return store.User{}, fmt.Errorf("look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return store.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *Service) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return ErrInvalidCredentials
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword == currentPassword {
		return ErrPasswordUnchanged
	}

	if _, err := s.Authenticate(ctx, username, currentPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, username, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// EnsureDefaultAdmin seeds the initial admin account when the users table
// is empty, so a fresh deployment is immediately usable.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	if err := s.store.CreateUser(ctx, username, string(hash)); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}
	return nil
}

// Package guard owns login admission control: credential verification,
// failed-attempt counting, time-based and attempt-based lockout, forced
// password rotation and administrator unblock.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"innkeeper-backend/internal/model"
	"innkeeper-backend/internal/store"
)

// UserStore is the slice of the data store the guard needs. Lookups report
// a missing row with an error matching store.ErrNotFound.
type UserStore interface {
	GetUserByLogin(ctx context.Context, login string) (model.User, error)
	GetUserByID(ctx context.Context, id int64) (model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUserFields(ctx context.Context, id int64, fields map[string]any) error
}

// Config holds the tunable thresholds of the state machine.
type Config struct {
	MaxFailedAttempts int
	InactivityLockout time.Duration
	MinPasswordLength int
	BcryptCost        int
}

// AuthResult carries what a successful authentication grants the caller.
// When MustChangePassword is set the caller must force a password change
// before granting anything else.
type AuthResult struct {
	UserID             int64
	Login              string
	Role               string
	MustChangePassword bool
}

// Guard is the account security state machine. Safe for use from a single
// request-response caller; every mutation is one row update.
type Guard struct {
	users UserStore
	cfg   Config
	now   func() time.Time
}

// New constructs a Guard. A zero threshold falls back to the historical
// defaults: three attempts, thirty days, four characters.
func New(users UserStore, cfg Config) *Guard {
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = 3
	}
	if cfg.InactivityLockout <= 0 {
		cfg.InactivityLockout = 30 * 24 * time.Hour
	}
	if cfg.MinPasswordLength <= 0 {
		cfg.MinPasswordLength = 4
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Guard{users: users, cfg: cfg, now: time.Now}
}

// WithClock overrides the time source. Used by tests.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Authenticate verifies the credentials for login and mutates the account
// state accordingly: the inactivity check runs before the password is ever
// compared, a blocked account fails regardless of the password, and the
// configured number of consecutive failures locks the account.
func (g *Guard) Authenticate(ctx context.Context, login, password string) (AuthResult, error) {
	user, err := g.users.GetUserByLogin(ctx, login)
	if errors.Is(err, store.ErrNotFound) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	now := g.now()

	if user.LastLoginAt != nil && !user.IsBlocked && now.Sub(*user.LastLoginAt) > g.cfg.InactivityLockout {
		if err := g.users.UpdateUserFields(ctx, user.ID, map[string]any{
			"is_blocked":      true,
			"failed_attempts": 0,
		}); err != nil {
			return AuthResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return AuthResult{}, ErrInactivityLockout
	}

	if user.IsBlocked {
		return AuthResult{}, ErrAccountBlocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		attempts := user.FailedAttempts + 1
		if attempts >= g.cfg.MaxFailedAttempts {
			if err := g.users.UpdateUserFields(ctx, user.ID, map[string]any{
				"is_blocked":      true,
				"failed_attempts": 0,
			}); err != nil {
				return AuthResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
			}
			return AuthResult{}, ErrLockedAfterRetries
		}
		if err := g.users.UpdateUserFields(ctx, user.ID, map[string]any{
			"failed_attempts": attempts,
		}); err != nil {
			return AuthResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return AuthResult{}, ErrInvalidCredentials
	}

	if err := g.users.UpdateUserFields(ctx, user.ID, map[string]any{
		"failed_attempts": 0,
		"last_login":      now,
	}); err != nil {
		return AuthResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return AuthResult{
		UserID:             user.ID,
		Login:              user.Login,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	}, nil
}

// ChangePassword rotates the account secret. It never consults or touches
// the failed-attempt counter or the blocked flag.
func (g *Guard) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmPassword string) error {
	user, err := g.users.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrWrongCurrentPassword
	}
	if newPassword != confirmPassword {
		return ErrConfirmationMismatch
	}
	if len(newPassword) < g.cfg.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), g.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := g.users.UpdateUserFields(ctx, user.ID, map[string]any{
		"password_hash":        string(hash),
		"must_change_password": false,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// AddAccount creates a new account that must rotate its password on first
// login. Login collision is checked with an exact, case-sensitive match.
func (g *Guard) AddAccount(ctx context.Context, login, password, role string) (model.User, error) {
	if role != model.RoleAdministrator && role != model.RoleUser {
		return model.User{}, fmt.Errorf("unknown role %q", role)
	}

	_, err := g.users.GetUserByLogin(ctx, login)
	if err == nil {
		return model.User{}, ErrDuplicateLogin
	}
	if !errors.Is(err, store.ErrNotFound) {
		return model.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.cfg.BcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := g.now()
	user := model.User{
		Login:              login,
		PasswordHash:       string(hash),
		Role:               role,
		MustChangePassword: true,
		LastLoginAt:        &now,
	}
	if err := g.users.CreateUser(ctx, &user); err != nil {
		return model.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return user, nil
}

// Unblock clears the blocked flag and the failure counter. Idempotent: it
// succeeds whether or not the account is currently blocked.
func (g *Guard) Unblock(ctx context.Context, login string) error {
	user, err := g.users.GetUserByLogin(ctx, login)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if err := g.users.UpdateUserFields(ctx, user.ID, map[string]any{
		"is_blocked":      false,
		"failed_attempts": 0,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

package guard

import "errors"

// Failure reasons surfaced to callers. Everything except ErrStoreUnavailable
// is recoverable: the caller shows the message and lets the operator retry.
var (
	// ErrInvalidCredentials covers both an unknown login and a wrong
	// password, so a caller cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrAccountBlocked means the account is locked and stays locked until
	// an administrator unblocks it.
	ErrAccountBlocked = errors.New("account is blocked, contact an administrator")

	// ErrInactivityLockout means the account was just locked because its
	// last login is too far in the past.
	ErrInactivityLockout = errors.New("account locked due to inactivity, contact an administrator")

	// ErrLockedAfterRetries means this failed attempt crossed the retry
	// threshold and locked the account.
	ErrLockedAfterRetries = errors.New("account locked after repeated failed attempts, contact an administrator")

	ErrAccountNotFound      = errors.New("account not found")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
	ErrConfirmationMismatch = errors.New("new password and confirmation do not match")
	ErrPasswordTooShort     = errors.New("new password is too short")
	ErrDuplicateLogin       = errors.New("an account with this login already exists")

	// ErrStoreUnavailable wraps a failed read or write against the
	// persistent store.
	ErrStoreUnavailable = errors.New("account store unavailable")
)

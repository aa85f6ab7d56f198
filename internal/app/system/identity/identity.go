// internal/app/system/identity/identity.go

// Package identity abstracts the identity provider behind the user
// directory. The directory stores no secret material; this package owns
// registration, password verification, and credential changes, and hands
// back opaque UIDs that key the directory documents.
package identity

import (
	"context"
	"errors"
	"time"
)

// Account is the provider's view of an identity.
type Account struct {
	UID   string
	Email string
}

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// sign-in failures do not leak which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrResetInvalid       = errors.New("password reset token is invalid or expired")
)

// Provider is the identity backend. The built-in implementation stores
// bcrypt hashes in MongoDB; social sign-in arrives through a separate OAuth
// flow and never touches these methods.
type Provider interface {
	// Register creates a new identity and returns its UID.
	Register(ctx context.Context, email, password string) (Account, error)

	// Authenticate verifies an email/password pair.
	Authenticate(ctx context.Context, email, password string) (Account, error)

	// Reauthenticate verifies the password for an existing UID. Sensitive
	// changes (email, password) require it.
	Reauthenticate(ctx context.Context, uid, password string) error

	// ChangePassword replaces the password after re-authentication.
	ChangePassword(ctx context.Context, uid, newPassword string) error

	// ChangeEmail updates the sign-in email after re-authentication.
	ChangeEmail(ctx context.Context, uid, newEmail string) error

	// StartPasswordReset issues a reset token for the account, if one
	// exists, and dispatches it via the configured sender. Unknown emails
	// are not an error (anti-enumeration).
	StartPasswordReset(ctx context.Context, email string) error

	// CompletePasswordReset redeems a token and sets the new password.
	CompletePasswordReset(ctx context.Context, token, newPassword string) error
}

// ResetSender delivers a password reset token to the user. Wire an email
// gateway in production; the default implementation logs the link.
type ResetSender interface {
	SendPasswordReset(ctx context.Context, email, token string, expires time.Time) error
}

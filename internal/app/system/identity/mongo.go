// internal/app/system/identity/mongo.go
package identity

import (
	"context"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/credentials"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	resetLifetime  = 1 * time.Hour
)

// MongoProvider is the built-in identity backend: bcrypt hashes in the
// credentials collection, UIDs minted as UUIDs.
type MongoProvider struct {
	creds  *credentialstore.Store
	sender ResetSender
	log    *zap.Logger
}

// NewMongoProvider builds the provider. A nil sender falls back to logging
// reset tokens.
func NewMongoProvider(creds *credentialstore.Store, sender ResetSender, logger *zap.Logger) *MongoProvider {
	if sender == nil {
		sender = logSender{log: logger}
	}
	return &MongoProvider{creds: creds, sender: sender, log: logger}
}

func (p *MongoProvider) Register(ctx context.Context, email, password string) (Account, error) {
	if len(password) < minPasswordLen {
		return Account{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	uid := uuid.NewString()
	if err := p.creds.Create(ctx, uid, email, hash); err != nil {
		if err == credentialstore.ErrDuplicateEmail {
			return Account{}, ErrEmailTaken
		}
		return Account{}, err
	}
	return Account{UID: uid, Email: email}, nil
}

func (p *MongoProvider) Authenticate(ctx context.Context, email, password string) (Account, error) {
	cred, err := p.creds.GetByEmail(ctx, email)
	if err != nil {
		if err == credentialstore.ErrCredentialNotFound {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)) != nil {
		return Account{}, ErrInvalidCredentials
	}
	return Account{UID: cred.UID, Email: cred.Email}, nil
}

func (p *MongoProvider) Reauthenticate(ctx context.Context, uid, password string) error {
	cred, err := p.creds.GetByUID(ctx, uid)
	if err != nil {
		if err == credentialstore.ErrCredentialNotFound {
			return ErrInvalidCredentials
		}
		return err
	}
	if bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (p *MongoProvider) ChangePassword(ctx context.Context, uid, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return p.creds.SetPassword(ctx, uid, hash)
}

func (p *MongoProvider) ChangeEmail(ctx context.Context, uid, newEmail string) error {
	err := p.creds.SetEmail(ctx, uid, newEmail)
	if err == credentialstore.ErrDuplicateEmail {
		return ErrEmailTaken
	}
	return err
}

func (p *MongoProvider) StartPasswordReset(ctx context.Context, email string) error {
	cred, err := p.creds.GetByEmail(ctx, email)
	if err != nil {
		if err == credentialstore.ErrCredentialNotFound {
			// Do not reveal whether the account exists.
			return nil
		}
		return err
	}

	token := auth.NewStateToken()
	expires := time.Now().UTC().Add(resetLifetime)
	if err := p.creds.SetResetToken(ctx, cred.UID, token, expires); err != nil {
		return err
	}
	return p.sender.SendPasswordReset(ctx, cred.Email, token, expires)
}

func (p *MongoProvider) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := p.creds.ConsumeResetToken(ctx, token, hash); err != nil {
		if err == credentialstore.ErrResetTokenInvalid {
			return ErrResetInvalid
		}
		return err
	}
	return nil
}

// logSender is the development fallback: it logs the token instead of
// emailing it.
type logSender struct {
	log *zap.Logger
}

func (s logSender) SendPasswordReset(_ context.Context, email, token string, expires time.Time) error {
	s.log.Info("password reset requested (no mail sender configured)",
		zap.String("email", email),
		zap.String("token", token),
		zap.Time("expires", expires))
	return nil
}

// internal/app/store/credentials/credentialstore.go

// Package credentialstore persists password credentials for the built-in
// identity provider. Hashes never leave this package except as opaque
// comparisons; the directory document in the users store carries no secret
// material.
package credentialstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Credential is the stored password record for one identity UID.
type Credential struct {
	UID          string     `bson:"_id"`
	Email        string     `bson:"email"` // unique
	PasswordHash []byte     `bson:"password_hash"`
	ResetToken   string     `bson:"reset_token,omitempty"`
	ResetExpires *time.Time `bson:"reset_expires,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("credentials")}
}

var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrResetTokenInvalid  = errors.New("password reset token is invalid or expired")
)

// Create stores a new credential. The email must not already be in use.
func (s *Store) Create(ctx context.Context, uid, email string, passwordHash []byte) error {
	now := time.Now().UTC()
	cred := Credential{
		UID:          uid,
		Email:        normalize.Email(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, cred); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByEmail loads the credential for a sign-in attempt.
func (s *Store) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	var cred Credential
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&cred); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// GetByUID loads the credential for re-authentication checks.
func (s *Store) GetByUID(ctx context.Context, uid string) (*Credential, error) {
	var cred Credential
	if err := s.c.FindOne(ctx, bson.M{"_id": uid}).Decode(&cred); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// SetPassword replaces the stored hash and clears any outstanding reset
// token.
func (s *Store) SetPassword(ctx context.Context, uid string, passwordHash []byte) error {
	res, err := s.c.UpdateByID(ctx, uid, bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"reset_token": "", "reset_expires": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

// SetEmail changes the sign-in email.
func (s *Store) SetEmail(ctx context.Context, uid, email string) error {
	res, err := s.c.UpdateByID(ctx, uid, bson.M{
		"$set": bson.M{"email": normalize.Email(email), "updated_at": time.Now().UTC()},
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

// SetResetToken attaches a single-use password reset token with an expiry.
func (s *Store) SetResetToken(ctx context.Context, uid, token string, expires time.Time) error {
	res, err := s.c.UpdateByID(ctx, uid, bson.M{
		"$set": bson.M{
			"reset_token":   token,
			"reset_expires": expires,
			"updated_at":    time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

// ConsumeResetToken validates a reset token, replaces the password, and
// clears the token in one conditional write.
func (s *Store) ConsumeResetToken(ctx context.Context, token string, passwordHash []byte) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"reset_token":   token,
			"reset_expires": bson.M{"$gt": time.Now().UTC()},
		},
		bson.M{
			"$set":   bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"reset_token": "", "reset_expires": ""},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrResetTokenInvalid
	}
	return nil
}

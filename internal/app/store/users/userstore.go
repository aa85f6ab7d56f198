// internal/app/store/users/userstore.go
package userstore

// Terminology: User Identifiers
//   - UID / uid: the opaque identity-provider ID, stored as the users _id
//   - Email: the address users type to sign in; unique across the directory

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when creating a user whose email already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errMissingUID     = errors.New("user is missing an identity UID")
	errBadRole        = errors.New(`role must be "superadmin" or "member"`)
)

// Create inserts a new directory document keyed by the identity UID.
// Missing blocks are filled with the platform defaults.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		return models.User{}, errMissingUID
	}
	u.Email = normalize.Email(u.Email)
	u.Phone = normalize.Phone(u.Phone)
	u.Profile.FirstName = normalize.Name(u.Profile.FirstName)
	u.Profile.LastName = normalize.Name(u.Profile.LastName)
	if u.Profile.DisplayName == "" {
		u.Profile.DisplayName = normalize.Name(u.Profile.FirstName + " " + u.Profile.LastName)
	}
	u.Profile.DisplayNameCI = text.Fold(u.Profile.DisplayName)

	if u.Auth.Role == "" {
		u.Auth.Role = "member"
	}
	switch u.Auth.Role {
	case "superadmin", "member":
	default:
		return models.User{}, errBadRole
	}

	now := time.Now().UTC()
	if u.Auth.LastLogin.IsZero() {
		u.Auth.LastLogin = now
	}
	if u.Auth.LoginCount == 0 {
		u.Auth.LoginCount = 1
	}
	if u.Preferences.Language == "" {
		u.Preferences = defaultPreferences()
	}
	u.Metadata.CreatedAt = now
	u.Metadata.UpdatedAt = now
	u.Metadata.LastActive = now
	if u.Metadata.Platform == "" {
		u.Metadata.Platform = "web"
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByUID loads a user by identity UID.
func (s *Store) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": uid}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert reconciles a social sign-in identity with the directory: if no
// document exists for the UID, one is created with defaults; otherwise the
// existing document is returned unchanged. Reports whether a document was
// created.
func (s *Store) Upsert(ctx context.Context, uid, email, displayName string) (*models.User, bool, error) {
	existing, err := s.GetByUID(ctx, uid)
	if err == nil {
		return existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, err
	}

	u := models.User{
		ID:    uid,
		Email: email,
		Profile: models.UserProfile{
			DisplayName: displayName,
		},
		Auth: models.AuthInfo{Role: "member", EmailVerified: true},
	}
	created, err := s.Create(ctx, u)
	if err != nil {
		return nil, false, err
	}
	return &created, true, nil
}

// TouchLogin bumps last_login, last_active, and the login counter.
func (s *Store) TouchLogin(ctx context.Context, uid string) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateByID(ctx, uid, bson.M{
		"$set": bson.M{
			"auth.last_login":      now,
			"metadata.last_active": now,
			"metadata.updated_at":  now,
		},
		"$inc": bson.M{"auth.login_count": 1},
	})
	return err
}

// ProfileUpdate holds the editable profile fields.
type ProfileUpdate struct {
	FirstName            string
	LastName             string
	DisplayName          string
	Phone                string
	DateOfBirth          *time.Time
	Gender               string
	Nationality          string
	IdentificationType   string
	IdentificationNumber string
}

// UpdateProfile merge-patches the profile block and bumps updated_at.
func (s *Store) UpdateProfile(ctx context.Context, uid string, upd ProfileUpdate) error {
	first := normalize.Name(upd.FirstName)
	last := normalize.Name(upd.LastName)
	display := normalize.Name(upd.DisplayName)
	if display == "" {
		display = normalize.Name(first + " " + last)
	}

	set := bson.M{
		"profile.first_name":      first,
		"profile.last_name":       last,
		"profile.display_name":    display,
		"profile.display_name_ci": text.Fold(display),
		"phone":                   normalize.Phone(upd.Phone),
		"metadata.updated_at":     time.Now().UTC(),
	}
	if upd.DateOfBirth != nil {
		set["profile.date_of_birth"] = *upd.DateOfBirth
	}
	if upd.Gender != "" {
		set["profile.gender"] = upd.Gender
	}
	if upd.Nationality != "" {
		set["profile.nationality"] = upd.Nationality
	}
	if upd.IdentificationType != "" {
		set["profile.identification_type"] = upd.IdentificationType
		set["profile.identification_number"] = upd.IdentificationNumber
	}

	_, err := s.c.UpdateByID(ctx, uid, bson.M{"$set": set})
	return err
}

// UpdatePreferences replaces the preferences block.
func (s *Store) UpdatePreferences(ctx context.Context, uid string, prefs models.UserPreferences) error {
	_, err := s.c.UpdateByID(ctx, uid, bson.M{"$set": bson.M{
		"preferences":         prefs,
		"metadata.updated_at": time.Now().UTC(),
	}})
	return err
}

// UpdateEmail records an email change already performed at the identity
// store.
func (s *Store) UpdateEmail(ctx context.Context, uid, email string) error {
	_, err := s.c.UpdateByID(ctx, uid, bson.M{"$set": bson.M{
		"email":               normalize.Email(email),
		"auth.email_verified": false,
		"metadata.updated_at": time.Now().UTC(),
	}})
	if err != nil && wafflemongo.IsDup(err) {
		return ErrDuplicateEmail
	}
	return err
}

func defaultPreferences() models.UserPreferences {
	return models.UserPreferences{
		Language: "en",
		Notifications: models.NotificationPreferences{
			Email:    true,
			SMS:      true,
			WhatsApp: true,
			Push:     true,
		},
		Privacy: models.PrivacySettings{
			ShowProfile: true,
			ShowStats:   true,
		},
	}
}

// internal/domain/models/user.go
package models

import "time"

// User is the directory document for an authenticated person.
//
// The document ID is the identity-provider UID, not an ObjectID: the
// identity store owns user identity and this collection cross-references
// it. One User may hold ClubMember rows in many clubs.
type User struct {
	ID          string          `bson:"_id" json:"id"` // identity-provider UID
	Email       string          `bson:"email" json:"email"`
	Phone       string          `bson:"phone,omitempty" json:"phone,omitempty"`
	Profile     UserProfile     `bson:"profile" json:"profile"`
	Auth        AuthInfo        `bson:"auth" json:"auth"`
	Preferences UserPreferences `bson:"preferences" json:"preferences"`
	Metadata    UserMetadata    `bson:"metadata" json:"metadata"`
}

type UserProfile struct {
	FirstName            string     `bson:"first_name" json:"first_name"`
	LastName             string     `bson:"last_name" json:"last_name"`
	DisplayName          string     `bson:"display_name" json:"display_name"`
	DisplayNameCI        string     `bson:"display_name_ci" json:"-"` // lowercase, diacritics-stripped
	PhotoURL             string     `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	DateOfBirth          *time.Time `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Gender               string     `bson:"gender,omitempty" json:"gender,omitempty"` // male | female | other
	Nationality          string     `bson:"nationality,omitempty" json:"nationality,omitempty"`
	IdentificationType   string     `bson:"identification_type,omitempty" json:"identification_type,omitempty"` // ic | passport
	IdentificationNumber string     `bson:"identification_number,omitempty" json:"identification_number,omitempty"`
}

// AuthInfo mirrors what the identity store knows about the account.
type AuthInfo struct {
	Role             string    `bson:"role" json:"role"` // superadmin | member
	EmailVerified    bool      `bson:"email_verified" json:"email_verified"`
	PhoneVerified    bool      `bson:"phone_verified" json:"phone_verified"`
	TwoFactorEnabled bool      `bson:"two_factor_enabled" json:"two_factor_enabled"`
	LastLogin        time.Time `bson:"last_login" json:"last_login"`
	LoginCount       int       `bson:"login_count" json:"login_count"`
}

type UserPreferences struct {
	Language      string                  `bson:"language" json:"language"` // en | ms | zh | ta
	Notifications NotificationPreferences `bson:"notifications" json:"notifications"`
	Privacy       PrivacySettings         `bson:"privacy" json:"privacy"`
}

type NotificationPreferences struct {
	Email    bool `bson:"email" json:"email"`
	SMS      bool `bson:"sms" json:"sms"`
	WhatsApp bool `bson:"whatsapp" json:"whatsapp"`
	Push     bool `bson:"push" json:"push"`
}

type PrivacySettings struct {
	ShowProfile bool `bson:"show_profile" json:"show_profile"`
	ShowStats   bool `bson:"show_stats" json:"show_stats"`
}

type UserMetadata struct {
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
	LastActive time.Time `bson:"last_active" json:"last_active"`
	Platform   string    `bson:"platform,omitempty" json:"platform,omitempty"` // web | ios | android
}

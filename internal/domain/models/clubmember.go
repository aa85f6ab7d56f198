// internal/domain/models/clubmember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClubMember is the authoritative join between users and clubs.
// At most one active document per (user_id, club_id); role is a scalar and
// the permission list may contain the "all" wildcard.
type ClubMember struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"` // identity-provider UID
	ClubID      primitive.ObjectID `bson:"club_id" json:"club_id"`
	Role        string             `bson:"role" json:"role"` // owner | admin | coach | member
	Permissions []string           `bson:"permissions" json:"permissions"`
	Status      string             `bson:"status" json:"status"` // active | inactive | suspended

	// RegistrationToken records which bulk invitation code (if any) the
	// member joined through.
	RegistrationToken string `bson:"registration_token,omitempty" json:"registration_token,omitempty"`

	JoinedAt  time.Time  `bson:"joined_at" json:"joined_at"`
	LeftAt    *time.Time `bson:"left_at,omitempty" json:"left_at,omitempty"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// internal/domain/models/invitation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invitation types.
const (
	InvitationSingle = "single" // targeted at one email, consumed once
	InvitationBulk   = "bulk"   // shared link with a usage counter and limit
)

// Invitation is a time-boxed, code-based grant permitting one or more users
// to join a club at a specified role. Documents are keyed by code and are
// never physically removed: expiry is evaluated lazily when a code is
// presented, not swept by a background job.
type Invitation struct {
	Code   string             `bson:"_id" json:"code"` // 8 chars, [A-Z0-9]
	ClubID primitive.ObjectID `bson:"club_id" json:"club_id"`
	Type   string             `bson:"type" json:"type"`     // single | bulk
	Role   string             `bson:"role" json:"role"`     // role granted on consumption
	Status string             `bson:"status" json:"status"` // pending | active | used | expired

	// Single-use fields.
	Email   string     `bson:"email,omitempty" json:"email,omitempty"`
	Message string     `bson:"message,omitempty" json:"message,omitempty"`
	UsedAt  *time.Time `bson:"used_at,omitempty" json:"used_at,omitempty"`
	UsedBy  string     `bson:"used_by,omitempty" json:"used_by,omitempty"`

	// Bulk fields. UsedCount only ever increases.
	MemberLimit int        `bson:"member_limit,omitempty" json:"member_limit,omitempty"`
	UsedCount   int        `bson:"used_count" json:"used_count"`
	LastUsedAt  *time.Time `bson:"last_used_at,omitempty" json:"last_used_at,omitempty"`

	CreatedBy string    `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// IsBulk reports whether the invitation is the shared-link variant.
func (i *Invitation) IsBulk() bool { return i.Type == InvitationBulk }

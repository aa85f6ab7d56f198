// internal/app/system/status/status.go

// Package status centralizes the lifecycle status values stored on club,
// member, and invitation documents so stores and handlers compare against
// one set of constants.
package status

// Club statuses.
const (
	ClubTrial     = "trial"
	ClubActive    = "active"
	ClubSuspended = "suspended"
)

// Member statuses.
const (
	MemberActive    = "active"
	MemberInactive  = "inactive"
	MemberSuspended = "suspended"
)

// Invitation statuses. Pending is the initial state of single-use
// invitations; Active is the initial state of bulk invitations. Expired is
// derived from the clock at validation time and is not normally written.
const (
	InvitationPending = "pending"
	InvitationActive  = "active"
	InvitationUsed    = "used"
	InvitationExpired = "expired"
)

// IsValidClub reports whether s is a recognized club status.
func IsValidClub(s string) bool {
	return s == ClubTrial || s == ClubActive || s == ClubSuspended
}

// IsValidMember reports whether s is a recognized member status.
func IsValidMember(s string) bool {
	return s == MemberActive || s == MemberInactive || s == MemberSuspended
}

// internal/testutil/fixtures.go
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	clubstore "github.com/dalemusser/clubhub/internal/app/store/clubs"
	invitationstore "github.com/dalemusser/clubhub/internal/app/store/invitations"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var fixtureSeq atomic.Int64

// uniqueEmail returns an email that will not collide with other fixtures
// in the same test database.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, fixtureSeq.Add(1))
}

// CreateUser inserts a directory user with defaults and returns it.
func CreateUser(t *testing.T, db *mongo.Database, firstName string) models.User {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	u, err := userstore.New(db).Create(ctx, models.User{
		ID:    uuid.NewString(),
		Email: uniqueEmail(firstName),
		Profile: models.UserProfile{
			FirstName: firstName,
			LastName:  "Tester",
		},
	})
	if err != nil {
		t.Fatalf("fixture user: %v", err)
	}
	return u
}

// CreateClub registers a club (and its founding admin membership) owned by
// creatorUID.
func CreateClub(t *testing.T, db *mongo.Database, name, creatorUID string) models.Club {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	club, err := clubstore.New(db).Create(ctx, models.Club{Name: name}, creatorUID)
	if err != nil {
		t.Fatalf("fixture club: %v", err)
	}
	return club
}

// CreateClubMember adds an active membership with the given role.
func CreateClubMember(t *testing.T, db *mongo.Database, clubID primitive.ObjectID, userID, role string, permissions []string) models.ClubMember {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	m, err := memberstore.New(db).Add(ctx, models.ClubMember{
		UserID:      userID,
		ClubID:      clubID,
		Role:        role,
		Permissions: permissions,
	})
	if err != nil {
		t.Fatalf("fixture member: %v", err)
	}
	return m
}

// CreateBulkInvitation issues a bulk invitation for the club.
func CreateBulkInvitation(t *testing.T, db *mongo.Database, clubID primitive.ObjectID, role string, limit int, createdBy string) models.Invitation {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	inv, err := invitationstore.New(db).CreateBulk(ctx, clubID, role, limit, createdBy)
	if err != nil {
		t.Fatalf("fixture bulk invitation: %v", err)
	}
	return inv
}

// CreateSingleInvitation issues a targeted invitation for the club.
func CreateSingleInvitation(t *testing.T, db *mongo.Database, clubID primitive.ObjectID, email, role, createdBy string) models.Invitation {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	inv, err := invitationstore.New(db).CreateSingle(ctx, clubID, email, role, "", createdBy)
	if err != nil {
		t.Fatalf("fixture single invitation: %v", err)
	}
	return inv
}

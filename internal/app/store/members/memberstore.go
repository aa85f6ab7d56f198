// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("club_members")}
}

var (
	ErrMemberNotFound = errors.New("club member not found")
	// ErrAlreadyMember is surfaced by the partial unique index on
	// (club_id, user_id) over active documents.
	ErrAlreadyMember = errors.New("user is already an active member of this club")
)

// Add inserts an active membership. A former (inactive) membership does not
// block rejoining; a concurrent duplicate join is rejected by the index.
func (s *Store) Add(ctx context.Context, m models.ClubMember) (models.ClubMember, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	if m.Status == "" {
		m.Status = status.MemberActive
	}
	if m.Role == "" {
		m.Role = "member"
	}
	if m.Permissions == nil {
		m.Permissions = []string{}
	}
	m.JoinedAt = now
	m.UpdatedAt = now
	m.LeftAt = nil

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ClubMember{}, ErrAlreadyMember
		}
		return models.ClubMember{}, err
	}
	return m, nil
}

// GetByID loads a membership document.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ClubMember, error) {
	var m models.ClubMember
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetActive returns the user's active membership in the club, or
// ErrMemberNotFound.
func (s *Store) GetActive(ctx context.Context, clubID primitive.ObjectID, userID string) (*models.ClubMember, error) {
	var m models.ClubMember
	err := s.c.FindOne(ctx, bson.M{
		"club_id": clubID,
		"user_id": userID,
		"status":  status.MemberActive,
	}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByClub returns the club roster, optionally filtered by status
// (empty means all), newest joiners last.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID, memberStatus string) ([]models.ClubMember, error) {
	filter := bson.M{"club_id": clubID}
	if memberStatus != "" {
		filter["status"] = memberStatus
	}
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.ClubMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// ListActiveByUser returns all active memberships for a user across clubs.
func (s *Store) ListActiveByUser(ctx context.Context, userID string) ([]models.ClubMember, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"user_id": userID, "status": status.MemberActive},
		options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.ClubMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// MemberUpdate carries the merge-patch for a membership document.
type MemberUpdate struct {
	Role        *string
	Permissions []string
	Status      *string
}

// Update merge-patches role, permissions, and status.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd MemberUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.Permissions != nil {
		set["permissions"] = upd.Permissions
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Remove soft-deletes a membership: the document flips to inactive with a
// left_at timestamp and is never physically removed. Only an active
// membership can be removed.
func (s *Store) Remove(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": status.MemberActive},
		bson.M{"$set": bson.M{
			"status":     status.MemberInactive,
			"left_at":    now,
			"updated_at": now,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// internal/app/store/invitations/invitationstore.go
package invitationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/invitecode"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Lifetimes and limits for new invitations.
const (
	SingleLifetime     = 7 * 24 * time.Hour
	BulkLifetime       = 30 * 24 * time.Hour
	DefaultMemberLimit = 100
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("invitations")}
}

// Validation outcomes. Validate and Consume report the specific reason a
// code cannot be used so callers can explain it.
var (
	ErrInvitationNotFound = errors.New("invitation code not found")
	ErrInvitationUsed     = errors.New("invitation has already been used")
	ErrInvitationExpired  = errors.New("invitation has expired")
	ErrInvitationFull     = errors.New("invitation has reached its member limit")
	errBadRole            = errors.New("invitation role is required")
)

// CreateSingle issues a targeted, one-shot invitation. The code doubles as
// the document key; a generation collision (vanishingly rare) surfaces as a
// duplicate-key error and the insert is retried with a fresh code.
func (s *Store) CreateSingle(ctx context.Context, clubID primitive.ObjectID, email, role, message, createdBy string) (models.Invitation, error) {
	if role == "" {
		return models.Invitation{}, errBadRole
	}

	now := time.Now().UTC()
	inv := models.Invitation{
		ClubID:    clubID,
		Type:      models.InvitationSingle,
		Role:      role,
		Status:    status.InvitationPending,
		Email:     normalize.Email(email),
		Message:   message,
		CreatedBy: createdBy,
		CreatedAt: now,
		ExpiresAt: now.Add(SingleLifetime),
	}
	return s.insertWithFreshCode(ctx, inv)
}

// CreateBulk issues a shared-link invitation with a usage cap.
// memberLimit <= 0 selects the default cap.
func (s *Store) CreateBulk(ctx context.Context, clubID primitive.ObjectID, role string, memberLimit int, createdBy string) (models.Invitation, error) {
	if role == "" {
		return models.Invitation{}, errBadRole
	}
	if memberLimit <= 0 {
		memberLimit = DefaultMemberLimit
	}

	now := time.Now().UTC()
	inv := models.Invitation{
		ClubID:      clubID,
		Type:        models.InvitationBulk,
		Role:        role,
		Status:      status.InvitationActive,
		MemberLimit: memberLimit,
		UsedCount:   0,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		ExpiresAt:   now.Add(BulkLifetime),
	}
	return s.insertWithFreshCode(ctx, inv)
}

// insertWithFreshCode generates the code and inserts, retrying a few times
// if the generated code already exists.
func (s *Store) insertWithFreshCode(ctx context.Context, inv models.Invitation) (models.Invitation, error) {
	const attempts = 5
	var err error
	for i := 0; i < attempts; i++ {
		inv.Code, err = invitecode.New()
		if err != nil {
			return models.Invitation{}, err
		}
		if _, err = s.c.InsertOne(ctx, inv); err == nil {
			return inv, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.Invitation{}, err
		}
	}
	return models.Invitation{}, err
}

// GetByCode loads an invitation without judging its usability.
func (s *Store) GetByCode(ctx context.Context, code string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := s.c.FindOne(ctx, bson.M{"_id": code}).Decode(&inv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// Validate checks whether a code could be consumed right now and returns
// the invitation when it can. Expiry is judged lazily against the clock at
// call time; the stored status is never rewritten to expired.
func (s *Store) Validate(ctx context.Context, code string) (*models.Invitation, error) {
	inv, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := usable(inv, time.Now().UTC()); err != nil {
		return nil, err
	}
	return inv, nil
}

func usable(inv *models.Invitation, now time.Time) error {
	switch inv.Status {
	case status.InvitationUsed:
		return ErrInvitationUsed
	case status.InvitationExpired:
		return ErrInvitationExpired
	}
	if now.After(inv.ExpiresAt) {
		return ErrInvitationExpired
	}
	if inv.IsBulk() && inv.UsedCount >= inv.MemberLimit {
		return ErrInvitationFull
	}
	return nil
}

// Consume atomically marks the invitation as used by uid. For single
// invitations the status flips pending -> used exactly once; for bulk
// invitations the counter is incremented only while under the member
// limit. Both paths put the eligibility predicate in the update filter, so
// two concurrent consumers cannot both succeed past the cap.
func (s *Store) Consume(ctx context.Context, code, uid string) (*models.Invitation, error) {
	inv, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := usable(inv, now); err != nil {
		return nil, err
	}

	if inv.IsBulk() {
		return s.consumeBulk(ctx, inv, now)
	}
	return s.consumeSingle(ctx, inv, uid, now)
}

func (s *Store) consumeSingle(ctx context.Context, inv *models.Invitation, uid string, now time.Time) (*models.Invitation, error) {
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{
			"_id":        inv.Code,
			"status":     status.InvitationPending,
			"expires_at": bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{
			"status":  status.InvitationUsed,
			"used_at": now,
			"used_by": uid,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var updated models.Invitation
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			// Lost the race: someone consumed or the clock crossed expiry
			// between read and write.
			return nil, ErrInvitationUsed
		}
		return nil, err
	}
	return &updated, nil
}

func (s *Store) consumeBulk(ctx context.Context, inv *models.Invitation, now time.Time) (*models.Invitation, error) {
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{
			"_id":        inv.Code,
			"status":     status.InvitationActive,
			"expires_at": bson.M{"$gt": now},
			"used_count": bson.M{"$lt": inv.MemberLimit},
		},
		bson.M{
			"$inc": bson.M{"used_count": 1},
			"$set": bson.M{"last_used_at": now},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var updated models.Invitation
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvitationFull
		}
		return nil, err
	}
	return &updated, nil
}

// ListByClub returns a club's invitations, newest first, optionally
// filtered by status.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID, invStatus string) ([]models.Invitation, error) {
	filter := bson.M{"club_id": clubID}
	if invStatus != "" {
		filter["status"] = invStatus
	}
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var invs []models.Invitation
	if err := cur.All(ctx, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

// Revoke marks a pending or active invitation expired so it can no longer
// be consumed. Used and already-expired codes are left alone.
func (s *Store) Revoke(ctx context.Context, code string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":    code,
			"status": bson.M{"$in": []string{status.InvitationPending, status.InvitationActive}},
		},
		bson.M{"$set": bson.M{"status": status.InvitationExpired}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

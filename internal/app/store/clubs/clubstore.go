// internal/app/store/clubs/clubstore.go
package clubstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/slug"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Trial defaults applied to every new club.
const (
	defaultPlan        = "free"
	defaultValidity    = 30 * 24 * time.Hour
	defaultMemberLimit = 50
	defaultTimeZone    = "Asia/Kuala_Lumpur"
	defaultCurrency    = "MYR"
)

// maxSlugAttempts bounds the dedup loop; in practice a handful of suffixes
// suffices even for popular names.
const maxSlugAttempts = 50

type Store struct {
	c *mongo.Collection
	// members is written once per club, for the founding membership.
	// All other membership traffic goes through the members store.
	members *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:       db.Collection("clubs"),
		members: db.Collection("club_members"),
	}
}

var (
	ErrClubNotFound = errors.New("club not found")
	errMissingName  = errors.New("club name is required")
	errSlugExhaust  = errors.New("could not find a free slug for club name")
)

// Create registers a club and its founding membership. The creator becomes
// an active admin with the "all" permission. The slug is derived from the
// name; on collision with an existing club the insert is retried with a
// numeric suffix (the unique index on name_slug is the arbiter, so two
// concurrent creates with the same name cannot share a slug).
func (s *Store) Create(ctx context.Context, club models.Club, creatorUID string) (models.Club, error) {
	if club.Name == "" {
		return models.Club{}, errMissingName
	}

	now := time.Now().UTC()
	club.ID = primitive.NewObjectID()
	club.CreatedBy = creatorUID
	club.Status = status.ClubTrial
	club.CreatedAt = now
	club.UpdatedAt = now

	if club.Subscription.Plan == "" {
		club.Subscription = models.ClubSubscription{
			Plan:        defaultPlan,
			ValidUntil:  now.Add(defaultValidity),
			MemberLimit: defaultMemberLimit,
		}
	}
	if club.Settings.TimeZone == "" {
		club.Settings.TimeZone = defaultTimeZone
	}
	if club.Settings.Currency == "" {
		club.Settings.Currency = defaultCurrency
	}
	if len(club.Settings.Languages) == 0 {
		club.Settings.Languages = []string{"en"}
	}
	if club.Settings.FiscalYearStart == 0 {
		club.Settings.FiscalYearStart = 1
	}
	if len(club.OperatingHours) == 0 {
		club.OperatingHours = DefaultOperatingHours()
	}
	// The founder is counted immediately; the membership document follows.
	club.Stats = models.ClubStats{TotalMembers: 1, ActiveMembers: 1}

	base := slug.Make(club.Name)
	club.NameSlug = base
	inserted := false
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		if _, err := s.c.InsertOne(ctx, club); err != nil {
			if wafflemongo.IsDup(err) {
				club.NameSlug = slug.WithSuffix(club.Name, attempt)
				continue
			}
			return models.Club{}, err
		}
		inserted = true
		break
	}
	if !inserted {
		return models.Club{}, fmt.Errorf("%w %q", errSlugExhaust, club.Name)
	}

	founder := models.ClubMember{
		ID:          primitive.NewObjectID(),
		UserID:      creatorUID,
		ClubID:      club.ID,
		Role:        "admin",
		Permissions: []string{"all"},
		Status:      status.MemberActive,
		JoinedAt:    now,
		UpdatedAt:   now,
	}
	if _, err := s.members.InsertOne(ctx, founder); err != nil {
		return models.Club{}, fmt.Errorf("club created but founding membership failed: %w", err)
	}
	return club, nil
}

// DefaultOperatingHours is the trial-club weekly schedule: weekdays
// 06:00-22:00, weekends 08:00-20:00.
func DefaultOperatingHours() models.OperatingHours {
	weekday := models.DaySchedule{IsOpen: true, OpenTime: "06:00", CloseTime: "22:00"}
	weekend := models.DaySchedule{IsOpen: true, OpenTime: "08:00", CloseTime: "20:00"}
	return models.OperatingHours{
		"monday":    weekday,
		"tuesday":   weekday,
		"wednesday": weekday,
		"thursday":  weekday,
		"friday":    weekday,
		"saturday":  weekend,
		"sunday":    weekend,
	}
}

// GetByID loads a club. Returns ErrClubNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error) {
	var club models.Club
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&club); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &club, nil
}

// GetBySlug loads a club by its unique slug.
func (s *Store) GetBySlug(ctx context.Context, nameSlug string) (*models.Club, error) {
	var club models.Club
	if err := s.c.FindOne(ctx, bson.M{"name_slug": nameSlug}).Decode(&club); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &club, nil
}

// GetFirst loads the oldest club on the platform. Deployments hosting a
// single club use it as their default club lookup.
func (s *Store) GetFirst(ctx context.Context) (*models.Club, error) {
	var club models.Club
	err := s.c.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})).Decode(&club)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &club, nil
}

// GetByIDs loads the clubs with the given ids, ordered by creation time.
// Missing ids are skipped, not an error.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Club, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clubs []models.Club
	if err := cur.All(ctx, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// SettingsUpdate carries the merge-patch for club settings surfaces.
// Nil pointers leave the stored value untouched.
type SettingsUpdate struct {
	Name           *string
	Sports         []string
	Profile        *models.ClubProfile
	Contact        *models.ClubContact
	Address        *models.ClubAddress
	Settings       *models.ClubSettings
	OperatingHours models.OperatingHours
	Features       *models.ClubFeatures
}

// Update merge-patches the club document. The slug never changes after
// creation, even when the display name does.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd SettingsUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil && *upd.Name != "" {
		set["name"] = *upd.Name
	}
	if upd.Sports != nil {
		set["sports"] = upd.Sports
	}
	if upd.Profile != nil {
		set["profile"] = *upd.Profile
	}
	if upd.Contact != nil {
		set["contact"] = *upd.Contact
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Settings != nil {
		set["settings"] = *upd.Settings
	}
	if upd.OperatingHours != nil {
		set["operating_hours"] = upd.OperatingHours
	}
	if upd.Features != nil {
		set["features"] = *upd.Features
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrClubNotFound
	}
	return nil
}

// IncStats bumps the denormalized member counters by the given deltas.
// Use negative deltas to decrement. Best-effort: no transaction couples
// this to the membership write it mirrors.
func (s *Store) IncStats(ctx context.Context, id primitive.ObjectID, totalDelta, activeDelta int) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{
			"stats.total_members":  totalDelta,
			"stats.active_members": activeDelta,
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

package clubstore_test

import (
	"testing"
	"time"

	clubstore "github.com/dalemusser/clubhub/internal/app/store/clubs"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	founder := testutil.CreateUser(t, db, "Founder")
	club, err := store.Create(ctx, models.Club{Name: "KL Badminton Club"}, founder.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if club.NameSlug != "kl-badminton-club" {
		t.Errorf("slug = %q, want kl-badminton-club", club.NameSlug)
	}
	if club.Status != status.ClubTrial {
		t.Errorf("status = %q, want trial", club.Status)
	}
	if club.Subscription.Plan != "free" {
		t.Errorf("plan = %q, want free", club.Subscription.Plan)
	}
	if club.Subscription.MemberLimit != 50 {
		t.Errorf("member limit = %d, want 50", club.Subscription.MemberLimit)
	}
	until := time.Until(club.Subscription.ValidUntil)
	if until < 29*24*time.Hour || until > 31*24*time.Hour {
		t.Errorf("validity window = %v, want ~30 days", until)
	}
	if club.Settings.TimeZone != "Asia/Kuala_Lumpur" || club.Settings.Currency != "MYR" {
		t.Errorf("settings = %+v, want KL defaults", club.Settings)
	}
	if club.Stats.TotalMembers != 1 || club.Stats.ActiveMembers != 1 {
		t.Errorf("stats = %+v, want 1/1", club.Stats)
	}

	mon, ok := club.OperatingHours["monday"]
	if !ok || !mon.IsOpen || mon.OpenTime != "06:00" || mon.CloseTime != "22:00" {
		t.Errorf("monday hours = %+v, want 06:00-22:00", mon)
	}
	sat := club.OperatingHours["saturday"]
	if !sat.IsOpen || sat.OpenTime != "08:00" || sat.CloseTime != "20:00" {
		t.Errorf("saturday hours = %+v, want 08:00-20:00", sat)
	}
}

func TestCreate_FoundingMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	founder := testutil.CreateUser(t, db, "Founder")
	club := testutil.CreateClub(t, db, "Padel One", founder.ID)

	m, err := memberstore.New(db).GetActive(ctx, club.ID, founder.ID)
	if err != nil {
		t.Fatalf("founder has no active membership: %v", err)
	}
	if m.Role != "admin" {
		t.Errorf("founder role = %q, want admin", m.Role)
	}
	if len(m.Permissions) != 1 || m.Permissions[0] != "all" {
		t.Errorf("founder permissions = %v, want [all]", m.Permissions)
	}
}

func TestCreate_SlugDedup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := testutil.CreateUser(t, db, "Alfa")
	b := testutil.CreateUser(t, db, "Bravo")
	c := testutil.CreateUser(t, db, "Charlie")

	first, err := store.Create(ctx, models.Club{Name: "KL Badminton Club!!"}, a.ID)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if first.NameSlug != "kl-badminton-club" {
		t.Fatalf("first slug = %q", first.NameSlug)
	}

	second, err := store.Create(ctx, models.Club{Name: "KL Badminton Club"}, b.ID)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if second.NameSlug != "kl-badminton-club-1" {
		t.Errorf("second slug = %q, want kl-badminton-club-1", second.NameSlug)
	}

	third, err := store.Create(ctx, models.Club{Name: "kl BADMINTON club"}, c.ID)
	if err != nil {
		t.Fatalf("third Create: %v", err)
	}
	if third.NameSlug != "kl-badminton-club-2" {
		t.Errorf("third slug = %q, want kl-badminton-club-2", third.NameSlug)
	}
}

func TestGetByIDs_OrderAndSkip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.CreateUser(t, db, "Owner")
	first := testutil.CreateClub(t, db, "First Club", u.ID)
	second := testutil.CreateClub(t, db, "Second Club", u.ID)

	clubs, err := store.GetByIDs(ctx, []primitive.ObjectID{second.ID, first.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(clubs) != 2 {
		t.Fatalf("got %d clubs, want 2", len(clubs))
	}
	if clubs[0].ID != first.ID {
		t.Errorf("clubs not ordered by creation time")
	}

	none, err := store.GetByIDs(ctx, nil)
	if err != nil || none != nil {
		t.Errorf("GetByIDs(nil) = %v, %v", none, err)
	}
}

func TestGetFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetFirst(ctx); err != clubstore.ErrClubNotFound {
		t.Fatalf("GetFirst on empty db err = %v, want ErrClubNotFound", err)
	}

	u := testutil.CreateUser(t, db, "Owner")
	oldest := testutil.CreateClub(t, db, "Oldest Club", u.ID)
	testutil.CreateClub(t, db, "Newer Club", u.ID)

	got, err := store.GetFirst(ctx)
	if err != nil {
		t.Fatalf("GetFirst: %v", err)
	}
	if got.ID != oldest.ID {
		t.Errorf("GetFirst = %q, want the oldest club", got.Name)
	}
}

func TestUpdate_SlugNeverChanges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.CreateUser(t, db, "Owner")
	club := testutil.CreateClub(t, db, "Rename Me", u.ID)

	newName := "Totally Different"
	if err := store.Update(ctx, club.ID, clubstore.SettingsUpdate{Name: &newName}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Totally Different" {
		t.Errorf("name = %q", got.Name)
	}
	if got.NameSlug != "rename-me" {
		t.Errorf("slug changed to %q on rename", got.NameSlug)
	}
}

func TestIncStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.CreateUser(t, db, "Owner")
	club := testutil.CreateClub(t, db, "Stat Club", u.ID)

	if err := store.IncStats(ctx, club.ID, 1, 1); err != nil {
		t.Fatalf("IncStats: %v", err)
	}
	if err := store.IncStats(ctx, club.ID, 0, -1); err != nil {
		t.Fatalf("IncStats: %v", err)
	}

	got, err := store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Stats.TotalMembers != 2 || got.Stats.ActiveMembers != 1 {
		t.Errorf("stats = %+v, want total 2 active 1", got.Stats)
	}
}

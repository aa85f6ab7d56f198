package memberstore_test

import (
	"testing"

	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAdd_DuplicateActiveRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	joiner := testutil.CreateUser(t, db, "Joiner")
	club := testutil.CreateClub(t, db, "Dup Club", owner.ID)

	testutil.CreateClubMember(t, db, club.ID, joiner.ID, "member", []string{"view"})

	store := memberstore.New(db)
	_, err := store.Add(ctx, memberFor(club.ID, joiner.ID))
	if err != memberstore.ErrAlreadyMember {
		t.Fatalf("second Add err = %v, want ErrAlreadyMember", err)
	}
}

func TestRemove_AllowsRejoin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	joiner := testutil.CreateUser(t, db, "Joiner")
	club := testutil.CreateClub(t, db, "Rejoin Club", owner.ID)

	m := testutil.CreateClubMember(t, db, club.ID, joiner.ID, "member", []string{"view"})

	if err := store.Remove(ctx, m.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	gone, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID after remove: %v", err)
	}
	if gone.Status != status.MemberInactive {
		t.Errorf("status = %q, want inactive", gone.Status)
	}
	if gone.LeftAt == nil {
		t.Error("left_at not set on removal")
	}

	// Removing again must fail: the document is no longer active.
	if err := store.Remove(ctx, m.ID); err != memberstore.ErrMemberNotFound {
		t.Errorf("second Remove err = %v, want ErrMemberNotFound", err)
	}

	// The inactive history document does not block rejoining.
	if _, err := store.Add(ctx, memberFor(club.ID, joiner.ID)); err != nil {
		t.Fatalf("rejoin after removal: %v", err)
	}
}

func TestListByClub_StatusFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	a := testutil.CreateUser(t, db, "Alfa")
	b := testutil.CreateUser(t, db, "Bravo")
	club := testutil.CreateClub(t, db, "Filter Club", owner.ID)

	testutil.CreateClubMember(t, db, club.ID, a.ID, "member", []string{"view"})
	mb := testutil.CreateClubMember(t, db, club.ID, b.ID, "coach", []string{"view"})
	if err := store.Remove(ctx, mb.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	active, err := store.ListByClub(ctx, club.ID, status.MemberActive)
	if err != nil {
		t.Fatalf("ListByClub active: %v", err)
	}
	// Founder + a.
	if len(active) != 2 {
		t.Errorf("active roster = %d, want 2", len(active))
	}

	all, err := store.ListByClub(ctx, club.ID, "")
	if err != nil {
		t.Fatalf("ListByClub all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("full roster = %d, want 3", len(all))
	}
}

func TestUpdate_RoleAndStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	joiner := testutil.CreateUser(t, db, "Joiner")
	club := testutil.CreateClub(t, db, "Update Club", owner.ID)
	m := testutil.CreateClubMember(t, db, club.ID, joiner.ID, "member", []string{"view"})

	role := "coach"
	suspended := status.MemberSuspended
	err := store.Update(ctx, m.ID, memberstore.MemberUpdate{
		Role:        &role,
		Permissions: []string{"view", "manage_members"},
		Status:      &suspended,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Role != "coach" || got.Status != status.MemberSuspended {
		t.Errorf("member = %+v", got)
	}
	if len(got.Permissions) != 2 {
		t.Errorf("permissions = %v", got.Permissions)
	}
}

func memberFor(clubID primitive.ObjectID, userID string) models.ClubMember {
	return models.ClubMember{
		UserID:      userID,
		ClubID:      clubID,
		Role:        "member",
		Permissions: []string{"view"},
	}
}

package invitationstore_test

import (
	"testing"
	"time"

	invitationstore "github.com/dalemusser/clubhub/internal/app/store/invitations"
	"github.com/dalemusser/clubhub/internal/app/system/invitecode"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// backdate rewrites an invitation's expiry directly, simulating the
// passage of time.
func backdate(t *testing.T, db *mongo.Database, code string, expires time.Time) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	_, err := db.Collection("invitations").UpdateByID(ctx, code,
		bson.M{"$set": bson.M{"expires_at": expires}})
	if err != nil {
		t.Fatalf("backdate: %v", err)
	}
}

func TestCreateSingle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	club := testutil.CreateClub(t, db, "Invite Club", owner.ID)

	inv, err := invitationstore.New(db).CreateSingle(ctx, club.ID, "Guest@Example.com", "coach", "welcome aboard", owner.ID)
	if err != nil {
		t.Fatalf("CreateSingle: %v", err)
	}
	if !invitecode.Valid(inv.Code) {
		t.Errorf("code %q is not a valid invite code", inv.Code)
	}
	if inv.Status != status.InvitationPending {
		t.Errorf("status = %q, want pending", inv.Status)
	}
	if inv.Email != "guest@example.com" {
		t.Errorf("email = %q, want normalized", inv.Email)
	}
	lifetime := time.Until(inv.ExpiresAt)
	if lifetime < 6*24*time.Hour || lifetime > 8*24*time.Hour {
		t.Errorf("lifetime = %v, want ~7 days", lifetime)
	}
}

func TestCreateBulk_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	club := testutil.CreateClub(t, db, "Bulk Club", owner.ID)

	inv, err := invitationstore.New(db).CreateBulk(ctx, club.ID, "member", 0, owner.ID)
	if err != nil {
		t.Fatalf("CreateBulk: %v", err)
	}
	if inv.Status != status.InvitationActive {
		t.Errorf("status = %q, want active", inv.Status)
	}
	if inv.MemberLimit != invitationstore.DefaultMemberLimit {
		t.Errorf("member limit = %d, want %d", inv.MemberLimit, invitationstore.DefaultMemberLimit)
	}
	lifetime := time.Until(inv.ExpiresAt)
	if lifetime < 29*24*time.Hour || lifetime > 31*24*time.Hour {
		t.Errorf("lifetime = %v, want ~30 days", lifetime)
	}
}

func TestConsume_SingleOnlyOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invitationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	guest := testutil.CreateUser(t, db, "Guest")
	club := testutil.CreateClub(t, db, "Once Club", owner.ID)
	inv := testutil.CreateSingleInvitation(t, db, club.ID, guest.Email, "member", owner.ID)

	used, err := store.Consume(ctx, inv.Code, guest.ID)
	if err != nil {
		t.Fatalf("first Consume: %v", err)
	}
	if used.Status != status.InvitationUsed {
		t.Errorf("status = %q, want used", used.Status)
	}
	if used.UsedBy != guest.ID || used.UsedAt == nil {
		t.Errorf("consumption not recorded: %+v", used)
	}

	if _, err := store.Consume(ctx, inv.Code, guest.ID); err != invitationstore.ErrInvitationUsed {
		t.Errorf("second Consume err = %v, want ErrInvitationUsed", err)
	}
}

func TestConsume_BulkCountsAndCaps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invitationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	club := testutil.CreateClub(t, db, "Cap Club", owner.ID)
	inv := testutil.CreateBulkInvitation(t, db, club.ID, "member", 2, owner.ID)

	first, err := store.Consume(ctx, inv.Code, "user-a")
	if err != nil {
		t.Fatalf("first Consume: %v", err)
	}
	if first.UsedCount != 1 {
		t.Errorf("used count after first = %d, want 1", first.UsedCount)
	}

	second, err := store.Consume(ctx, inv.Code, "user-b")
	if err != nil {
		t.Fatalf("second Consume: %v", err)
	}
	if second.UsedCount != 2 {
		t.Errorf("used count after second = %d, want 2", second.UsedCount)
	}
	if second.Status != status.InvitationActive {
		t.Errorf("status = %q; bulk codes stay active at the cap", second.Status)
	}

	if _, err := store.Consume(ctx, inv.Code, "user-c"); err != invitationstore.ErrInvitationFull {
		t.Errorf("third Consume err = %v, want ErrInvitationFull", err)
	}
}

func TestValidate_LazyExpiry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invitationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	guest := testutil.CreateUser(t, db, "Guest")
	club := testutil.CreateClub(t, db, "Expiry Club", owner.ID)
	inv := testutil.CreateSingleInvitation(t, db, club.ID, guest.Email, "member", owner.ID)

	// Day 8 of a 7-day invitation.
	backdate(t, db, inv.Code, time.Now().UTC().Add(-24*time.Hour))

	if _, err := store.Validate(ctx, inv.Code); err != invitationstore.ErrInvitationExpired {
		t.Fatalf("Validate err = %v, want ErrInvitationExpired", err)
	}
	if _, err := store.Consume(ctx, inv.Code, guest.ID); err != invitationstore.ErrInvitationExpired {
		t.Fatalf("Consume err = %v, want ErrInvitationExpired", err)
	}

	// Expiry is judged lazily: the stored status must be untouched.
	stored, err := store.GetByCode(ctx, inv.Code)
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if stored.Status != status.InvitationPending {
		t.Errorf("stored status = %q; lazy expiry must not rewrite it", stored.Status)
	}
}

func TestValidate_UnknownCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invitationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Validate(ctx, "NOPENOPE"); err != invitationstore.ErrInvitationNotFound {
		t.Errorf("Validate err = %v, want ErrInvitationNotFound", err)
	}
}

func TestRevoke(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invitationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	club := testutil.CreateClub(t, db, "Revoke Club", owner.ID)
	inv := testutil.CreateBulkInvitation(t, db, club.ID, "member", 10, owner.ID)

	if err := store.Revoke(ctx, inv.Code); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := store.Validate(ctx, inv.Code); err != invitationstore.ErrInvitationExpired {
		t.Errorf("Validate after revoke err = %v, want ErrInvitationExpired", err)
	}

	// Revoking an already-revoked code is a no-op conflict.
	if err := store.Revoke(ctx, inv.Code); err != invitationstore.ErrInvitationNotFound {
		t.Errorf("second Revoke err = %v, want ErrInvitationNotFound", err)
	}
}

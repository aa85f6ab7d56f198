package join_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/features/join"
	clubstore "github.com/dalemusser/clubhub/internal/app/store/clubs"
	invitationstore "github.com/dalemusser/clubhub/internal/app/store/invitations"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newJoinRouter(db *mongo.Database) chi.Router {
	h := join.NewHandler(clubstore.New(db), memberstore.New(db), invitationstore.New(db), zap.NewNop())
	r := chi.NewRouter()
	r.Get("/join/{code}", h.ServePreview)
	r.Post("/join/{code}", h.HandleJoin)
	return r
}

func TestServePreview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newJoinRouter(db)

	owner := testutil.CreateUser(t, db, "Owner")
	club := testutil.CreateClub(t, db, "Preview Club", owner.ID)
	inv := testutil.CreateBulkInvitation(t, db, club.ID, "member", 10, owner.ID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/join/"+inv.Code, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got struct {
		ClubName string `json:"club_name"`
		Role     string `json:"role"`
		Type     string `json:"type"`
	}
	testutil.DecodeJSON(t, rec, &got)
	if got.ClubName != "Preview Club" || got.Role != "member" || got.Type != "bulk" {
		t.Errorf("preview = %+v", got)
	}
}

func TestServePreview_BadCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newJoinRouter(db)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/join/not-a-code", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleJoin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newJoinRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	joiner := testutil.CreateUser(t, db, "Joiner")
	club := testutil.CreateClub(t, db, "Join Club", owner.ID)
	inv := testutil.CreateBulkInvitation(t, db, club.ID, "coach", 10, owner.ID)

	req := testutil.AsUser(httptest.NewRequest(http.MethodPost, "/join/"+inv.Code, nil), joiner)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	m, err := memberstore.New(db).GetActive(ctx, club.ID, joiner.ID)
	if err != nil {
		t.Fatalf("membership missing after join: %v", err)
	}
	if m.Role != "coach" {
		t.Errorf("role = %q, want coach", m.Role)
	}
	if m.RegistrationToken != inv.Code {
		t.Errorf("registration token = %q, want %q", m.RegistrationToken, inv.Code)
	}

	used, err := invitationstore.New(db).GetByCode(ctx, inv.Code)
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if used.UsedCount != 1 {
		t.Errorf("used count = %d, want 1", used.UsedCount)
	}

	got, err := clubstore.New(db).GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Stats.TotalMembers != 2 || got.Stats.ActiveMembers != 2 {
		t.Errorf("stats = %+v, want 2/2 after join", got.Stats)
	}
}

func TestHandleJoin_AlreadyMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newJoinRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	club := testutil.CreateClub(t, db, "Repeat Club", owner.ID)
	inv := testutil.CreateBulkInvitation(t, db, club.ID, "member", 10, owner.ID)

	req := testutil.AsUser(httptest.NewRequest(http.MethodPost, "/join/"+inv.Code, nil), owner)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 for existing member", rec.Code)
	}

	// The rejected attempt must not spend a use.
	got, err := invitationstore.New(db).GetByCode(ctx, inv.Code)
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if got.UsedCount != 0 {
		t.Errorf("used count = %d, want 0", got.UsedCount)
	}
}

func TestHandleJoin_RequiresSignIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newJoinRouter(db)

	owner := testutil.CreateUser(t, db, "Owner")
	club := testutil.CreateClub(t, db, "Anon Club", owner.ID)
	inv := testutil.CreateBulkInvitation(t, db, club.ID, "member", 10, owner.ID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/join/"+inv.Code, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHandleJoin_MemberLimitReached(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newJoinRouter(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	joiner := testutil.CreateUser(t, db, "Joiner")
	club := testutil.CreateClub(t, db, "Full Club", owner.ID)
	inv := testutil.CreateBulkInvitation(t, db, club.ID, "member", 10, owner.ID)

	// Inflate the active counter to the subscription cap.
	delta := club.Subscription.MemberLimit - club.Stats.ActiveMembers
	if err := clubstore.New(db).IncStats(ctx, club.ID, delta, delta); err != nil {
		t.Fatalf("IncStats: %v", err)
	}

	req := testutil.AsUser(httptest.NewRequest(http.MethodPost, "/join/"+inv.Code, nil), joiner)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 at the member cap", rec.Code)
	}
}

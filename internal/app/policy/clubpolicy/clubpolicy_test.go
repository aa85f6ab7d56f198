package clubpolicy_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/testutil"
	"github.com/go-chi/chi/v5"
)

func TestCanUserPerformAction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	admin := testutil.CreateUser(t, db, "Admin")
	coach := testutil.CreateUser(t, db, "Coach")
	viewer := testutil.CreateUser(t, db, "Viewer")
	outsider := testutil.CreateUser(t, db, "Outsider")

	club := testutil.CreateClub(t, db, "Policy Club", owner.ID)
	testutil.CreateClubMember(t, db, club.ID, admin.ID, "admin", nil)
	testutil.CreateClubMember(t, db, club.ID, coach.ID, "coach", []string{"view", "manage_members"})
	testutil.CreateClubMember(t, db, club.ID, viewer.ID, "member", []string{"view"})

	tests := []struct {
		name   string
		uid    string
		action string
		want   bool
	}{
		{"non-member denied", outsider.ID, clubpolicy.ActionView, false},
		{"founder admin allowed", owner.ID, clubpolicy.ActionManageSettings, true},
		{"admin role bypasses permission list", admin.ID, clubpolicy.ActionManageMembers, true},
		{"explicit grant", coach.ID, clubpolicy.ActionManageMembers, true},
		{"coach lacks settings", coach.ID, clubpolicy.ActionManageSettings, false},
		{"member can view", viewer.ID, clubpolicy.ActionView, true},
		{"member cannot manage", viewer.ID, clubpolicy.ActionManageMembers, false},
	}
	for _, tt := range tests {
		got, err := clubpolicy.CanUserPerformAction(ctx, store, tt.uid, club.ID, tt.action)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: allowed = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCanUserPerformAction_Wildcard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	helper := testutil.CreateUser(t, db, "Helper")
	club := testutil.CreateClub(t, db, "Wildcard Club", owner.ID)
	testutil.CreateClubMember(t, db, club.ID, helper.ID, "member", []string{"all"})

	for _, action := range []string{
		clubpolicy.ActionView,
		clubpolicy.ActionManageMembers,
		clubpolicy.ActionManageSettings,
	} {
		ok, err := clubpolicy.CanUserPerformAction(ctx, store, helper.ID, club.ID, action)
		if err != nil {
			t.Fatalf("%s: %v", action, err)
		}
		if !ok {
			t.Errorf("wildcard member denied %s", action)
		}
	}
}

func TestRequireAction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)

	owner := testutil.CreateUser(t, db, "Owner")
	outsider := testutil.CreateUser(t, db, "Outsider")
	club := testutil.CreateClub(t, db, "Gate Club", owner.ID)

	r := chi.NewRouter()
	r.With(clubpolicy.RequireAction(store, clubpolicy.ActionManageMembers)).
		Get("/clubs/{clubID}/roster", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

	target := "/clubs/" + club.ID.Hex() + "/roster"

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.AsUser(httptest.NewRequest(http.MethodGet, target, nil), outsider))
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.AsUser(httptest.NewRequest(http.MethodGet, target, nil), owner))
	if rec.Code != http.StatusOK {
		t.Errorf("founder status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.AsUser(httptest.NewRequest(http.MethodGet, "/clubs/not-an-id/roster", nil), owner))
	if rec.Code != http.StatusNotFound {
		t.Errorf("bad id status = %d, want 404", rec.Code)
	}
}

func TestCanUserPerformAction_SuspendedDenied(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := testutil.CreateUser(t, db, "Owner")
	member := testutil.CreateUser(t, db, "Member")
	club := testutil.CreateClub(t, db, "Suspend Club", owner.ID)
	m := testutil.CreateClubMember(t, db, club.ID, member.ID, "member", []string{"all"})

	suspended := "suspended"
	if err := store.Update(ctx, m.ID, memberstore.MemberUpdate{Status: &suspended}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	ok, err := clubpolicy.CanUserPerformAction(ctx, store, member.ID, club.ID, clubpolicy.ActionView)
	if err != nil {
		t.Fatalf("CanUserPerformAction: %v", err)
	}
	if ok {
		t.Error("suspended member should be denied")
	}
}

package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"github.com/google/uuid"
)

func TestCreate_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		ID:    uuid.NewString(),
		Email: " Aisyah@Example.COM ",
		Profile: models.UserProfile{
			FirstName: "Nur",
			LastName:  "Aisyah",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if u.Email != "aisyah@example.com" {
		t.Errorf("email = %q, want normalized", u.Email)
	}
	if u.Profile.DisplayName != "Nur Aisyah" {
		t.Errorf("display name = %q", u.Profile.DisplayName)
	}
	if u.Auth.Role != "member" {
		t.Errorf("role = %q, want member", u.Auth.Role)
	}
	if u.Auth.LoginCount != 1 {
		t.Errorf("login count = %d, want 1", u.Auth.LoginCount)
	}
	if u.Preferences.Language != "en" || !u.Preferences.Notifications.Email {
		t.Errorf("preferences = %+v, want defaults", u.Preferences)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, models.User{ID: uuid.NewString(), Email: "dup@example.com"})
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err = store.Create(ctx, models.User{ID: uuid.NewString(), Email: "DUP@example.com"})
	if err != userstore.ErrDuplicateEmail {
		t.Fatalf("second Create err = %v, want ErrDuplicateEmail", err)
	}

	got, err := store.GetByEmail(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("lookup returned %q, want %q", got.ID, first.ID)
	}
}

func TestTouchLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.CreateUser(t, db, "Touch")
	if err := store.TouchLogin(ctx, u.ID); err != nil {
		t.Fatalf("TouchLogin: %v", err)
	}
	if err := store.TouchLogin(ctx, u.ID); err != nil {
		t.Fatalf("TouchLogin: %v", err)
	}

	got, err := store.GetByUID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByUID: %v", err)
	}
	if got.Auth.LoginCount != 3 {
		t.Errorf("login count = %d, want 3", got.Auth.LoginCount)
	}
	if got.Auth.LastLogin.Before(u.Auth.LastLogin) {
		t.Error("last_login went backwards")
	}
}

func TestUpsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := "google:12345"
	u, created, err := store.Upsert(ctx, uid, "social@example.com", "Social Tester")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Fatal("first Upsert should create")
	}
	if u.Profile.DisplayName != "Social Tester" {
		t.Errorf("display name = %q", u.Profile.DisplayName)
	}

	again, created, err := store.Upsert(ctx, uid, "social@example.com", "Renamed")
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if created {
		t.Error("second Upsert should not create")
	}
	if again.Profile.DisplayName != "Social Tester" {
		t.Errorf("existing document was rewritten: %q", again.Profile.DisplayName)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.CreateUser(t, db, "Before")
	err := store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{
		FirstName: "After",
		LastName:  "Change",
		Phone:     "012-345 6789",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err := store.GetByUID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByUID: %v", err)
	}
	if got.Profile.DisplayName != "After Change" {
		t.Errorf("display name = %q", got.Profile.DisplayName)
	}
	if got.Phone != "0123456789" {
		t.Errorf("phone = %q, want stripped", got.Phone)
	}
}

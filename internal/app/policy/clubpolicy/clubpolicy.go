// Package clubpolicy provides authorization policies for club-scoped
// actions.
//
// Authorization rules:
//   - A user with no active membership in the club can do nothing (checks
//     fail closed, including on lookup errors)
//   - Owners and admins can perform every action regardless of their
//     permission list
//   - Other members can perform an action if their permission list contains
//     the action name or the "all" wildcard
//   - Platform superadmins bypass club membership entirely
package clubpolicy

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Well-known action names checked by the HTTP surface.
const (
	ActionManageMembers  = "manage_members"
	ActionManageSettings = "manage_settings"
	ActionView           = "view"
)

// CanUserPerformAction reports whether userID may perform action in clubID.
// A missing membership and a lookup error both deny.
func CanUserPerformAction(ctx context.Context, store *memberstore.Store, userID string, clubID primitive.ObjectID, action string) (bool, error) {
	m, err := store.GetActive(ctx, clubID, userID)
	if err != nil {
		if err == memberstore.ErrMemberNotFound {
			return false, nil
		}
		return false, err
	}

	switch m.Role {
	case "owner", "admin":
		return true, nil
	}
	for _, p := range m.Permissions {
		if p == "all" || p == action {
			return true, nil
		}
	}
	return false, nil
}

// ClubID extracts and parses the {clubID} route parameter.
func ClubID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "clubID"))
	return id, err == nil
}

// RequireAction gates a club-scoped route on CanUserPerformAction.
// The route must carry a {clubID} parameter. Superadmins pass without a
// membership lookup.
func RequireAction(store *memberstore.Store, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, _, _, ok := authz.UserCtx(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			clubID, ok := ClubID(r)
			if !ok {
				httpjson.NotFound(w, "club not found")
				return
			}
			if authz.IsSuperAdmin(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			defer cancel()

			allowed, err := CanUserPerformAction(ctx, store, uid, clubID, action)
			if err != nil {
				httpjson.Error(w, http.StatusInternalServerError, "authorization check failed")
				return
			}
			if !allowed {
				httpjson.Error(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

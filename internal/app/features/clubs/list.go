// internal/app/features/clubs/list.go
package clubs

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// clubMembershipView pairs a club with the caller's role in it.
type clubMembershipView struct {
	Club models.Club `json:"club"`
	Role string      `json:"role"`
}

// ServeList returns the clubs the caller is an active member of, oldest
// first, with the caller's role in each.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	uid, _, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	memberships, err := h.Members.ListActiveByUser(ctx, uid)
	if err != nil {
		h.Log.Error("club list: membership query failed", zap.String("uid", uid), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "club list failed")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(memberships))
	roleByClub := make(map[primitive.ObjectID]string, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.ClubID)
		roleByClub[m.ClubID] = m.Role
	}

	clubs, err := h.Clubs.GetByIDs(ctx, ids)
	if err != nil {
		h.Log.Error("club list: club query failed", zap.String("uid", uid), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "club list failed")
		return
	}

	views := make([]clubMembershipView, 0, len(clubs))
	for _, c := range clubs {
		views = append(views, clubMembershipView{Club: c, Role: roleByClub[c.ID]})
	}
	httpjson.Write(w, http.StatusOK, views)
}

// internal/app/features/members/remove.go
package members

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleRemove soft-deletes a membership and decrements the club counters.
// Owners cannot be removed; a membership that is not active cannot be
// removed again (which also keeps the counters from double-decrementing).
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	clubID, ok := clubpolicy.ClubID(r)
	if !ok {
		httpjson.NotFound(w, "club not found")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "memberID"))
	if err != nil {
		httpjson.NotFound(w, "member not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	target, err := h.Members.GetByID(ctx, memberID)
	if err != nil {
		if err == memberstore.ErrMemberNotFound {
			httpjson.NotFound(w, "member not found")
			return
		}
		h.Log.Error("member remove: load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "member removal failed")
		return
	}
	if target.ClubID != clubID {
		httpjson.NotFound(w, "member not found")
		return
	}
	if target.Role == "owner" && !authz.IsSuperAdmin(r) {
		httpjson.Error(w, http.StatusForbidden, "the owner cannot be removed")
		return
	}
	if target.Status != status.MemberActive {
		httpjson.Error(w, http.StatusConflict, "member is not active")
		return
	}

	if err := h.Members.Remove(ctx, memberID); err != nil {
		if err == memberstore.ErrMemberNotFound {
			// Someone else removed it between the read and the write.
			httpjson.Error(w, http.StatusConflict, "member is not active")
			return
		}
		h.Log.Error("member remove failed", zap.String("member_id", memberID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "member removal failed")
		return
	}

	if err := h.Clubs.IncStats(ctx, clubID, -1, -1); err != nil {
		h.Log.Warn("member remove: stats decrement failed",
			zap.String("club_id", clubID.Hex()), zap.Error(err))
	}

	h.Log.Info("member removed",
		zap.String("club_id", clubID.Hex()),
		zap.String("member_id", memberID.Hex()),
		zap.String("user_id", target.UserID))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "removed"})
}

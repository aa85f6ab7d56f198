// internal/app/features/members/update.go
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

type memberUpdateInput struct {
	Role        *string  `json:"role"`
	Permissions []string `json:"permissions"`
	Status      *string  `json:"status"`
}

// HandleUpdate changes a member's role, permissions, or status. Only an
// owner may touch owner-role memberships or promote to owner. Suspending
// and reactivating a member adjusts the active counter.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, _, _, _ := authz.UserCtx(r)
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

	var in memberUpdateInput
	if !httpjson.Decode(w, r, &in) {
		return
	}
	if in.Role != nil {
		switch *in.Role {
		case "owner", "admin", "coach", "member":
		default:
			httpjson.Error(w, http.StatusBadRequest, "unknown role")
			return
		}
	}
	if in.Status != nil && !status.IsValidMember(*in.Status) {
		httpjson.Error(w, http.StatusBadRequest, "unknown status")
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
		h.Log.Error("member update: load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "member update failed")
		return
	}
	if target.ClubID != clubID {
		httpjson.NotFound(w, "member not found")
		return
	}

	// Owner-role changes are reserved to owners.
	touchesOwner := target.Role == "owner" || (in.Role != nil && *in.Role == "owner")
	if touchesOwner && !authz.IsSuperAdmin(r) {
		caller, err := h.Members.GetActive(ctx, clubID, uid)
		if err != nil || caller.Role != "owner" {
			httpjson.Error(w, http.StatusForbidden, "only the owner can change owner memberships")
			return
		}
	}

	if err := h.Members.Update(ctx, memberID, memberstore.MemberUpdate{
		Role:        in.Role,
		Permissions: in.Permissions,
		Status:      in.Status,
	}); err != nil {
		if err == memberstore.ErrMemberNotFound {
			httpjson.NotFound(w, "member not found")
			return
		}
		h.Log.Error("member update failed", zap.String("member_id", memberID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "member update failed")
		return
	}

	// Mirror status flips into the active counter.
	if in.Status != nil && *in.Status != target.Status {
		delta := 0
		if target.Status == status.MemberActive && *in.Status != status.MemberActive {
			delta = -1
		} else if target.Status != status.MemberActive && *in.Status == status.MemberActive {
			delta = 1
		}
		if delta != 0 {
			if err := h.Clubs.IncStats(ctx, clubID, 0, delta); err != nil {
				h.Log.Warn("member update: stats adjust failed",
					zap.String("club_id", clubID.Hex()), zap.Error(err))
			}
		}
	}

	updated, err := h.Members.GetByID(ctx, memberID)
	if err != nil {
		h.Log.Error("member update: reload failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "member update failed")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

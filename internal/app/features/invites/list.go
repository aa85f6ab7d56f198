// internal/app/features/invites/list.go
package invites

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/store/invitations"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeList returns a club's invitations, newest first.
// ?status=pending|active|used|expired filters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	clubID, ok := clubpolicy.ClubID(r)
	if !ok {
		httpjson.NotFound(w, "club not found")
		return
	}

	filter := r.URL.Query().Get("status")
	switch filter {
	case "", status.InvitationPending, status.InvitationActive,
		status.InvitationUsed, status.InvitationExpired:
	default:
		httpjson.Error(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	invs, err := h.Invitations.ListByClub(ctx, clubID, filter)
	if err != nil {
		h.Log.Error("invitation list failed", zap.String("club_id", clubID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "invitation list failed")
		return
	}

	views := make([]invitationView, 0, len(invs))
	for i := range invs {
		views = append(views, invitationView{
			Invitation: invs[i],
			ShareLink:  ShareLink(h.BaseURL, &invs[i]),
		})
	}
	httpjson.Write(w, http.StatusOK, views)
}

// HandleRevoke expires a pending or active invitation so it can no longer
// be consumed.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	clubID, ok := clubpolicy.ClubID(r)
	if !ok {
		httpjson.NotFound(w, "club not found")
		return
	}
	code := chi.URLParam(r, "code")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// The code must belong to this club; a manager of one club cannot
	// revoke another club's invitations.
	inv, err := h.Invitations.GetByCode(ctx, code)
	if err != nil {
		if err == invitationstore.ErrInvitationNotFound {
			httpjson.NotFound(w, "invitation not found")
			return
		}
		h.Log.Error("invitation revoke: load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "invitation revoke failed")
		return
	}
	if inv.ClubID != clubID {
		httpjson.NotFound(w, "invitation not found")
		return
	}

	if err := h.Invitations.Revoke(ctx, code); err != nil {
		if err == invitationstore.ErrInvitationNotFound {
			httpjson.Error(w, http.StatusConflict, "invitation is already used or expired")
			return
		}
		h.Log.Error("invitation revoke failed", zap.String("code", code), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "invitation revoke failed")
		return
	}

	h.Log.Info("invitation revoked",
		zap.String("club_id", clubID.Hex()),
		zap.String("code", code))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "revoked"})
}

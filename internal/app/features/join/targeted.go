// internal/app/features/join/targeted.go
package join

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/invitecode"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// targetedParams extracts and checks the code and clubId query parameters
// of the targeted flow.
func (h *Handler) targetedParams(w http.ResponseWriter, r *http.Request) (code string, clubID primitive.ObjectID, ok bool) {
	code = r.URL.Query().Get("code")
	if !invitecode.Valid(code) {
		httpjson.NotFound(w, "invitation code not found")
		return "", primitive.NilObjectID, false
	}
	clubID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("clubId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "clubId is required")
		return "", primitive.NilObjectID, false
	}
	return code, clubID, true
}

// ServeTargetedPreview handles GET /clubs/join?code=...&clubId=...: shows
// the signed-in recipient what they were invited to.
func (h *Handler) ServeTargetedPreview(w http.ResponseWriter, r *http.Request) {
	code, clubID, ok := h.targetedParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inv, err := h.Invitations.Validate(ctx, code)
	if err != nil {
		h.writeInvitationError(w, err)
		return
	}
	if inv.ClubID != clubID {
		httpjson.NotFound(w, "invitation code not found")
		return
	}
	h.servePreview(ctx, w, code)
}

// HandleTargetedJoin handles POST /clubs/join?code=...&clubId=...: the
// invited user accepts. The invitation must be addressed to the caller's
// email and must belong to the club in the link.
func (h *Handler) HandleTargetedJoin(w http.ResponseWriter, r *http.Request) {
	uid, email, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	code, clubID, ok := h.targetedParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	inv, err := h.Invitations.Validate(ctx, code)
	if err != nil {
		h.writeInvitationError(w, err)
		return
	}
	if inv.ClubID != clubID {
		httpjson.NotFound(w, "invitation code not found")
		return
	}
	if !emailMatches(inv, email) {
		httpjson.Error(w, http.StatusForbidden, "this invitation was issued to a different email address")
		return
	}
	h.complete(ctx, w, inv, uid)
}

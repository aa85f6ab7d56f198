// internal/app/features/join/bulk.go
package join

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/invitecode"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServePreview handles GET /join/{code}: an unauthenticated look at what
// the shared link offers, so the page can show the club before asking the
// visitor to sign in.
func (h *Handler) ServePreview(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !invitecode.Valid(code) {
		httpjson.NotFound(w, "invitation code not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	h.servePreview(ctx, w, code)
}

// HandleJoin handles POST /join/{code}: the signed-in caller redeems a
// shared link and becomes a member.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	uid, _, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	code := chi.URLParam(r, "code")
	if !invitecode.Valid(code) {
		httpjson.NotFound(w, "invitation code not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	inv, err := h.Invitations.Validate(ctx, code)
	if err != nil {
		h.writeInvitationError(w, err)
		return
	}
	h.complete(ctx, w, inv, uid)
}

// internal/app/features/clubs/view.go
package clubs

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/store/clubs"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeView returns one club document. The route gate has already verified
// the caller can view it.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	clubID, ok := clubpolicy.ClubID(r)
	if !ok {
		httpjson.NotFound(w, "club not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	club, err := h.Clubs.GetByID(ctx, clubID)
	if err != nil {
		if err == clubstore.ErrClubNotFound {
			httpjson.NotFound(w, "club not found")
			return
		}
		h.Log.Error("club view failed", zap.String("club_id", clubID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "club lookup failed")
		return
	}
	httpjson.Write(w, http.StatusOK, club)
}

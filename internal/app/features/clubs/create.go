// internal/app/features/clubs/create.go
package clubs

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

type createClubInput struct {
	Name        string   `json:"name"`
	Sports      []string `json:"sports"`
	Description string   `json:"description"`
}

// HandleCreate registers a new club on the trial plan. The caller becomes
// the founding admin.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, _, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in createClubInput
	if !httpjson.Decode(w, r, &in) {
		return
	}
	in.Name = normalize.Name(htmlsanitize.Plain(in.Name))
	if in.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "club name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	club, err := h.Clubs.Create(ctx, models.Club{
		Name:   in.Name,
		Sports: in.Sports,
		Profile: models.ClubProfile{
			Description: htmlsanitize.Plain(in.Description),
		},
	}, uid)
	if err != nil {
		h.Log.Error("club create failed",
			zap.String("uid", uid),
			zap.String("name", in.Name),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "club creation failed")
		return
	}

	h.Log.Info("club created",
		zap.String("club_id", club.ID.Hex()),
		zap.String("slug", club.NameSlug),
		zap.String("created_by", uid))
	httpjson.Write(w, http.StatusCreated, club)
}

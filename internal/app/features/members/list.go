// internal/app/features/members/list.go
package members

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// rosterEntry is a membership joined with directory display fields.
type rosterEntry struct {
	Member      models.ClubMember `json:"member"`
	DisplayName string            `json:"display_name,omitempty"`
	Email       string            `json:"email,omitempty"`
}

// ServeList returns the club roster. ?status=active|inactive|suspended
// filters; the default is active members only.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	clubID, ok := clubpolicy.ClubID(r)
	if !ok {
		httpjson.NotFound(w, "club not found")
		return
	}

	filter := r.URL.Query().Get("status")
	switch filter {
	case "":
		filter = status.MemberActive
	case "all":
		filter = ""
	case status.MemberActive, status.MemberInactive, status.MemberSuspended:
	default:
		httpjson.Error(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Members.ListByClub(ctx, clubID, filter)
	if err != nil {
		h.Log.Error("roster list failed", zap.String("club_id", clubID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "roster list failed")
		return
	}

	entries := make([]rosterEntry, 0, len(members))
	for _, m := range members {
		entry := rosterEntry{Member: m}
		user, err := h.Users.GetByUID(ctx, m.UserID)
		if err == nil {
			entry.DisplayName = user.Profile.DisplayName
			entry.Email = user.Email
		} else if err != mongo.ErrNoDocuments {
			h.Log.Warn("roster: directory lookup failed",
				zap.String("uid", m.UserID), zap.Error(err))
		}
		entries = append(entries, entry)
	}
	httpjson.Write(w, http.StatusOK, entries)
}

// internal/app/features/invites/create.go
package invites

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

// invitationView is an invitation plus its ready-to-share link.
type invitationView struct {
	Invitation models.Invitation `json:"invitation"`
	ShareLink  string            `json:"share_link"`
}

func validInviteRole(role string) bool {
	switch role {
	case "admin", "coach", "member":
		return true
	}
	// Ownership transfers happen through member management, never through
	// an invitation.
	return false
}

type createSingleInput struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// HandleCreateSingle issues a targeted invitation for one email address.
func (h *Handler) HandleCreateSingle(w http.ResponseWriter, r *http.Request) {
	uid, _, _, _ := authz.UserCtx(r)
	clubID, ok := clubpolicy.ClubID(r)
	if !ok {
		httpjson.NotFound(w, "club not found")
		return
	}

	var in createSingleInput
	if !httpjson.Decode(w, r, &in) {
		return
	}
	in.Email = normalize.Email(in.Email)
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		httpjson.Error(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if in.Role == "" {
		in.Role = "member"
	}
	if !validInviteRole(in.Role) {
		httpjson.Error(w, http.StatusBadRequest, "role must be admin, coach, or member")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, err := h.Invitations.CreateSingle(ctx, clubID, in.Email, in.Role,
		htmlsanitize.Plain(in.Message), uid)
	if err != nil {
		h.Log.Error("single invitation create failed",
			zap.String("club_id", clubID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "invitation creation failed")
		return
	}

	h.Log.Info("single invitation created",
		zap.String("club_id", clubID.Hex()),
		zap.String("code", inv.Code),
		zap.String("created_by", uid))
	httpjson.Write(w, http.StatusCreated, invitationView{
		Invitation: inv,
		ShareLink:  ShareLink(h.BaseURL, &inv),
	})
}

type createBulkInput struct {
	Role        string `json:"role"`
	MemberLimit int    `json:"member_limit"`
}

// HandleCreateBulk issues a shared-link invitation with a usage cap.
func (h *Handler) HandleCreateBulk(w http.ResponseWriter, r *http.Request) {
	uid, _, _, _ := authz.UserCtx(r)
	clubID, ok := clubpolicy.ClubID(r)
	if !ok {
		httpjson.NotFound(w, "club not found")
		return
	}

	var in createBulkInput
	if !httpjson.Decode(w, r, &in) {
		return
	}
	if in.Role == "" {
		in.Role = "member"
	}
	if !validInviteRole(in.Role) {
		httpjson.Error(w, http.StatusBadRequest, "role must be admin, coach, or member")
		return
	}
	if in.MemberLimit < 0 {
		httpjson.Error(w, http.StatusBadRequest, "member_limit cannot be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, err := h.Invitations.CreateBulk(ctx, clubID, in.Role, in.MemberLimit, uid)
	if err != nil {
		h.Log.Error("bulk invitation create failed",
			zap.String("club_id", clubID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "invitation creation failed")
		return
	}

	h.Log.Info("bulk invitation created",
		zap.String("club_id", clubID.Hex()),
		zap.String("code", inv.Code),
		zap.Int("member_limit", inv.MemberLimit),
		zap.String("created_by", uid))
	httpjson.Write(w, http.StatusCreated, invitationView{
		Invitation: inv,
		ShareLink:  ShareLink(h.BaseURL, &inv),
	})
}

// internal/app/features/join/handler.go

// Package join handles invitation consumption: the public /join/{code}
// shared link and the targeted /clubs/join flow.
package join

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/store/clubs"
	"github.com/dalemusser/clubhub/internal/app/store/invitations"
	"github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for joining clubs through
// invitation codes.
type Handler struct {
	Log         *zap.Logger
	Clubs       *clubstore.Store
	Members     *memberstore.Store
	Invitations *invitationstore.Store
}

func NewHandler(clubs *clubstore.Store, members *memberstore.Store, invitations *invitationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:         logger,
		Clubs:       clubs,
		Members:     members,
		Invitations: invitations,
	}
}

// permissionsForRole derives the permission list granted on consumption:
// admins get the wildcard, everyone else starts view-only.
func permissionsForRole(role string) []string {
	if role == "admin" {
		return []string{"all"}
	}
	return []string{"view"}
}

// writeInvitationError maps the validation sentinels onto HTTP statuses.
func (h *Handler) writeInvitationError(w http.ResponseWriter, err error) {
	switch err {
	case invitationstore.ErrInvitationNotFound:
		httpjson.NotFound(w, "invitation code not found")
	case invitationstore.ErrInvitationUsed:
		httpjson.Error(w, http.StatusGone, err.Error())
	case invitationstore.ErrInvitationExpired:
		httpjson.Error(w, http.StatusGone, err.Error())
	case invitationstore.ErrInvitationFull:
		httpjson.Error(w, http.StatusConflict, err.Error())
	default:
		h.Log.Error("invitation check failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "invitation check failed")
	}
}

// joinResult is the response for a successful join.
type joinResult struct {
	Club   models.Club       `json:"club"`
	Member models.ClubMember `json:"member"`
}

// complete runs the shared tail of both join flows: club checks, atomic
// consumption, membership insert, and counter bump. The invitation has
// already been validated.
func (h *Handler) complete(ctx context.Context, w http.ResponseWriter, inv *models.Invitation, uid string) {
	club, err := h.Clubs.GetByID(ctx, inv.ClubID)
	if err != nil {
		if err == clubstore.ErrClubNotFound {
			httpjson.NotFound(w, "club not found")
			return
		}
		h.Log.Error("join: club load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "join failed")
		return
	}
	if club.Status == status.ClubSuspended {
		httpjson.Error(w, http.StatusForbidden, "club is suspended")
		return
	}
	if club.Subscription.MemberLimit > 0 && club.Stats.ActiveMembers >= club.Subscription.MemberLimit {
		httpjson.Error(w, http.StatusConflict, "club has reached its member limit")
		return
	}

	if _, err := h.Members.GetActive(ctx, club.ID, uid); err == nil {
		httpjson.Error(w, http.StatusConflict, "you are already a member of this club")
		return
	} else if err != memberstore.ErrMemberNotFound {
		h.Log.Error("join: membership check failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "join failed")
		return
	}

	consumed, err := h.Invitations.Consume(ctx, inv.Code, uid)
	if err != nil {
		h.writeInvitationError(w, err)
		return
	}

	member := models.ClubMember{
		UserID:      uid,
		ClubID:      club.ID,
		Role:        consumed.Role,
		Permissions: permissionsForRole(consumed.Role),
	}
	if consumed.IsBulk() {
		member.RegistrationToken = consumed.Code
	}
	member, err = h.Members.Add(ctx, member)
	if err != nil {
		if err == memberstore.ErrAlreadyMember {
			// The code was consumed but a concurrent join already created
			// the membership. The spent use is not returned.
			httpjson.Error(w, http.StatusConflict, "you are already a member of this club")
			return
		}
		h.Log.Error("join: membership insert failed",
			zap.String("club_id", club.ID.Hex()),
			zap.String("code", consumed.Code),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "join failed")
		return
	}

	if err := h.Clubs.IncStats(ctx, club.ID, 1, 1); err != nil {
		h.Log.Warn("join: stats increment failed",
			zap.String("club_id", club.ID.Hex()), zap.Error(err))
	}

	h.Log.Info("member joined via invitation",
		zap.String("club_id", club.ID.Hex()),
		zap.String("user_id", uid),
		zap.String("code", consumed.Code),
		zap.String("role", member.Role))
	httpjson.Write(w, http.StatusCreated, joinResult{Club: *club, Member: member})
}

// preview is the response for the pre-join GET endpoints.
type preview struct {
	ClubName  string `json:"club_name"`
	ClubSlug  string `json:"club_slug"`
	Role      string `json:"role"`
	Type      string `json:"type"`
	ExpiresAt string `json:"expires_at"`
}

func (h *Handler) servePreview(ctx context.Context, w http.ResponseWriter, code string) {
	inv, err := h.Invitations.Validate(ctx, code)
	if err != nil {
		h.writeInvitationError(w, err)
		return
	}
	club, err := h.Clubs.GetByID(ctx, inv.ClubID)
	if err != nil {
		if err == clubstore.ErrClubNotFound {
			httpjson.NotFound(w, "club not found")
			return
		}
		h.Log.Error("join preview: club load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "invitation check failed")
		return
	}

	httpjson.Write(w, http.StatusOK, preview{
		ClubName:  club.Name,
		ClubSlug:  club.NameSlug,
		Role:      inv.Role,
		Type:      inv.Type,
		ExpiresAt: inv.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// emailMatches reports whether a targeted invitation is addressed to the
// caller. Bulk invitations carry no email and always match.
func emailMatches(inv *models.Invitation, callerEmail string) bool {
	if inv.Email == "" {
		return true
	}
	return inv.Email == normalize.Email(callerEmail)
}

// internal/app/features/account/profile.go
package account

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeMe returns the signed-in user's directory document.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByUID(ctx, u.UID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "user not found")
			return
		}
		h.Log.Error("me: lookup failed", zap.String("uid", u.UID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}

type profileInput struct {
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	DisplayName          string     `json:"display_name"`
	Phone                string     `json:"phone"`
	DateOfBirth          *time.Time `json:"date_of_birth"`
	Gender               string     `json:"gender"`
	Nationality          string     `json:"nationality"`
	IdentificationType   string     `json:"identification_type"`
	IdentificationNumber string     `json:"identification_number"`
}

// HandleUpdateProfile merge-patches the caller's profile block.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in profileInput
	if !httpjson.Decode(w, r, &in) {
		return
	}
	if in.Phone != "" && !normalize.ValidMalaysianPhone(in.Phone) {
		httpjson.Error(w, http.StatusBadRequest, "phone number is not a valid Malaysian mobile number")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Users.UpdateProfile(ctx, u.UID, userstore.ProfileUpdate{
		FirstName:            htmlsanitize.Plain(in.FirstName),
		LastName:             htmlsanitize.Plain(in.LastName),
		DisplayName:          htmlsanitize.Plain(in.DisplayName),
		Phone:                in.Phone,
		DateOfBirth:          in.DateOfBirth,
		Gender:               in.Gender,
		Nationality:          in.Nationality,
		IdentificationType:   in.IdentificationType,
		IdentificationNumber: in.IdentificationNumber,
	})
	if err != nil {
		h.Log.Error("profile update failed", zap.String("uid", u.UID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "profile update failed")
		return
	}

	user, err := h.Users.GetByUID(ctx, u.UID)
	if err != nil {
		h.Log.Error("profile reload failed", zap.String("uid", u.UID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "profile update failed")
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}

// HandleUpdatePreferences replaces the caller's preferences block.
func (h *Handler) HandleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in models.UserPreferences
	if !httpjson.Decode(w, r, &in) {
		return
	}
	if in.Language == "" {
		in.Language = "en"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.UpdatePreferences(ctx, u.UID, in); err != nil {
		h.Log.Error("preferences update failed", zap.String("uid", u.UID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "preferences update failed")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "preferences_updated"})
}

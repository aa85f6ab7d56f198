// internal/app/features/account/email.go
package account

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/identity"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleChangeEmail updates the sign-in email at the identity store and
// mirrors it into the directory. Requires re-authentication.
func (h *Handler) HandleChangeEmail(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in struct {
		Password string `json:"password"`
		NewEmail string `json:"new_email"`
	}
	if !httpjson.Decode(w, r, &in) {
		return
	}
	in.NewEmail = normalize.Email(in.NewEmail)
	if in.NewEmail == "" || !strings.Contains(in.NewEmail, "@") {
		httpjson.Error(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Identity.Reauthenticate(ctx, u.UID, in.Password); err != nil {
		if err == identity.ErrInvalidCredentials {
			httpjson.Error(w, http.StatusForbidden, "password is incorrect")
			return
		}
		h.Log.Error("change-email: reauth failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "email change failed")
		return
	}

	if err := h.Identity.ChangeEmail(ctx, u.UID, in.NewEmail); err != nil {
		if err == identity.ErrEmailTaken {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("change-email: identity update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "email change failed")
		return
	}

	if err := h.Users.UpdateEmail(ctx, u.UID, in.NewEmail); err != nil {
		// Identity and directory are now out of step; log loudly.
		h.Log.Error("change-email: directory update failed",
			zap.String("uid", u.UID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "email change failed")
		return
	}

	// Refresh the session so the cookie carries the new email.
	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		UID:   u.UID,
		Email: in.NewEmail,
		Role:  u.Role,
	}); err != nil {
		h.Log.Warn("change-email: session refresh failed", zap.Error(err))
	}

	h.Log.Info("email changed", zap.String("uid", u.UID))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "email_changed"})
}

// internal/app/features/account/password.go
package account

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/identity"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleForgotPassword starts the reset flow. Always answers 202 so the
// endpoint cannot be used to probe which emails have accounts.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if !httpjson.Decode(w, r, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Identity.StartPasswordReset(ctx, in.Email); err != nil {
		h.Log.Error("forgot-password failed", zap.Error(err))
	}
	httpjson.Write(w, http.StatusAccepted, map[string]string{"status": "reset_requested"})
}

// HandleResetPassword redeems a reset token.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if !httpjson.Decode(w, r, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Identity.CompletePasswordReset(ctx, in.Token, in.NewPassword); err != nil {
		switch err {
		case identity.ErrResetInvalid:
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		case identity.ErrWeakPassword:
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("reset-password failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "password reset failed")
		}
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "password_reset"})
}

// HandleChangePassword replaces the password for the signed-in user after
// re-authentication with the current one.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if !httpjson.Decode(w, r, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Identity.Reauthenticate(ctx, u.UID, in.CurrentPassword); err != nil {
		if err == identity.ErrInvalidCredentials {
			httpjson.Error(w, http.StatusForbidden, "current password is incorrect")
			return
		}
		h.Log.Error("change-password: reauth failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "password change failed")
		return
	}

	if err := h.Identity.ChangePassword(ctx, u.UID, in.NewPassword); err != nil {
		if err == identity.ErrWeakPassword {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("change-password failed", zap.String("uid", u.UID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "password change failed")
		return
	}

	h.Log.Info("password changed", zap.String("uid", u.UID))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "password_changed"})
}

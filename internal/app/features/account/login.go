// internal/app/features/account/login.go
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

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials, touches the login counters, and writes
// the session cookie.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if !httpjson.Decode(w, r, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acct, err := h.Identity.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		if err == identity.ErrInvalidCredentials {
			httpjson.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Log.Error("login: authenticate failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	user, err := h.Users.GetByUID(ctx, acct.UID)
	if err != nil {
		h.Log.Error("login: directory lookup failed",
			zap.String("uid", acct.UID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	if err := h.Users.TouchLogin(ctx, user.ID); err != nil {
		// Counters are best-effort; the sign-in still succeeds.
		h.Log.Warn("login: touch failed", zap.String("uid", user.ID), zap.Error(err))
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		UID:   user.ID,
		Email: user.Email,
		Role:  user.Auth.Role,
	}); err != nil {
		h.Log.Error("login: session save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	h.Log.Info("user logged in", zap.String("uid", user.ID))
	httpjson.Write(w, http.StatusOK, user)
}

// HandleLogout clears the session.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("logout: session clear failed", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

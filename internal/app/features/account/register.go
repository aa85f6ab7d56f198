// internal/app/features/account/register.go
package account

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/identity"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

type registerInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// HandleRegister creates an identity, the matching directory document, and
// signs the new user in.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if !httpjson.Decode(w, r, &in) {
		return
	}
	in.Email = normalize.Email(in.Email)
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		httpjson.Error(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acct, err := h.Identity.Register(ctx, in.Email, in.Password)
	if err != nil {
		switch err {
		case identity.ErrEmailTaken:
			httpjson.Error(w, http.StatusConflict, err.Error())
		case identity.ErrWeakPassword:
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("register: identity create failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	user, err := h.Users.Create(ctx, models.User{
		ID:    acct.UID,
		Email: acct.Email,
		Phone: in.Phone,
		Profile: models.UserProfile{
			FirstName: htmlsanitize.Plain(in.FirstName),
			LastName:  htmlsanitize.Plain(in.LastName),
		},
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("register: directory create failed",
			zap.String("uid", acct.UID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		UID:   user.ID,
		Email: user.Email,
		Role:  user.Auth.Role,
	}); err != nil {
		h.Log.Error("register: session save failed", zap.Error(err))
	}

	h.Log.Info("user registered", zap.String("uid", user.ID))
	httpjson.Write(w, http.StatusCreated, user)
}

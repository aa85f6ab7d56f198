// internal/app/features/account/handler.go
package account

import (
	"github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/identity"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the account feature:
// registration, sign-in, credential changes, profile, and preferences.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Identity   identity.Provider
	Users      *userstore.Store
}

func NewHandler(provider identity.Provider, users *userstore.Store, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Identity:   provider,
		Users:      users,
	}
}

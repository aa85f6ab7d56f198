// internal/app/features/invites/handler.go
package invites

import (
	"github.com/dalemusser/clubhub/internal/app/store/invitations"
	"github.com/dalemusser/clubhub/internal/app/store/members"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for issuing and managing
// invitations. BaseURL is the public origin used to build share links.
type Handler struct {
	Log         *zap.Logger
	Invitations *invitationstore.Store
	Members     *memberstore.Store
	BaseURL     string
}

func NewHandler(invitations *invitationstore.Store, members *memberstore.Store, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:         logger,
		Invitations: invitations,
		Members:     members,
		BaseURL:     baseURL,
	}
}

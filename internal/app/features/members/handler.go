// internal/app/features/members/handler.go
package members

import (
	"github.com/dalemusser/clubhub/internal/app/store/clubs"
	"github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for club roster management.
type Handler struct {
	Log     *zap.Logger
	Clubs   *clubstore.Store
	Members *memberstore.Store
	Users   *userstore.Store
}

func NewHandler(clubs *clubstore.Store, members *memberstore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:     logger,
		Clubs:   clubs,
		Members: members,
		Users:   users,
	}
}

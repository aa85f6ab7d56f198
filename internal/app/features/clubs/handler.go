// internal/app/features/clubs/handler.go
package clubs

import (
	"github.com/dalemusser/clubhub/internal/app/store/clubs"
	"github.com/dalemusser/clubhub/internal/app/store/members"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the clubs feature:
// registration, listing, viewing, and settings.
type Handler struct {
	Log     *zap.Logger
	Clubs   *clubstore.Store
	Members *memberstore.Store
}

func NewHandler(clubs *clubstore.Store, members *memberstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:     logger,
		Clubs:   clubs,
		Members: members,
	}
}

// internal/app/features/invites/routes.go
package invites

import (
	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/go-chi/chi/v5"
)

// Routes builds the invitation management router, mounted under
// /clubs/{clubID}/invitations. The surrounding router has enforced
// sign-in; every operation here needs the manage_members action.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(clubpolicy.RequireAction(h.Members, clubpolicy.ActionManageMembers))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreateSingle)
		pr.Post("/bulk", h.HandleCreateBulk)
		pr.Post("/{code}/revoke", h.HandleRevoke)
	})

	return r
}

// internal/app/features/members/routes.go
package members

import (
	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/go-chi/chi/v5"
)

// Routes builds the roster router. It is mounted under
// /clubs/{clubID}/members, so the club parameter is already in scope; the
// surrounding router has enforced sign-in.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.With(clubpolicy.RequireAction(h.Members, clubpolicy.ActionView)).
		Get("/", h.ServeList)

	r.Group(func(pr chi.Router) {
		pr.Use(clubpolicy.RequireAction(h.Members, clubpolicy.ActionManageMembers))

		pr.Put("/{memberID}", h.HandleUpdate)
		pr.Delete("/{memberID}", h.HandleRemove)
	})

	return r
}

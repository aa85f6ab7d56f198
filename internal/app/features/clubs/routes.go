// internal/app/features/clubs/routes.go
package clubs

import (
	"github.com/dalemusser/clubhub/internal/app/features/join"
	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes builds the whole /clubs tree. The club-scoped member and
// invitation routers are mounted inside the {clubID} subtree so all three
// share the parameter, and the static /clubs/join path is registered first
// so chi matches it ahead of {clubID}.
func Routes(h *Handler, sm *auth.SessionManager, joinH *join.Handler, membersRouter, invitesRouter chi.Router) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// Targeted invitation acceptance
		pr.Get("/join", joinH.ServeTargetedPreview)
		pr.Post("/join", joinH.HandleTargetedJoin)

		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.ServeList)

		pr.Route("/{clubID}", func(cr chi.Router) {
			cr.With(clubpolicy.RequireAction(h.Members, clubpolicy.ActionView)).
				Get("/", h.ServeView)
			cr.With(clubpolicy.RequireAction(h.Members, clubpolicy.ActionManageSettings)).
				Put("/settings", h.HandleUpdateSettings)

			cr.Mount("/members", membersRouter)
			cr.Mount("/invitations", invitesRouter)
		})
	})

	return r
}

// internal/app/features/account/routes.go
package account

import (
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Public
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/password/forgot", h.HandleForgotPassword)
	r.Post("/password/reset", h.HandleResetPassword)

	// Signed in
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/logout", h.HandleLogout)
		pr.Get("/me", h.ServeMe)
		pr.Put("/profile", h.HandleUpdateProfile)
		pr.Put("/preferences", h.HandleUpdatePreferences)
		pr.Post("/password/change", h.HandleChangePassword)
		pr.Post("/email/change", h.HandleChangeEmail)
	})

	return r
}

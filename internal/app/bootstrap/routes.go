// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountfeature "github.com/dalemusser/clubhub/internal/app/features/account"
	authgooglefeature "github.com/dalemusser/clubhub/internal/app/features/authgoogle"
	clubsfeature "github.com/dalemusser/clubhub/internal/app/features/clubs"
	healthfeature "github.com/dalemusser/clubhub/internal/app/features/health"
	invitesfeature "github.com/dalemusser/clubhub/internal/app/features/invites"
	joinfeature "github.com/dalemusser/clubhub/internal/app/features/join"
	membersfeature "github.com/dalemusser/clubhub/internal/app/features/members"
	clubstore "github.com/dalemusser/clubhub/internal/app/store/clubs"
	credentialstore "github.com/dalemusser/clubhub/internal/app/store/credentials"
	invitationstore "github.com/dalemusser/clubhub/internal/app/store/invitations"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/identity"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app. WAFFLE calls this after configuration, DB connections, schema
// setup, and Startup have completed.
//
// The club-scoped member and invitation routers are mounted inside the
// /clubs route tree so all three share the {clubID} parameter; the static
// /clubs/join path is registered before the {clubID} subtree so chi
// matches it first.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	users := userstore.New(db)
	clubs := clubstore.New(db)
	members := memberstore.New(db)
	invitations := invitationstore.New(db)
	creds := credentialstore.New(db)
	states := oauthstate.New(db)

	provider := identity.NewMongoProvider(creds, nil, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Get("/health", healthHandler.Serve)

	// Account: registration, sign-in, credentials, profile
	accountHandler := accountfeature.NewHandler(provider, users, sessionMgr, logger)
	r.Mount("/account", accountfeature.Routes(accountHandler, sessionMgr))

	// Google OAuth sign-in
	googleHandler := authgooglefeature.NewHandler(users, states, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Get("/auth/google", googleHandler.ServeLogin)
	r.Get("/auth/google/callback", googleHandler.ServeCallback)

	// Invitation consumption: shared links are public to preview, joining
	// needs a session.
	joinHandler := joinfeature.NewHandler(clubs, members, invitations, logger)
	r.Get("/join/{code}", joinHandler.ServePreview)
	r.Group(func(pr chi.Router) {
		pr.Use(sessionMgr.RequireSignedIn)
		pr.Post("/join/{code}", joinHandler.HandleJoin)
	})

	// Clubs, rosters, and invitation management
	clubsHandler := clubsfeature.NewHandler(clubs, members, logger)
	membersHandler := membersfeature.NewHandler(clubs, members, users, logger)
	invitesHandler := invitesfeature.NewHandler(invitations, members, appCfg.BaseURL, logger)

	r.Mount("/clubs", clubsfeature.Routes(clubsHandler, sessionMgr, joinHandler,
		membersfeature.Routes(membersHandler), invitesfeature.Routes(invitesHandler)))

	return r, nil
}

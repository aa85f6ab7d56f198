// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeout overrides applied from environment", zap.Int("count", n))
	}

	if appCfg.SuperAdminEmail != "" {
		if err := promoteSuperAdmin(ctx, appCfg, deps, logger); err != nil {
			return err
		}
	}
	return nil
}

// promoteSuperAdmin raises the configured account to the platform role.
// The account must already exist; registration is not done from config.
func promoteSuperAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	email := normalize.Email(appCfg.SuperAdminEmail)
	res, err := deps.MongoDatabase.Collection("users").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"auth.role": "superadmin"}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		logger.Warn("superadmin email not found in directory; register the account first",
			zap.String("email", email))
		return nil
	}
	logger.Info("superadmin ensured", zap.String("email", email))
	return nil
}

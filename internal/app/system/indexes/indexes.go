// internal/app/system/indexes/indexes.go

// Package indexes creates every MongoDB index the application relies on.
// It runs once at startup (EnsureSchema) and in test setup, and is
// idempotent: CreateMany is a no-op for indexes that already exist.
package indexes

import (
	"context"
	"fmt"

	"github.com/dalemusser/clubhub/internal/app/store/oauthstate"
	"github.com/dalemusser/clubhub/internal/app/system/status"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates the indexes for every collection. Uniqueness
// constraints declared here are load-bearing: the stores assume the
// database rejects duplicate slugs, emails, and concurrent duplicate
// memberships.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if err := ensureUsers(ctx, db); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := ensureCredentials(ctx, db); err != nil {
		return fmt.Errorf("credentials indexes: %w", err)
	}
	if err := ensureClubs(ctx, db); err != nil {
		return fmt.Errorf("clubs indexes: %w", err)
	}
	if err := ensureClubMembers(ctx, db); err != nil {
		return fmt.Errorf("club_members indexes: %w", err)
	}
	if err := ensureInvitations(ctx, db); err != nil {
		return fmt.Errorf("invitations indexes: %w", err)
	}
	if err := oauthstate.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("oauth_states indexes: %w", err)
	}

	logger.Info("database indexes ensured")
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_users_email"),
		},
		{
			Keys:    bson.D{{Key: "profile.display_name_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_display_name_ci"),
		},
	})
	return err
}

func ensureCredentials(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("credentials").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_credentials_email"),
		},
		{
			Keys: bson.D{{Key: "reset_token", Value: 1}},
			Options: options.Index().SetName("idx_credentials_reset_token").
				SetPartialFilterExpression(bson.M{"reset_token": bson.M{"$exists": true}}),
		},
	})
	return err
}

func ensureClubs(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("clubs").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// The arbiter for the slug dedup loop in the club store.
		{
			Keys:    bson.D{{Key: "name_slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_clubs_name_slug"),
		},
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("idx_clubs_created_by"),
		},
	})
	return err
}

func ensureClubMembers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("club_members").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// At most one ACTIVE membership per (club, user); inactive history
		// documents are exempt so former members can rejoin.
		{
			Keys: bson.D{{Key: "club_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_members_active_unique").
				SetPartialFilterExpression(bson.M{"status": status.MemberActive}),
		},
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_members_club_status"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_members_user_status"),
		},
	})
	return err
}

func ensureInvitations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("invitations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_invitations_club_status"),
		},
		// Expiry is judged lazily; this index only serves reporting queries.
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_invitations_expires_at"),
		},
	})
	return err
}

// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/ponsectors/ponsectors/internal/app/store"
	commentstore "github.com/ponsectors/ponsectors/internal/app/store/comments"
	fundingstore "github.com/ponsectors/ponsectors/internal/app/store/funding"
	insightstore "github.com/ponsectors/ponsectors/internal/app/store/insights"
	"github.com/ponsectors/ponsectors/internal/app/store/memstore"
	notificationstore "github.com/ponsectors/ponsectors/internal/app/store/notifications"
	"github.com/ponsectors/ponsectors/internal/app/store/oauthstate"
	projectstore "github.com/ponsectors/ponsectors/internal/app/store/projects"
	userstore "github.com/ponsectors/ponsectors/internal/app/store/users"
	"github.com/ponsectors/ponsectors/internal/app/system/indexes"
)

// ConnectDB builds the storage backend. The memory backend comes up
// seeded with demo data and needs no external services; the mongo
// backend connects and wires the per-collection stores.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	if appCfg.StoreBackend == "memory" {
		logger.Info("using in-memory storage backend with demo data")
		return DBDeps{
			Stores: memstore.NewSeeded().Stores(),
			States: oauthstate.NewMemory(),
		}, nil
	}

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, err
	}

	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Stores: store.Stores{
			Users:         userstore.New(db),
			Projects:      projectstore.New(db),
			Insights:      insightstore.New(db),
			Funding:       fundingstore.New(db),
			Comments:      commentstore.New(db),
			Notifications: notificationstore.New(db),
		},
		States: oauthstate.New(db),
	}, nil
}

// EnsureSchema creates the indexes the queries depend on. No-op on the
// memory backend.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	return indexes.EnsureAll(ctx, deps.MongoDatabase)
}

// Command seed loads the demo users into PostgreSQL and the demo catalog into
// MongoDB. A store whose connection setting is empty is skipped.
package main

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/infra/db"
	"storefront/internal/infra/mongostore"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/seed"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Metrics) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx = zctx.Base(ctx, lg)

		if err := seedAccounts(ctx, lg, cfg); err != nil {
			return err
		}
		if err := seedCatalog(ctx, lg, cfg); err != nil {
			return err
		}
		lg.Info("Seeding completed")
		return nil
	})
}

func seedAccounts(ctx context.Context, lg *zap.Logger, cfg *config.Config) error {
	if cfg.Account.DatabaseURL == "" {
		lg.Warn("Database URL not set, skipping users")
		return nil
	}
	gdb, err := db.Connect(ctx, cfg.Account.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "connect db")
	}
	defer func() { _ = db.Close(gdb) }()

	if err := db.Migrate(ctx, gdb); err != nil {
		return err
	}
	return seed.Accounts(ctx, infraRepo.NewUserGormRepository(gdb))
}

func seedCatalog(ctx context.Context, lg *zap.Logger, cfg *config.Config) error {
	client, err := db.ConnectMongo(ctx, cfg.Product.MongoURI)
	if err != nil {
		return errors.Wrap(err, "connect mongo")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			lg.Warn("Mongo disconnect", zap.Error(err))
		}
	}()

	database := client.Database(cfg.Product.Database)
	if err := mongostore.EnsureIndexes(ctx, database); err != nil {
		return err
	}
	return seed.Catalog(ctx, seed.CatalogRepos{
		Products:   mongostore.NewProductStore(database),
		Categories: mongostore.NewCategoryStore(database),
		Coupons:    mongostore.NewCouponStore(database),
	}, time.Now())
}

// Command product-service serves products, categories and coupons backed by
// MongoDB.
package main

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/identity"
	"storefront/internal/infra/db"
	"storefront/internal/infra/mongostore"
	"storefront/internal/server"
	"storefront/internal/usecase"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Metrics) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.ValidateAuth(); err != nil {
			return err
		}
		return run(zctx.Base(ctx, lg), lg, cfg)
	})
}

func run(ctx context.Context, lg *zap.Logger, cfg *config.Config) error {
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

	uc := server.CatalogUsecases{
		Products:   usecase.NewProductUsecase(mongostore.NewProductStore(database)),
		Categories: usecase.NewCategoryUsecase(mongostore.NewCategoryStore(database)),
		Coupons:    usecase.NewCouponUsecase(mongostore.NewCouponStore(database)),
	}

	e := server.New(lg, "product-service")
	server.RegisterProductRoutes(e, identity.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Insecure), uc)

	return server.Serve(ctx, lg, e, config.ListenAddr(cfg.Product.Addr), cfg.Graceful.ShutdownTimeout)
}

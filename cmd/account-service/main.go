// Command account-service serves identity sync, users, cart, orders and
// payments backed by PostgreSQL.
package main

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/identity"
	"storefront/internal/infra/db"
	"storefront/internal/infra/events"
	infraRepo "storefront/internal/infra/repository"
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
	//DB接続
	gdb, err := db.Connect(ctx, cfg.Account.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "connect db")
	}
	defer func() { _ = db.Close(gdb) }()

	if err := db.Migrate(ctx, gdb); err != nil {
		return err
	}

	publisher := events.New(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix)
	defer func() { _ = publisher.Close() }()
	if len(cfg.Kafka.Brokers) == 0 {
		lg.Info("Kafka brokers not configured, domain events disabled")
	}

	//Repository（GORM実装）
	users := infraRepo.NewUserGormRepository(gdb)
	cartItems := infraRepo.NewCartItemGormRepository(gdb)
	orders := infraRepo.NewOrderGormRepository(gdb)
	auditLogs := infraRepo.NewAuditLogGormRepository(gdb)
	tx := infraRepo.NewTxManagerGorm(gdb)

	//Usecase
	authUC := usecase.NewAuthUsecase(users)
	uc := server.AccountUsecases{
		Auth:        authUC,
		Cart:        usecase.NewCartUsecase(cartItems),
		Orders:      usecase.NewOrderUsecase(orders, tx, publisher),
		AdminOrders: usecase.NewAdminOrderUsecase(orders, tx, publisher),
		Payments: usecase.NewPaymentUsecase(tx, publisher, usecase.PaymentConfig{
			Currency: cfg.Payment.Currency,
			FeeRate:  decimal.NewFromFloat(cfg.Payment.FeeRate),
		}),
		AuditLogs: usecase.NewAuditLogUsecase(auditLogs),
	}

	if cfg.Auth.Insecure {
		lg.Warn("Identity tokens are decoded without signature verification")
	}
	verifier := identity.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Insecure)

	e := server.New(lg, "account-service")
	server.RegisterAccountRoutes(e, verifier, uc)

	return server.Serve(ctx, lg, e, config.ListenAddr(cfg.Account.Addr), cfg.Graceful.ShutdownTimeout)
}

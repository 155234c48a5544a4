// Command api-gateway is the single public entry point. It forwards /api/*
// to the account and product services.
package main

import (
	"context"

	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/gateway"
	"storefront/internal/server"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Metrics) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		gw, err := gateway.New(gateway.Config{
			AccountServiceURL: cfg.Gateway.AccountServiceURL,
			ProductServiceURL: cfg.Gateway.ProductServiceURL,
			Timeout:           cfg.Gateway.UpstreamTimeout,
			TracerProvider:    m.TracerProvider(),
		})
		if err != nil {
			return err
		}

		e := server.New(lg, "api-gateway")
		gw.RegisterRoutes(e)

		lg.Info("Upstreams",
			zap.String("account", cfg.Gateway.AccountServiceURL),
			zap.String("product", cfg.Gateway.ProductServiceURL),
		)
		return server.Serve(zctx.Base(ctx, lg), lg, e, config.ListenAddr(cfg.Gateway.Addr), cfg.Graceful.ShutdownTimeout)
	})
}

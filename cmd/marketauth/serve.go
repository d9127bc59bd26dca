package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/layer-3/marketauth/adapters/deriver"
	"github.com/layer-3/marketauth/adapters/events"
	"github.com/layer-3/marketauth/adapters/tokenizer"
	"github.com/layer-3/marketauth/config"
	"github.com/layer-3/marketauth/logger"
	"github.com/layer-3/marketauth/service"
	transport "github.com/layer-3/marketauth/transport/http"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sign-in HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := config.UnmarshalConfig(configPath)
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.Log)
		if err != nil {
			return errors.Wrap(err, "failed on set up logger")
		}
		defer log.Sync() //nolint:errcheck

		return serve(ctx, cfg, log)
	},
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	networkID := deriver.MainnetGlobalID
	if cfg.Auth.Network == "testnet" {
		networkID = deriver.TestnetGlobalID
	}

	authCfg := cfg.AuthConfig()
	opts := []service.Option{service.WithLogger(log)}
	routerCfg := transport.RouterConfig{
		Logger:              log,
		AllowOrigins:        cfg.CORS.AllowOrigins,
		LoginRateLimit:      cfg.RateLimit.LoginPerSecond,
		TrustedProxyHeaders: cfg.RateLimit.TrustedHeaders,
	}

	if cfg.Events.Enabled {
		eventOpts, closeFn, check, err := eventOptions(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeFn()
		opts = append(opts, eventOpts...)
		routerCfg.HealthCheck = check
	}

	authService := service.NewAuthService(
		authCfg,
		deriver.NewTonDeriver(networkID),
		tokenizer.NewJWTTokenizer(authCfg.SessionSecret),
		opts...,
	)

	router, err := transport.SetupRouter(authService, routerCfg)
	if err != nil {
		return errors.Wrap(err, "failed on set up router")
	}

	srv := &http.Server{Addr: cfg.API.Port, Handler: router}
	serveErr := make(chan error, 1)
	go func() {
		log.Info("marketauth listening", zap.String("port", cfg.API.Port), zap.String("origin", authCfg.OriginURL))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "failed on serve http")
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// eventOptions connects the redis stream publisher for login events.
func eventOptions(ctx context.Context, cfg *config.Config, log *zap.Logger) ([]service.Option, func(), transport.HealthCheck, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed on parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, nil, errors.Wrap(err, "failed on connect redis")
	}

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: client,
	}, events.NewZapLoggerAdapter(log))
	if err != nil {
		_ = client.Close()
		return nil, nil, nil, errors.Wrap(err, "failed on create redis publisher")
	}

	closeFn := func() {
		if err := publisher.Close(); err != nil {
			log.Warn("failed to close publisher", zap.Error(err))
		}
		if err := client.Close(); err != nil {
			log.Warn("failed to close redis", zap.Error(err))
		}
	}
	check := func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}

	return []service.Option{
		service.WithEventPublisher(events.NewWatermillPublisher(publisher, cfg.Events.Topic)),
	}, closeFn, check, nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/spendflow/spend-console/internal/api"
	"github.com/spendflow/spend-console/internal/api/handler"
	"github.com/spendflow/spend-console/internal/app/session"
	"github.com/spendflow/spend-console/internal/core/ports"
	"github.com/spendflow/spend-console/internal/infrastructure/backend"
	"github.com/spendflow/spend-console/internal/infrastructure/config"
	"github.com/spendflow/spend-console/internal/infrastructure/db/redis"
	"github.com/spendflow/spend-console/internal/infrastructure/identity"
	"github.com/spendflow/spend-console/internal/infrastructure/media"
	"github.com/spendflow/spend-console/pkg/logger"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "spend-console",
	})

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	store := session.NewStore(rdb, cfg.Session.TTL)

	provider := identity.New(identity.Config{
		Domain:       cfg.Identity.Domain,
		ClientID:     cfg.Identity.ClientID,
		ClientSecret: cfg.Identity.ClientSecret,
		Audience:     cfg.Identity.Audience,
		RolesClaim:   cfg.Identity.RolesClaim,
		Logger:       log,
	})

	uploader := media.New(media.Config{
		UploadURL: cfg.Media.UploadURL,
		Preset:    cfg.Media.Preset,
	})

	httpClient := &http.Client{Timeout: cfg.Backend.Timeout}
	backends := func(tokens ports.TokenSource) ports.Backend {
		return backend.New(backend.Config{
			BaseURL:    cfg.Backend.BaseURL,
			Tokens:     tokens,
			HTTPClient: httpClient,
			Logger:     log,
		})
	}

	router, err := api.NewRouter(api.Deps{
		Store:    store,
		Redis:    rdb,
		Provider: provider,
		Backends: backends,
		Uploader: uploader,
		Cookie: handler.AuthCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			MaxAge: cfg.Session.TTL,
		},
		CallbackURL: cfg.Identity.CallbackURL,
		Poll: handler.PollIntervals{
			Notifications: cfg.Poll.Notifications,
			UnreadBadge:   cfg.Poll.UnreadBadge,
		},
		Log: log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("console listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

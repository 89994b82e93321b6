package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davixiao/MeetTheDev/internal/api"
	"github.com/davixiao/MeetTheDev/internal/api/handler"
	"github.com/davixiao/MeetTheDev/internal/core/service"
	mongodb "github.com/davixiao/MeetTheDev/internal/infrastructure/db/mongo"
	redisdb "github.com/davixiao/MeetTheDev/internal/infrastructure/db/redis"
	"github.com/davixiao/MeetTheDev/internal/infrastructure/github"
	"github.com/davixiao/MeetTheDev/internal/infrastructure/queue"
	"github.com/davixiao/MeetTheDev/internal/pkg/config"
	"github.com/davixiao/MeetTheDev/pkg/logger"
)

// @title                       DevConnector API
// @version                     1.0
// @description                 Developer profiles, discussion posts and GitHub repository lookups.
// @BasePath                    /api
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        x-auth-token
func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	profiles := mongodb.NewProfileRepository(db)
	posts := mongodb.NewPostRepository(db)
	accounts := mongodb.NewAccountRepository(mongoClient, db, cfg.Mongo.Transactions, logger.Component(log, "accounts"))

	// --- GitHub lookups and cache warming ---
	githubClient := github.NewClient(github.Config{
		BaseURL: cfg.Github.APIURL,
		Token:   cfg.Github.Token,
		Timeout: cfg.Github.Timeout,
	})
	if cfg.Github.Token == "" {
		log.Warn().Msg("GITHUB_TOKEN not set, GitHub lookups are anonymous")
	}
	repoService := service.NewRepoService(githubClient, redisdb.NewRepoCache(rdb, cfg.Github.TTL), logger.Component(log, "github"))
	warmer := queue.NewDispatcher(cfg.Github.Workers, repoService, logger.Component(log, "warmer"))
	warmer.Start(ctx)

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(users, tokens, logger.Component(log, "auth"))
	profileService := service.NewProfileService(profiles, users, accounts, repoService, warmer, logger.Component(log, "profile"))
	postService := service.NewPostService(posts, users, logger.Component(log, "posts"))

	if _, err := profileService.WarmGithubCache(ctx); err != nil {
		log.Warn().Err(err).Msg("github cache warm-up skipped")
	}

	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Profiles: profileService,
		Posts:    postService,
		Verifier: tokens,
		Limiter:  redisdb.NewSlidingWindow(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		Checks: map[string]handler.Check{
			"mongodb": mongodb.Probe(mongoClient),
			"redis":   redisdb.Probe(rdb),
		},
		Logger: logger.Component(log, "http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}

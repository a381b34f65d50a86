package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kko-site/backoffice/internal/api"
	"github.com/kko-site/backoffice/internal/core/domain"
	"github.com/kko-site/backoffice/internal/core/ports"
	"github.com/kko-site/backoffice/internal/core/service"
	"github.com/kko-site/backoffice/internal/infrastructure/config"
	redisdb "github.com/kko-site/backoffice/internal/infrastructure/db/redis"
	"github.com/kko-site/backoffice/internal/infrastructure/db/sqlite"
	"github.com/kko-site/backoffice/internal/infrastructure/queue"
	"github.com/kko-site/backoffice/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// No logger yet; this is the one place stderr is used directly.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open sqlite")
	}
	defer db.Close()

	// Redis backs the visit dedup window; the service runs without it.
	var dedup ports.VisitDeduper
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, visit dedup disabled")
		rdb = nil
	} else {
		defer rdb.Close()
		dedup = redisdb.NewVisitDeduper(rdb)
	}

	userRepo := sqlite.NewUserRepository(db)
	visitRepo := sqlite.NewVisitRepository(db)

	clock := service.SystemClock{}
	hasher := service.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, clock)
	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	gate := service.NewGate(tokens, userRepo, log)
	visitService := service.NewVisitService(visitRepo, dedup, clock, log)

	if err := seedAdmin(ctx, cfg.Admin, userRepo, authService, log); err != nil {
		log.Fatal().Err(err).Msg("seed admin user")
	}

	dispatcher := queue.NewDispatcher(cfg.VisitWorkers, visitService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.RouterConfig{
		DB:           db,
		Redis:        rdb,
		AuthService:  authService,
		VisitService: visitService,
		Gate:         gate,
		VisitQueue:   dispatcher,
		StaticDir:    cfg.StaticDir,
		MediaDir:     cfg.MediaDir,
		Logger:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}

// seedAdmin creates the bootstrap admin account on first start. It is a no-op
// when the account already exists or when no admin password is configured.
func seedAdmin(ctx context.Context, seed config.SeedAdmin, store ports.CredentialStore, auth ports.AuthService, log zerolog.Logger) error {
	if seed.Password == "" {
		log.Warn().Msg("no admin password configured, skipping admin seed")
		return nil
	}

	_, err := store.GetByUsername(ctx, seed.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if _, err := auth.CreateUser(ctx, ports.CreateUserInput{
		Username: seed.Username,
		Email:    seed.Email,
		Password: seed.Password,
		Role:     domain.RoleAdmin,
	}); err != nil {
		return err
	}

	log.Info().Str("username", seed.Username).Msg("admin user created")
	return nil
}

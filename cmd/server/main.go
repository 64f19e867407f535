package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/guestbook-api/internal/api"
	"github.com/guestbook-api/internal/auth"
	"github.com/guestbook-api/internal/config"
	"github.com/guestbook-api/internal/database"
	"github.com/guestbook-api/internal/metrics"
	"github.com/guestbook-api/internal/notify"
	"github.com/guestbook-api/internal/ratelimit"
	"github.com/guestbook-api/internal/repository"
	"github.com/guestbook-api/internal/service"
	"github.com/guestbook-api/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting Guestbook API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = logger.NewWithWriter(os.Stdout, cfg.Log.Level, cfg.Log.Format == "pretty")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	m := metrics.New()

	// Background workers share this context and stop on shutdown
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	writeLimiter, generalLimiter, closeLimiters := newLimiters(bgCtx, cfg, m, log)
	defer closeLimiters()

	// Notifications
	var notifier notify.Notifier = notify.Nop
	if cfg.Notify.Enabled() {
		notifier = notify.NewSMTPNotifier(cfg.Notify)
		log.Info().Str("smtp_host", cfg.Notify.SMTPHost).Msg("Email notifications enabled")
	} else {
		log.Info().Msg("Email notifications disabled, SMTP not configured")
	}
	dispatcher := notify.NewDispatcher(notifier,
		notify.WithRate(cfg.Notify.RatePerSec, cfg.Notify.Burst),
		notify.WithTimeout(cfg.Notify.Timeout),
		notify.WithMetrics(m),
		notify.WithLogger(log),
	)

	issuer := auth.NewIssuer(cfg.Auth)
	if !issuer.Enabled() {
		log.Warn().Msg("ADMIN_KEY not set, admin login disabled")
	}

	// Initialize repositories and services
	repos := repository.New(db)
	services := service.NewServices(repos, dispatcher, m, log)

	// Initialize router
	router := api.NewRouter(&api.Dependencies{
		Services:       services,
		Issuer:         issuer,
		WriteLimiter:   writeLimiter,
		GeneralLimiter: generalLimiter,
		Metrics:        m,
		DB:             db,
	}, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop the limiter sweeper, then drain pending notifications
	stopBackground()
	if err := dispatcher.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Pending notifications abandoned")
	}

	log.Info().Msg("Server exited gracefully")
}

// newLimiters builds the write and general limiters for the configured backend.
// The general limiter is nil when disabled.
func newLimiters(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log zerolog.Logger) (ratelimit.Checker, ratelimit.Checker, func()) {
	rl := cfg.RateLimit

	if rl.Backend == config.BackendRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, rate limiting will fail open until it recovers")
		}

		write := ratelimit.NewRedis(rdb, rl.WriteMax, rl.WriteWindow,
			ratelimit.WithKeyPrefix(cfg.Redis.KeyPrefix+":write"),
			ratelimit.WithRedisLogger(log),
		)
		var general ratelimit.Checker
		if rl.GeneralEnabled {
			general = ratelimit.NewRedis(rdb, rl.GeneralMax, rl.GeneralWindow,
				ratelimit.WithKeyPrefix(cfg.Redis.KeyPrefix+":general"),
				ratelimit.WithRedisLogger(log),
			)
		}

		log.Info().Str("backend", rl.Backend).Str("addr", cfg.Redis.Addr).Msg("Rate limiting configured")
		return write, general, func() { rdb.Close() }
	}

	write := ratelimit.New(rl.WriteMax, rl.WriteWindow)
	go write.Run(ctx, rl.SweepInterval)
	m.RegisterGauge("guestbook_rate_limit_write_entries", "Identifiers tracked by the write limiter",
		func() float64 { return float64(write.Len()) })

	var general ratelimit.Checker
	if rl.GeneralEnabled {
		g := ratelimit.New(rl.GeneralMax, rl.GeneralWindow)
		go g.Run(ctx, rl.SweepInterval)
		m.RegisterGauge("guestbook_rate_limit_general_entries", "Identifiers tracked by the general limiter",
			func() float64 { return float64(g.Len()) })
		general = g
	}

	log.Info().
		Str("backend", rl.Backend).
		Int("write_max", rl.WriteMax).
		Dur("write_window", rl.WriteWindow).
		Bool("general_enabled", rl.GeneralEnabled).
		Msg("Rate limiting configured")
	return write, general, func() {}
}

// cmd/notifierd/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"admissions-notifier/internal/api"
	awsclient "admissions-notifier/internal/common/aws"
	"admissions-notifier/internal/common/config"
	"admissions-notifier/internal/common/database"
	"admissions-notifier/internal/common/logger"
	"admissions-notifier/internal/common/observability"
	"admissions-notifier/internal/notifier/channel"
	"admissions-notifier/internal/notifier/factory"
	"admissions-notifier/internal/notifier/fanout"
	"admissions-notifier/internal/notifier/store"
	"admissions-notifier/internal/notifier/template"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	configPath := flag.String("config", "", "path to a config file, overrides the default search paths")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting admissions notifier...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Template registry ---
	registry := template.NewRegistry()
	if cfg.Notifications.TemplateOverrides != "" {
		if err := registry.LoadOverrides(cfg.Notifications.TemplateOverrides); err != nil {
			zapLog.Fatal("template overrides failed to load", zap.Error(err))
		}
		zapLog.Info("Template overrides loaded",
			zap.String("path", cfg.Notifications.TemplateOverrides))
	}
	if err := registry.Validate(); err != nil {
		zapLog.Fatal("template registry invalid", zap.Error(err))
	}

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	pgStore := store.NewPostgresStore(pg.DB)
	if err := pgStore.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	var notificationStore store.Store = pgStore
	if ttl := cfg.Notifications.UnreadCacheTTL; ttl > 0 {
		notificationStore = store.NewCachedStore(pgStore, redisClient.Client, time.Duration(ttl)*time.Millisecond, log)
		zapLog.Info("Unread count cache enabled", zap.Int("ttlMs", ttl))
	}

	// --- Init AWS clients ---
	sesClient, err := awsclient.NewSESClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("ses client init failed", zap.Error(err))
	}
	snsClient, err := awsclient.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("sns client init failed", zap.Error(err))
	}
	zapLog.Info("AWS clients initialized", zap.String("region", cfg.Notifications.AWS.Region))

	// --- Assemble the engine ---
	notificationFactory := factory.New(registry, &factory.Config{
		OrganizationName:  cfg.Notifications.Organization.Name,
		OrganizationPhone: cfg.Notifications.Organization.Phone,
		DefaultLocale:     cfg.Notifications.DefaultLocale,
	})

	channels := channel.NewSet(
		channel.NewInAppDispatcher(),
		channel.NewEmailDispatcher(&channel.EmailConfig{
			Enabled:   cfg.Notifications.Email.Enabled,
			FromEmail: cfg.Notifications.Email.FromEmail,
		}, sesClient, log),
		channel.NewSMSDispatcher(&channel.SMSConfig{
			Enabled:  cfg.Notifications.SMS.Enabled,
			SenderID: cfg.Notifications.SMS.SenderID,
		}, snsClient, log),
	)

	dispatcher := fanout.New(notificationFactory, channels, notificationStore, log, obs)

	// --- HTTP server ---
	server := api.NewServer(&api.Options{
		Address: cfg.Server.Address,
		FanOut:  dispatcher,
		Store:   notificationStore,
		Logger:  log,
	})

	go func() {
		if err := server.Start(); err != nil {
			zapLog.Warn("http server stopped", zap.Error(err))
		}
	}()
	zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}

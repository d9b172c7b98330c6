package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cradoe/crm/internal/cache"
	"github.com/cradoe/crm/internal/config"
	"github.com/cradoe/crm/internal/env"
	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/events"
	"github.com/cradoe/crm/internal/file"
	"github.com/cradoe/crm/internal/helper"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/smtp"
	"github.com/cradoe/crm/internal/stream"
	"github.com/cradoe/crm/internal/token"
	"github.com/joho/godotenv"
)

// Essential services and resources are exposed to the application
// this makes it possible for methods to have access to these items and when they need them
type Application struct {
	Config       config.Config
	DB           repository.Database
	Logger       *slog.Logger
	Mailer       *smtp.Mailer
	WG           sync.WaitGroup
	errorHandler *errHandler.ErrorRepository
	Helper       *helper.HelperRepository
	Kafka        *stream.KafkaStream
	Cache        *cache.Cache
	Tokens       *token.Manager
	Events       *events.Publisher
	FileUploader *file.FileUploader
}

func loadConfig() config.Config {
	var cfg config.Config

	// config values are loaded from the .env file
	// Default values are provided for these items and these should strictly be values for development mode only
	// make sure no production-level value is exposed as default value here
	cfg.BaseURL = env.GetString("BASE_URL", "http://localhost:9000")
	cfg.HttpPort = env.GetInt("HTTP_PORT", 9000)
	cfg.ApiPrefix = env.GetString("API_PREFIX", "api")

	cfg.Db.Dsn = env.GetString("DB_DSN", "crm:crm@localhost:5432/crm_db?sslmode=disable")
	cfg.Db.Automigrate = env.GetBool("DB_AUTOMIGRATE", true)
	cfg.Db.PoolMax = env.GetInt("DB_POOL_MAX", 10)

	cfg.Jwt.SecretKey = env.GetString("JWT_SECRET", "k4x9pq2m7wz3vn8rt5yb6hc1jd0fgs2e")
	cfg.Jwt.Expiry = env.GetDuration("JWT_EXPIRATION_TIME", time.Hour)

	cfg.Login.MaxAttempts = env.GetInt("LOGIN_MAX_ATTEMPTS", 5)
	cfg.Login.LockWindow = env.GetDuration("LOGIN_LOCK_WINDOW", 15*time.Minute)

	// server errors won't be sent via email if the NOTIFICATIONS_EMAIL wasn't set in the .env file
	cfg.Notifications.Email = env.GetString("NOTIFICATIONS_EMAIL", "")

	cfg.Smtp.Host = env.GetString("SMTP_HOST", "example.smtp.host")
	cfg.Smtp.Port = env.GetInt("SMTP_PORT", 25)
	cfg.Smtp.Username = env.GetString("SMTP_USERNAME", "example_username")
	cfg.Smtp.Password = env.GetString("SMTP_PASSWORD", "pa55word")
	cfg.Smtp.From = env.GetString("SMTP_FROM", "CRM <no_reply@example.org>")

	cfg.RedisServer = env.GetString("REDIS_SERVER", "localhost:6379")
	cfg.KafkaServers = env.GetString("KAFKA_SERVERS", "localhost:9092")

	cfg.FileUploader.ApiKey = env.GetString("CLOUDINARY_API_KEY", "")
	cfg.FileUploader.CloudName = env.GetString("CLOUDINARY_CLOUD_NAME", "")
	cfg.FileUploader.ApiSecret = env.GetString("CLOUDINARY_API_SECRET", "")

	cfg.Seed.Enabled = env.GetBool("SEED", false)
	cfg.Seed.AdminEmail = env.GetString("SEED_ADMIN_EMAIL", "admin@crm.local")
	cfg.Seed.AdminPassword = env.GetString("SEED_ADMIN_PASSWORD", "admin12345")

	return cfg
}

func NewApplication(logger *slog.Logger) (*Application, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", "error", err)
	}

	cfg := loadConfig()

	db, err := repository.New(cfg.Db.Dsn, cfg.Db.Automigrate, cfg.Db.PoolMax)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	mailer, err := smtp.NewMailer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.From)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	app := &Application{
		Config:       cfg,
		DB:           db,
		Logger:       logger,
		Mailer:       mailer,
		Kafka:        stream.New(cfg.KafkaServers, logger),
		Cache:        cache.New(cfg.RedisServer, 0),
		Tokens:       token.New(cfg.Jwt.SecretKey, cfg.BaseURL, cfg.Jwt.Expiry),
		FileUploader: file.New(cfg.FileUploader.CloudName, cfg.FileUploader.ApiKey, cfg.FileUploader.ApiSecret),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := app.Cache.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, login attempts will not be limited", "addr", cfg.RedisServer, "error", err)
	}

	app.errorHandler = errHandler.New(cfg.Notifications.Email, cfg.BaseURL, mailer, logger)
	app.Helper = helper.New(cfg.BaseURL, &app.WG, app.errorHandler)
	app.Events = events.NewPublisher(app.Kafka, app.Helper)

	return app, nil
}

// Close releases every external connection. Queued events are flushed first.
func (app *Application) Close() {
	app.Kafka.Close()

	if err := app.Cache.Close(); err != nil {
		app.Logger.Error("closing redis", "error", err)
	}
	if err := app.DB.Close(); err != nil {
		app.Logger.Error("closing database", "error", err)
	}
}

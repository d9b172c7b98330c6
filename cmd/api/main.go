package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/cradoe/crm/internal/app"
	seeders "github.com/cradoe/crm/internal/seeder"
	"github.com/cradoe/crm/internal/service"
	"github.com/cradoe/crm/internal/version"
	"github.com/cradoe/crm/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	showVersion := flag.Bool("version", false, "display version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	application, err := app.NewApplication(logger)
	if err != nil {
		return err
	}
	defer application.Close()

	if application.Config.Seed.Enabled {
		seeder := seeders.New(&seeders.Seeder{
			Users:         service.NewUserService(&service.UserService{Users: application.DB.User()}),
			UserRepo:      application.DB.User(),
			Logger:        logger,
			AdminEmail:    application.Config.Seed.AdminEmail,
			AdminPassword: application.Config.Seed.AdminPassword,
		})
		if err := seeder.Run(); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.New(&worker.Worker{
		KafkaStream: application.Kafka,
		UserRepo:    application.DB.User(),
		Mailer:      application.Mailer,
		Helper:      application.Helper,
		Logger:      logger,
		Ctx:         ctx,
	}).Run()

	return application.ServeHTTP()
}

package seeders

import (
	"context"
	"log/slog"
	"time"

	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/service"
)

const defaultTimeout = 5 * time.Second

type Seeder struct {
	Users    *service.UserService
	UserRepo repository.UserRepository
	Logger   *slog.Logger

	AdminEmail    string
	AdminPassword string
}

func New(seeder *Seeder) *Seeder {
	return &Seeder{
		Users:         seeder.Users,
		UserRepo:      seeder.UserRepo,
		Logger:        seeder.Logger,
		AdminEmail:    seeder.AdminEmail,
		AdminPassword: seeder.AdminPassword,
	}
}

func (seeder *Seeder) Run() error {
	return seeder.seedAdmin()
}

// seedAdmin creates the administrator account unless a user with its email exists.
func (seeder *Seeder) seedAdmin() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	_, found, err := seeder.UserRepo.GetByEmail(ctx, seeder.AdminEmail)
	if err != nil {
		return err
	}
	if found {
		seeder.Logger.Info("admin user already seeded", "email", seeder.AdminEmail)
		return nil
	}

	admin, err := seeder.Users.Create(ctx, &service.CreateUserInput{
		Name:     "Administrator",
		Email:    seeder.AdminEmail,
		Password: seeder.AdminPassword,
		Roles:    []string{models.RoleAdmin, models.RoleUser},
	})
	if err != nil {
		return err
	}

	seeder.Logger.Info("admin user seeded", "id", admin.ID, "email", admin.Email)
	return nil
}

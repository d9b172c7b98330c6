package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cradoe/crm/assets"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
)

const defaultTimeout = 3 * time.Second

// Database interface defines available repositories
type Database interface {
	User() UserRepository
	Account() AccountRepository
	Contact() ContactRepository
	Lead() LeadRepository
	Opportunity() OpportunityRepository
	Project() ProjectRepository
	Ticket() TicketRepository
	Activity() ActivityRepository
	Registry() *EntityRegistry

	Close() error
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// DatabaseImpl implements the Database interface
type DatabaseImpl struct {
	db              *sqlx.DB
	userRepo        UserRepository
	accountRepo     AccountRepository
	contactRepo     ContactRepository
	leadRepo        LeadRepository
	opportunityRepo OpportunityRepository
	projectRepo     ProjectRepository
	ticketRepo      TicketRepository
	activityRepo    ActivityRepository
	registry        *EntityRegistry

	mu sync.Mutex
}

// New initializes a database connection and runs migrations if enabled
func New(dsn string, automigrate bool, poolMax int) (Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", "postgres://"+dsn)
	if err != nil {
		return nil, err
	}

	if poolMax < 1 {
		poolMax = 10
	}
	db.SetMaxOpenConns(poolMax)
	db.SetMaxIdleConns(poolMax)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	if automigrate {
		iofsDriver, err := iofs.New(assets.EmbeddedFiles, "migrations")
		if err != nil {
			return nil, err
		}

		migrator, err := migrate.NewWithSourceInstance("iofs", iofsDriver, "postgres://"+dsn)
		if err != nil {
			return nil, err
		}

		if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return &DatabaseImpl{db: db}, nil
}

func (d *DatabaseImpl) Close() error {
	return d.db.Close()
}

func (d *DatabaseImpl) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return d.db.BeginTxx(ctx, opts)
}

// WithTx commits when fn returns nil and rolls back otherwise.
func (d *DatabaseImpl) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *DatabaseImpl) User() UserRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.userRepo == nil {
		d.userRepo = NewUserRepository(d.db)
	}
	return d.userRepo
}

func (d *DatabaseImpl) Account() AccountRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.accountRepo == nil {
		d.accountRepo = NewAccountRepository(d.db)
	}
	return d.accountRepo
}

func (d *DatabaseImpl) Contact() ContactRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.contactRepo == nil {
		d.contactRepo = NewContactRepository(d.db)
	}
	return d.contactRepo
}

func (d *DatabaseImpl) Lead() LeadRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.leadRepo == nil {
		d.leadRepo = NewLeadRepository(d.db)
	}
	return d.leadRepo
}

func (d *DatabaseImpl) Opportunity() OpportunityRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.opportunityRepo == nil {
		d.opportunityRepo = NewOpportunityRepository(d.db)
	}
	return d.opportunityRepo
}

func (d *DatabaseImpl) Project() ProjectRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.projectRepo == nil {
		d.projectRepo = NewProjectRepository(d.db)
	}
	return d.projectRepo
}

func (d *DatabaseImpl) Ticket() TicketRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ticketRepo == nil {
		d.ticketRepo = NewTicketRepository(d.db)
	}
	return d.ticketRepo
}

func (d *DatabaseImpl) Activity() ActivityRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.activityRepo == nil {
		d.activityRepo = NewActivityRepository(d.db)
	}
	return d.activityRepo
}

func (d *DatabaseImpl) Registry() *EntityRegistry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.registry == nil {
		d.registry = NewEntityRegistry(d.db)
	}
	return d.registry
}

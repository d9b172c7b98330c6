package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	GetOne(ctx context.Context, id int64) (*models.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, bool, error)
	List(ctx context.Context, page models.Page) ([]models.User, int, error)
	Summaries(ctx context.Context, ids []int64) ([]models.UserSummary, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (repo *UserRepositoryImpl) Insert(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if len(user.Roles) == 0 {
		user.Roles = pq.StringArray{models.RoleUser}
	}

	query := `
		INSERT INTO users (name, email, hashed_password, roles)
		VALUES (:name, :email, :hashed_password, :roles)
		RETURNING id, created_at, updated_at`

	return namedGet(ctx, repo.db, user, query, user)
}

func (repo *UserRepositoryImpl) GetOne(ctx context.Context, id int64) (*models.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var user models.User

	query := `SELECT * FROM users WHERE id = $1`

	err := repo.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &user, true, nil
}

func (repo *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := repo.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &user, true, nil
}

func (repo *UserRepositoryImpl) List(ctx context.Context, page models.Page) ([]models.User, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, err
	}

	users := []models.User{}

	query := `
		SELECT * FROM users
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	if err := repo.db.SelectContext(ctx, &users, query, page.Limit, page.Offset()); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Summaries returns the users that exist among ids, in no particular order.
func (repo *UserRepositoryImpl) Summaries(ctx context.Context, ids []int64) ([]models.UserSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	summaries := []models.UserSummary{}
	if len(ids) == 0 {
		return summaries, nil
	}

	query := `SELECT id, name, email FROM users WHERE id = ANY($1) ORDER BY name`

	err := repo.db.SelectContext(ctx, &summaries, query, pq.Array(ids))
	return summaries, err
}

func (repo *UserRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE users
		SET name = :name, email = :email, hashed_password = :hashed_password, roles = :roles, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`

	return namedGet(ctx, repo.db, user, query, user)
}

func (repo *UserRepositoryImpl) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected(repo.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
}

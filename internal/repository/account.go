package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *models.Account, tx *sqlx.Tx) error
	GetOne(ctx context.Context, id string) (*models.Account, bool, error)
	List(ctx context.Context, page models.Page) ([]models.Account, int, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id string) (int64, error)
}

type AccountRepositoryImpl struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

type accountRow struct {
	models.Account
	userRefs
}

func (row *accountRow) toModel() models.Account {
	account := row.Account
	account.CreatedBy = row.createdBy(account.CreatedByID)
	account.AssignedTo = row.assignedTo(account.AssignedToID)
	return account
}

const accountSelect = `
		SELECT a.*,` + userRefColumns + `
		FROM accounts a`

func (repo *AccountRepositoryImpl) Insert(ctx context.Context, account *models.Account, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO accounts (
			name, industry, website, phone,
			billing_address_street, billing_address_city, billing_address_state,
			billing_address_postal_code, billing_address_country,
			shipping_address_street, shipping_address_city, shipping_address_state,
			shipping_address_postal_code, shipping_address_country,
			description, created_by_id, assigned_to_id
		)
		VALUES (
			:name, :industry, :website, :phone,
			:billing_address_street, :billing_address_city, :billing_address_state,
			:billing_address_postal_code, :billing_address_country,
			:shipping_address_street, :shipping_address_city, :shipping_address_state,
			:shipping_address_postal_code, :shipping_address_country,
			:description, :created_by_id, :assigned_to_id
		)
		RETURNING id, created_at, updated_at`

	return namedGet(ctx, conn(repo.db, tx), account, query, account)
}

func (repo *AccountRepositoryImpl) GetOne(ctx context.Context, id string) (*models.Account, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row accountRow

	query := accountSelect + userRefJoins("a") + `
		WHERE a.id = $1`

	err := repo.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	account := row.toModel()
	return &account, true, nil
}

func (repo *AccountRepositoryImpl) List(ctx context.Context, page models.Page) ([]models.Account, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM accounts`); err != nil {
		return nil, 0, err
	}

	var rows []accountRow

	query := accountSelect + userRefJoins("a") + `
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $1 OFFSET $2`

	if err := repo.db.SelectContext(ctx, &rows, query, page.Limit, page.Offset()); err != nil {
		return nil, 0, err
	}

	accounts := make([]models.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, rows[i].toModel())
	}

	return accounts, total, nil
}

func (repo *AccountRepositoryImpl) Update(ctx context.Context, account *models.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE accounts SET
			name = :name, industry = :industry, website = :website, phone = :phone,
			billing_address_street = :billing_address_street,
			billing_address_city = :billing_address_city,
			billing_address_state = :billing_address_state,
			billing_address_postal_code = :billing_address_postal_code,
			billing_address_country = :billing_address_country,
			shipping_address_street = :shipping_address_street,
			shipping_address_city = :shipping_address_city,
			shipping_address_state = :shipping_address_state,
			shipping_address_postal_code = :shipping_address_postal_code,
			shipping_address_country = :shipping_address_country,
			description = :description,
			assigned_to_id = :assigned_to_id,
			updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`

	return namedGet(ctx, repo.db, account, query, account)
}

func (repo *AccountRepositoryImpl) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected(repo.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id))
}

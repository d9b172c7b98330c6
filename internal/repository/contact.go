package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
)

// Contacts are soft deleted: DELETE sets deleted_at and every read below
// filters those rows out.
type ContactRepository interface {
	Insert(ctx context.Context, contact *models.Contact, tx *sqlx.Tx) error
	GetOne(ctx context.Context, id string) (*models.Contact, bool, error)
	List(ctx context.Context, page models.Page) ([]models.Contact, int, error)
	ListByAccount(ctx context.Context, accountID string) ([]models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	SoftDelete(ctx context.Context, id string) (int64, error)
}

type ContactRepositoryImpl struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

type contactRow struct {
	models.Contact
	userRefs
	AccountName *string `db:"account_name"`
}

func (row *contactRow) toModel() models.Contact {
	contact := row.Contact
	contact.Account = accountSummary(contact.AccountID, row.AccountName)
	contact.CreatedBy = row.createdBy(contact.CreatedByID)
	contact.AssignedTo = row.assignedTo(contact.AssignedToID)
	return contact
}

const contactSelect = `
		SELECT c.*, acc.name AS account_name,` + userRefColumns + `
		FROM contacts c
		LEFT JOIN accounts acc ON acc.id = c.account_id`

func (repo *ContactRepositoryImpl) Insert(ctx context.Context, contact *models.Contact, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO contacts (
			first_name, last_name, email, phone, job_title, description,
			account_id, created_by_id, assigned_to_id
		)
		VALUES (
			:first_name, :last_name, :email, :phone, :job_title, :description,
			:account_id, :created_by_id, :assigned_to_id
		)
		RETURNING id, created_at, updated_at`

	return namedGet(ctx, conn(repo.db, tx), contact, query, contact)
}

func (repo *ContactRepositoryImpl) GetOne(ctx context.Context, id string) (*models.Contact, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row contactRow

	query := contactSelect + userRefJoins("c") + `
		WHERE c.id = $1 AND c.deleted_at IS NULL`

	err := repo.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	contact := row.toModel()
	return &contact, true, nil
}

func (repo *ContactRepositoryImpl) List(ctx context.Context, page models.Page) ([]models.Contact, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contacts WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, err
	}

	var rows []contactRow

	query := contactSelect + userRefJoins("c") + `
		WHERE c.deleted_at IS NULL
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $1 OFFSET $2`

	if err := repo.db.SelectContext(ctx, &rows, query, page.Limit, page.Offset()); err != nil {
		return nil, 0, err
	}

	contacts := make([]models.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, rows[i].toModel())
	}

	return contacts, total, nil
}

func (repo *ContactRepositoryImpl) ListByAccount(ctx context.Context, accountID string) ([]models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	contacts := []models.Contact{}

	query := `
		SELECT * FROM contacts
		WHERE account_id = $1 AND deleted_at IS NULL
		ORDER BY last_name, first_name`

	err := repo.db.SelectContext(ctx, &contacts, query, accountID)
	return contacts, err
}

func (repo *ContactRepositoryImpl) Update(ctx context.Context, contact *models.Contact) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE contacts SET
			first_name = :first_name, last_name = :last_name, email = :email,
			phone = :phone, job_title = :job_title, description = :description,
			account_id = :account_id, assigned_to_id = :assigned_to_id,
			updated_at = NOW()
		WHERE id = :id AND deleted_at IS NULL
		RETURNING updated_at`

	return namedGet(ctx, repo.db, contact, query, contact)
}

func (repo *ContactRepositoryImpl) SoftDelete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `UPDATE contacts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	return affected(repo.db.ExecContext(ctx, query, id))
}

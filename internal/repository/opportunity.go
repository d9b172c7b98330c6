package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
)

type OpportunityRepository interface {
	Insert(ctx context.Context, opportunity *models.Opportunity, tx *sqlx.Tx) error
	GetOne(ctx context.Context, id int64) (*models.Opportunity, bool, error)
	List(ctx context.Context, page models.Page) ([]models.Opportunity, int, error)
	ListByAccount(ctx context.Context, accountID string) ([]models.Opportunity, error)
	ListByContact(ctx context.Context, contactID string) ([]models.Opportunity, error)
	Update(ctx context.Context, opportunity *models.Opportunity) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type OpportunityRepositoryImpl struct {
	db *sqlx.DB
}

func NewOpportunityRepository(db *sqlx.DB) OpportunityRepository {
	return &OpportunityRepositoryImpl{db: db}
}

type opportunityRow struct {
	models.Opportunity
	userRefs
	AccountName      *string `db:"account_name"`
	ContactFirstName *string `db:"contact_first_name"`
	ContactLastName  *string `db:"contact_last_name"`
	ContactEmail     *string `db:"contact_email"`
}

func (row *opportunityRow) toModel() models.Opportunity {
	opportunity := row.Opportunity
	opportunity.Account = accountSummary(opportunity.AccountID, row.AccountName)
	if opportunity.ContactID != nil && row.ContactFirstName != nil {
		opportunity.Contact = &models.ContactSummary{
			ID:        *opportunity.ContactID,
			FirstName: *row.ContactFirstName,
			LastName:  deref(row.ContactLastName),
			Email:     row.ContactEmail,
		}
	}
	opportunity.CreatedBy = row.createdBy(opportunity.CreatedByID)
	opportunity.AssignedTo = row.assignedTo(opportunity.AssignedToID)
	return opportunity
}

// soft-deleted contacts are not shown as the opportunity's contact
const opportunitySelect = `
		SELECT o.*,
			acc.name AS account_name,
			con.first_name AS contact_first_name,
			con.last_name AS contact_last_name,
			con.email AS contact_email,` + userRefColumns + `
		FROM opportunities o
		LEFT JOIN accounts acc ON acc.id = o.account_id
		LEFT JOIN contacts con ON con.id = o.contact_id AND con.deleted_at IS NULL`

func (repo *OpportunityRepositoryImpl) Insert(ctx context.Context, opportunity *models.Opportunity, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO opportunities (
			name, account_id, contact_id, stage, value, expected_close_date,
			description, lost_reason, created_by_id, assigned_to_id
		)
		VALUES (
			:name, :account_id, :contact_id, :stage, :value, :expected_close_date,
			:description, :lost_reason, :created_by_id, :assigned_to_id
		)
		RETURNING id, created_at, updated_at`

	return namedGet(ctx, conn(repo.db, tx), opportunity, query, opportunity)
}

func (repo *OpportunityRepositoryImpl) GetOne(ctx context.Context, id int64) (*models.Opportunity, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row opportunityRow

	query := opportunitySelect + userRefJoins("o") + `
		WHERE o.id = $1`

	err := repo.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	opportunity := row.toModel()
	return &opportunity, true, nil
}

func (repo *OpportunityRepositoryImpl) List(ctx context.Context, page models.Page) ([]models.Opportunity, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM opportunities`); err != nil {
		return nil, 0, err
	}

	var rows []opportunityRow

	query := opportunitySelect + userRefJoins("o") + `
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $1 OFFSET $2`

	if err := repo.db.SelectContext(ctx, &rows, query, page.Limit, page.Offset()); err != nil {
		return nil, 0, err
	}

	opportunities := make([]models.Opportunity, 0, len(rows))
	for i := range rows {
		opportunities = append(opportunities, rows[i].toModel())
	}

	return opportunities, total, nil
}

func (repo *OpportunityRepositoryImpl) ListByAccount(ctx context.Context, accountID string) ([]models.Opportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opportunities := []models.Opportunity{}

	query := `SELECT * FROM opportunities WHERE account_id = $1 ORDER BY created_at DESC`

	err := repo.db.SelectContext(ctx, &opportunities, query, accountID)
	return opportunities, err
}

func (repo *OpportunityRepositoryImpl) ListByContact(ctx context.Context, contactID string) ([]models.Opportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opportunities := []models.Opportunity{}

	query := `SELECT * FROM opportunities WHERE contact_id = $1 ORDER BY created_at DESC`

	err := repo.db.SelectContext(ctx, &opportunities, query, contactID)
	return opportunities, err
}

func (repo *OpportunityRepositoryImpl) Update(ctx context.Context, opportunity *models.Opportunity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE opportunities SET
			name = :name, account_id = :account_id, contact_id = :contact_id,
			stage = :stage, value = :value, expected_close_date = :expected_close_date,
			description = :description, lost_reason = :lost_reason,
			assigned_to_id = :assigned_to_id, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`

	return namedGet(ctx, repo.db, opportunity, query, opportunity)
}

func (repo *OpportunityRepositoryImpl) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected(repo.db.ExecContext(ctx, `DELETE FROM opportunities WHERE id = $1`, id))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

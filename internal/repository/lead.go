package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
)

type LeadRepository interface {
	Insert(ctx context.Context, lead *models.Lead) error
	GetOne(ctx context.Context, id int64) (*models.Lead, bool, error)
	List(ctx context.Context, page models.Page) ([]models.Lead, int, error)
	Update(ctx context.Context, lead *models.Lead, tx *sqlx.Tx) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type LeadRepositoryImpl struct {
	db *sqlx.DB
}

func NewLeadRepository(db *sqlx.DB) LeadRepository {
	return &LeadRepositoryImpl{db: db}
}

type leadRow struct {
	models.Lead
	userRefs
}

func (row *leadRow) toModel() models.Lead {
	lead := row.Lead
	lead.CreatedBy = row.createdBy(lead.CreatedByID)
	lead.AssignedTo = row.assignedTo(lead.AssignedToID)
	return lead
}

const leadSelect = `
		SELECT l.*,` + userRefColumns + `
		FROM leads l`

func (repo *LeadRepositoryImpl) Insert(ctx context.Context, lead *models.Lead) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO leads (
			first_name, last_name, company, email, phone, status, source,
			notes, estimated_value, created_by_id, assigned_to_id
		)
		VALUES (
			:first_name, :last_name, :company, :email, :phone, :status, :source,
			:notes, :estimated_value, :created_by_id, :assigned_to_id
		)
		RETURNING id, created_at, updated_at`

	return namedGet(ctx, repo.db, lead, query, lead)
}

func (repo *LeadRepositoryImpl) GetOne(ctx context.Context, id int64) (*models.Lead, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row leadRow

	query := leadSelect + userRefJoins("l") + `
		WHERE l.id = $1`

	err := repo.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	lead := row.toModel()
	return &lead, true, nil
}

func (repo *LeadRepositoryImpl) List(ctx context.Context, page models.Page) ([]models.Lead, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM leads`); err != nil {
		return nil, 0, err
	}

	var rows []leadRow

	query := leadSelect + userRefJoins("l") + `
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $1 OFFSET $2`

	if err := repo.db.SelectContext(ctx, &rows, query, page.Limit, page.Offset()); err != nil {
		return nil, 0, err
	}

	leads := make([]models.Lead, 0, len(rows))
	for i := range rows {
		leads = append(leads, rows[i].toModel())
	}

	return leads, total, nil
}

func (repo *LeadRepositoryImpl) Update(ctx context.Context, lead *models.Lead, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE leads SET
			first_name = :first_name, last_name = :last_name, company = :company,
			email = :email, phone = :phone, status = :status, source = :source,
			notes = :notes, estimated_value = :estimated_value,
			assigned_to_id = :assigned_to_id, updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`

	return namedGet(ctx, conn(repo.db, tx), lead, query, lead)
}

func (repo *LeadRepositoryImpl) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected(repo.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id))
}

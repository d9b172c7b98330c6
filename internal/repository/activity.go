package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
)

// Activities have no update path; once logged they are only read.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *models.Activity) error
	GetOne(ctx context.Context, id string) (*models.Activity, bool, error)
	ListByRelated(ctx context.Context, kind models.EntityKind, id string, page models.Page) ([]models.Activity, int, error)
}

type ActivityRepositoryImpl struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

type activityRow struct {
	models.Activity
	userRefs
}

func (row *activityRow) toModel() models.Activity {
	activity := row.Activity
	activity.RelatedTo = &models.RelatedEntity{Kind: activity.RelatedKind, ID: activity.RelatedID}
	activity.CreatedBy = row.createdBy(activity.CreatedByID)
	activity.AssignedTo = row.assignedTo(activity.AssignedToID)
	return activity
}

const activitySelect = `
		SELECT act.*,` + userRefColumns + `
		FROM activities act`

func (repo *ActivityRepositoryImpl) Insert(ctx context.Context, activity *models.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO activities (
			type, subject, body, occurred_at, duration_minutes, outcome,
			created_by_id, assigned_to_id, related_kind, related_id
		)
		VALUES (
			:type, :subject, :body, :occurred_at, :duration_minutes, :outcome,
			:created_by_id, :assigned_to_id, :related_kind, :related_id
		)
		RETURNING id, created_at, updated_at`

	return namedGet(ctx, repo.db, activity, query, activity)
}

func (repo *ActivityRepositoryImpl) GetOne(ctx context.Context, id string) (*models.Activity, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row activityRow

	query := activitySelect + userRefJoins("act") + `
		WHERE act.id = $1`

	err := repo.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	activity := row.toModel()
	return &activity, true, nil
}

// ListByRelated returns the timeline of one record, most recent interaction first.
func (repo *ActivityRepositoryImpl) ListByRelated(ctx context.Context, kind models.EntityKind, id string, page models.Page) ([]models.Activity, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM activities WHERE related_kind = $1 AND related_id = $2`

	if err := repo.db.GetContext(ctx, &total, countQuery, kind, id); err != nil {
		return nil, 0, err
	}

	var rows []activityRow

	query := activitySelect + userRefJoins("act") + `
		WHERE act.related_kind = $1 AND act.related_id = $2
		ORDER BY act.occurred_at DESC, act.created_at DESC
		LIMIT $3 OFFSET $4`

	if err := repo.db.SelectContext(ctx, &rows, query, kind, id, page.Limit, page.Offset()); err != nil {
		return nil, 0, err
	}

	activities := make([]models.Activity, 0, len(rows))
	for i := range rows {
		activities = append(activities, rows[i].toModel())
	}

	return activities, total, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ProjectRepository interface {
	Insert(ctx context.Context, project *models.Project, tx *sqlx.Tx) error
	GetOne(ctx context.Context, id string) (*models.Project, bool, error)
	List(ctx context.Context, page models.Page) ([]models.Project, int, error)
	ListByAccount(ctx context.Context, accountID string) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project, tx *sqlx.Tx) error
	Delete(ctx context.Context, id string) (int64, error)
	SetTeamMembers(ctx context.Context, projectID string, userIDs []int64, tx *sqlx.Tx) error
}

type ProjectRepositoryImpl struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

type projectRow struct {
	models.Project
	AccountName           *string `db:"account_name"`
	ProjectManagerName    *string `db:"project_manager_name"`
	ProjectManagerEmail   *string `db:"project_manager_email"`
	ProjectCreatedByName  *string `db:"created_by_name"`
	ProjectCreatedByEmail *string `db:"created_by_email"`
}

func (row *projectRow) toModel() models.Project {
	project := row.Project
	project.Account = accountSummary(&project.AccountID, row.AccountName)
	project.ProjectManager = userSummary(project.ProjectManagerID, row.ProjectManagerName, row.ProjectManagerEmail)
	project.CreatedBy = userSummary(project.CreatedByID, row.ProjectCreatedByName, row.ProjectCreatedByEmail)
	return project
}

const projectSelect = `
		SELECT p.*,
			acc.name AS account_name,
			pm.name AS project_manager_name, pm.email AS project_manager_email,
			cu.name AS created_by_name, cu.email AS created_by_email
		FROM projects p
		LEFT JOIN accounts acc ON acc.id = p.account_id
		LEFT JOIN users pm ON pm.id = p.project_manager_id
		LEFT JOIN users cu ON cu.id = p.created_by_id`

type teamMemberRow struct {
	ProjectID string `db:"project_id"`
	models.UserSummary
}

func (repo *ProjectRepositoryImpl) Insert(ctx context.Context, project *models.Project, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO projects (
			name, description, status, start_date, end_date, budget,
			account_id, project_manager_id, created_by_id
		)
		VALUES (
			:name, :description, :status, :start_date, :end_date, :budget,
			:account_id, :project_manager_id, :created_by_id
		)
		RETURNING id, created_at, updated_at`

	return namedGet(ctx, conn(repo.db, tx), project, query, project)
}

func (repo *ProjectRepositoryImpl) GetOne(ctx context.Context, id string) (*models.Project, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row projectRow

	query := projectSelect + `
		WHERE p.id = $1`

	err := repo.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	project := row.toModel()

	members, err := repo.teamMembers(ctx, []string{project.ID})
	if err != nil {
		return nil, false, err
	}
	project.TeamMembers = members[project.ID]

	return &project, true, nil
}

func (repo *ProjectRepositoryImpl) List(ctx context.Context, page models.Page) ([]models.Project, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM projects`); err != nil {
		return nil, 0, err
	}

	var rows []projectRow

	query := projectSelect + `
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2`

	if err := repo.db.SelectContext(ctx, &rows, query, page.Limit, page.Offset()); err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}

	members, err := repo.teamMembers(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	projects := make([]models.Project, 0, len(rows))
	for i := range rows {
		project := rows[i].toModel()
		project.TeamMembers = members[project.ID]
		projects = append(projects, project)
	}

	return projects, total, nil
}

func (repo *ProjectRepositoryImpl) ListByAccount(ctx context.Context, accountID string) ([]models.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	projects := []models.Project{}

	query := `SELECT * FROM projects WHERE account_id = $1 ORDER BY created_at DESC`

	err := repo.db.SelectContext(ctx, &projects, query, accountID)
	return projects, err
}

func (repo *ProjectRepositoryImpl) Update(ctx context.Context, project *models.Project, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE projects SET
			name = :name, description = :description, status = :status,
			start_date = :start_date, end_date = :end_date, budget = :budget,
			account_id = :account_id, project_manager_id = :project_manager_id,
			updated_at = NOW()
		WHERE id = :id
		RETURNING updated_at`

	return namedGet(ctx, conn(repo.db, tx), project, query, project)
}

func (repo *ProjectRepositoryImpl) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected(repo.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id))
}

// SetTeamMembers replaces the whole team of a project.
func (repo *ProjectRepositoryImpl) SetTeamMembers(ctx context.Context, projectID string, userIDs []int64, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := conn(repo.db, tx)

	if _, err := q.ExecContext(ctx, `DELETE FROM project_team_members WHERE project_id = $1`, projectID); err != nil {
		return mapError(err)
	}

	if len(userIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO project_team_members (project_id, user_id)
		SELECT $1, unnest($2::BIGINT[])
		ON CONFLICT DO NOTHING`

	_, err := q.ExecContext(ctx, query, projectID, pq.Array(userIDs))
	return mapError(err)
}

func (repo *ProjectRepositoryImpl) teamMembers(ctx context.Context, projectIDs []string) (map[string][]models.UserSummary, error) {
	members := make(map[string][]models.UserSummary, len(projectIDs))
	if len(projectIDs) == 0 {
		return members, nil
	}

	var rows []teamMemberRow

	query := `
		SELECT ptm.project_id, u.id, u.name, u.email
		FROM project_team_members ptm
		JOIN users u ON u.id = ptm.user_id
		WHERE ptm.project_id = ANY($1::UUID[])
		ORDER BY u.name`

	if err := repo.db.SelectContext(ctx, &rows, query, pq.Array(projectIDs)); err != nil {
		return nil, err
	}

	for _, row := range rows {
		members[row.ProjectID] = append(members[row.ProjectID], row.UserSummary)
	}

	return members, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
)

// Tickets are soft deleted like contacts. Comments belong to a ticket and are
// removed with it by the foreign key cascade.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *models.Ticket) error
	GetOne(ctx context.Context, id string) (*models.Ticket, bool, error)
	List(ctx context.Context, page models.Page) ([]models.Ticket, int, error)
	ListByAccount(ctx context.Context, accountID string) ([]models.Ticket, error)
	Update(ctx context.Context, ticket *models.Ticket) error
	SoftDelete(ctx context.Context, id string) (int64, error)

	InsertComment(ctx context.Context, comment *models.TicketComment) error
	ListComments(ctx context.Context, ticketID string, page models.Page) ([]models.TicketComment, int, error)
}

type TicketRepositoryImpl struct {
	db *sqlx.DB
}

func NewTicketRepository(db *sqlx.DB) TicketRepository {
	return &TicketRepositoryImpl{db: db}
}

type ticketRow struct {
	models.Ticket
	userRefs
	AccountName *string `db:"account_name"`
	ProjectName *string `db:"project_name"`
}

func (row *ticketRow) toModel() models.Ticket {
	ticket := row.Ticket
	ticket.Account = accountSummary(ticket.AccountID, row.AccountName)
	if ticket.ProjectID != nil && row.ProjectName != nil {
		ticket.Project = &models.ProjectSummary{ID: *ticket.ProjectID, Name: *row.ProjectName}
	}
	ticket.CreatedBy = row.createdBy(ticket.CreatedByID)
	ticket.AssignedTo = row.assignedTo(ticket.AssignedToID)
	return ticket
}

const ticketSelect = `
		SELECT t.*, acc.name AS account_name, prj.name AS project_name,` + userRefColumns + `
		FROM tickets t
		LEFT JOIN accounts acc ON acc.id = t.account_id
		LEFT JOIN projects prj ON prj.id = t.project_id`

type commentRow struct {
	models.TicketComment
	AuthorName  *string `db:"author_name"`
	AuthorEmail *string `db:"author_email"`
}

func (repo *TicketRepositoryImpl) Insert(ctx context.Context, ticket *models.Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO tickets (
			title, description, status, priority, account_id, project_id,
			created_by_id, assigned_to_id
		)
		VALUES (
			:title, :description, :status, :priority, :account_id, :project_id,
			:created_by_id, :assigned_to_id
		)
		RETURNING id, created_at, updated_at`

	return namedGet(ctx, repo.db, ticket, query, ticket)
}

func (repo *TicketRepositoryImpl) GetOne(ctx context.Context, id string) (*models.Ticket, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row ticketRow

	query := ticketSelect + userRefJoins("t") + `
		WHERE t.id = $1 AND t.deleted_at IS NULL`

	err := repo.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	ticket := row.toModel()
	return &ticket, true, nil
}

func (repo *TicketRepositoryImpl) List(ctx context.Context, page models.Page) ([]models.Ticket, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tickets WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, err
	}

	var rows []ticketRow

	query := ticketSelect + userRefJoins("t") + `
		WHERE t.deleted_at IS NULL
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $1 OFFSET $2`

	if err := repo.db.SelectContext(ctx, &rows, query, page.Limit, page.Offset()); err != nil {
		return nil, 0, err
	}

	tickets := make([]models.Ticket, 0, len(rows))
	for i := range rows {
		tickets = append(tickets, rows[i].toModel())
	}

	return tickets, total, nil
}

func (repo *TicketRepositoryImpl) ListByAccount(ctx context.Context, accountID string) ([]models.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tickets := []models.Ticket{}

	query := `
		SELECT * FROM tickets
		WHERE account_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	err := repo.db.SelectContext(ctx, &tickets, query, accountID)
	return tickets, err
}

func (repo *TicketRepositoryImpl) Update(ctx context.Context, ticket *models.Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE tickets SET
			title = :title, description = :description, status = :status,
			priority = :priority, account_id = :account_id, project_id = :project_id,
			assigned_to_id = :assigned_to_id, updated_at = NOW()
		WHERE id = :id AND deleted_at IS NULL
		RETURNING updated_at`

	return namedGet(ctx, repo.db, ticket, query, ticket)
}

func (repo *TicketRepositoryImpl) SoftDelete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `UPDATE tickets SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	return affected(repo.db.ExecContext(ctx, query, id))
}

func (repo *TicketRepositoryImpl) InsertComment(ctx context.Context, comment *models.TicketComment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO ticket_comments (ticket_id, author_id, content, attachment_url)
		VALUES (:ticket_id, :author_id, :content, :attachment_url)
		RETURNING id, created_at, updated_at`

	return namedGet(ctx, repo.db, comment, query, comment)
}

func (repo *TicketRepositoryImpl) ListComments(ctx context.Context, ticketID string, page models.Page) ([]models.TicketComment, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var total int
	err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM ticket_comments WHERE ticket_id = $1`, ticketID)
	if err != nil {
		return nil, 0, err
	}

	var rows []commentRow

	query := `
		SELECT tc.*, u.name AS author_name, u.email AS author_email
		FROM ticket_comments tc
		LEFT JOIN users u ON u.id = tc.author_id
		WHERE tc.ticket_id = $1
		ORDER BY tc.created_at ASC
		LIMIT $2 OFFSET $3`

	if err := repo.db.SelectContext(ctx, &rows, query, ticketID, page.Limit, page.Offset()); err != nil {
		return nil, 0, err
	}

	comments := make([]models.TicketComment, 0, len(rows))
	for _, row := range rows {
		comment := row.TicketComment
		comment.Author = userSummary(comment.AuthorID, row.AuthorName, row.AuthorEmail)
		comments = append(comments, comment)
	}

	return comments, total, nil
}

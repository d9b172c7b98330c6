package models

import "time"

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
	TicketStatusReopened   TicketStatus = "REOPENED"
)

var TicketStatuses = []TicketStatus{
	TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed, TicketStatusReopened,
}

func (s TicketStatus) Valid() bool {
	return oneOf(s, TicketStatuses)
}

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

var TicketPriorities = []TicketPriority{
	TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent,
}

func (p TicketPriority) Valid() bool {
	return oneOf(p, TicketPriorities)
}

type Ticket struct {
	ID           string         `db:"id" json:"id"`
	Title        string         `db:"title" json:"title"`
	Description  string         `db:"description" json:"description"`
	Status       TicketStatus   `db:"status" json:"status"`
	Priority     TicketPriority `db:"priority" json:"priority"`
	AccountID    *string        `db:"account_id" json:"accountId"`
	ProjectID    *string        `db:"project_id" json:"projectId"`
	CreatedByID  *int64         `db:"created_by_id" json:"createdById"`
	AssignedToID *int64         `db:"assigned_to_id" json:"assignedToId"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
	DeletedAt    *time.Time     `db:"deleted_at" json:"-"`

	Account    *AccountSummary `db:"-" json:"account,omitempty"`
	Project    *ProjectSummary `db:"-" json:"project,omitempty"`
	CreatedBy  *UserSummary    `db:"-" json:"createdBy,omitempty"`
	AssignedTo *UserSummary    `db:"-" json:"assignedTo,omitempty"`
}

type TicketComment struct {
	ID            string    `db:"id" json:"id"`
	TicketID      string    `db:"ticket_id" json:"ticketId"`
	AuthorID      *int64    `db:"author_id" json:"authorId"`
	Content       string    `db:"content" json:"content"`
	AttachmentURL *string   `db:"attachment_url" json:"attachmentUrl"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`

	Author *UserSummary `db:"-" json:"author,omitempty"`
}

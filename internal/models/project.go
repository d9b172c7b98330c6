package models

import "time"

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "Not Started"
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusOnHold     ProjectStatus = "On Hold"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusCancelled  ProjectStatus = "Cancelled"
)

var ProjectStatuses = []ProjectStatus{
	ProjectStatusNotStarted, ProjectStatusPlanning, ProjectStatusInProgress,
	ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled,
}

func (s ProjectStatus) Valid() bool {
	return oneOf(s, ProjectStatuses)
}

type Project struct {
	ID               string        `db:"id" json:"id"`
	Name             string        `db:"name" json:"name"`
	Description      *string       `db:"description" json:"description"`
	Status           ProjectStatus `db:"status" json:"status"`
	StartDate        *Date         `db:"start_date" json:"startDate"`
	EndDate          *Date         `db:"end_date" json:"endDate"`
	Budget           *float64      `db:"budget" json:"budget"`
	AccountID        string        `db:"account_id" json:"accountId"`
	ProjectManagerID *int64        `db:"project_manager_id" json:"projectManagerId"`
	CreatedByID      *int64        `db:"created_by_id" json:"createdById"`
	CreatedAt        time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updatedAt"`

	Account        *AccountSummary `db:"-" json:"account,omitempty"`
	ProjectManager *UserSummary    `db:"-" json:"projectManager,omitempty"`
	CreatedBy      *UserSummary    `db:"-" json:"createdBy,omitempty"`
	TeamMembers    []UserSummary   `db:"-" json:"teamMembers,omitempty"`
}

type ProjectSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package models

import "time"

type Contact struct {
	ID           string     `db:"id" json:"id"`
	FirstName    string     `db:"first_name" json:"firstName"`
	LastName     string     `db:"last_name" json:"lastName"`
	Email        *string    `db:"email" json:"email"`
	Phone        *string    `db:"phone" json:"phone"`
	JobTitle     *string    `db:"job_title" json:"jobTitle"`
	Description  *string    `db:"description" json:"description"`
	AccountID    *string    `db:"account_id" json:"accountId"`
	CreatedByID  *int64     `db:"created_by_id" json:"createdById"`
	AssignedToID *int64     `db:"assigned_to_id" json:"assignedToId"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`

	Account       *AccountSummary `db:"-" json:"account,omitempty"`
	CreatedBy     *UserSummary    `db:"-" json:"createdBy,omitempty"`
	AssignedTo    *UserSummary    `db:"-" json:"assignedTo,omitempty"`
	Opportunities []Opportunity   `db:"-" json:"opportunities,omitempty"`
}

func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

type ContactSummary struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email"`
}

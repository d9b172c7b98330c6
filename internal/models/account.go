package models

import "time"

type Account struct {
	ID                        string    `db:"id" json:"id"`
	Name                      string    `db:"name" json:"name"`
	Industry                  *string   `db:"industry" json:"industry"`
	Website                   *string   `db:"website" json:"website"`
	Phone                     *string   `db:"phone" json:"phone"`
	BillingAddressStreet      *string   `db:"billing_address_street" json:"billingAddressStreet"`
	BillingAddressCity        *string   `db:"billing_address_city" json:"billingAddressCity"`
	BillingAddressState       *string   `db:"billing_address_state" json:"billingAddressState"`
	BillingAddressPostalCode  *string   `db:"billing_address_postal_code" json:"billingAddressPostalCode"`
	BillingAddressCountry     *string   `db:"billing_address_country" json:"billingAddressCountry"`
	ShippingAddressStreet     *string   `db:"shipping_address_street" json:"shippingAddressStreet"`
	ShippingAddressCity       *string   `db:"shipping_address_city" json:"shippingAddressCity"`
	ShippingAddressState      *string   `db:"shipping_address_state" json:"shippingAddressState"`
	ShippingAddressPostalCode *string   `db:"shipping_address_postal_code" json:"shippingAddressPostalCode"`
	ShippingAddressCountry    *string   `db:"shipping_address_country" json:"shippingAddressCountry"`
	Description               *string   `db:"description" json:"description"`
	CreatedByID               *int64    `db:"created_by_id" json:"createdById"`
	AssignedToID              *int64    `db:"assigned_to_id" json:"assignedToId"`
	CreatedAt                 time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt                 time.Time `db:"updated_at" json:"updatedAt"`

	CreatedBy     *UserSummary  `db:"-" json:"createdBy,omitempty"`
	AssignedTo    *UserSummary  `db:"-" json:"assignedTo,omitempty"`
	Contacts      []Contact     `db:"-" json:"contacts,omitempty"`
	Opportunities []Opportunity `db:"-" json:"opportunities,omitempty"`
	Projects      []Project     `db:"-" json:"projects,omitempty"`
	Tickets       []Ticket      `db:"-" json:"tickets,omitempty"`
}

type AccountSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

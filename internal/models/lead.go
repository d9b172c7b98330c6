package models

import "time"

type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "New"
	LeadStatusContacted    LeadStatus = "Contacted"
	LeadStatusQualified    LeadStatus = "Qualified"
	LeadStatusProposalSent LeadStatus = "Proposal Sent"
	LeadStatusNegotiation  LeadStatus = "Negotiation"
	LeadStatusLost         LeadStatus = "Lost"
	LeadStatusUnqualified  LeadStatus = "Unqualified"
)

var LeadStatuses = []LeadStatus{
	LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusProposalSent,
	LeadStatusNegotiation, LeadStatusLost, LeadStatusUnqualified,
}

func (s LeadStatus) Valid() bool {
	return oneOf(s, LeadStatuses)
}

// Convertible reports whether a lead in this status may still become an opportunity.
func (s LeadStatus) Convertible() bool {
	return s != LeadStatusLost && s != LeadStatusUnqualified
}

type LeadSource string

const (
	LeadSourceWebsite       LeadSource = "Website"
	LeadSourceReferral      LeadSource = "Referral"
	LeadSourceColdCall      LeadSource = "Cold Call"
	LeadSourceEmailCampaign LeadSource = "Email Campaign"
	LeadSourceSocialMedia   LeadSource = "Social Media"
	LeadSourcePaidAd        LeadSource = "Paid Ad"
	LeadSourceEvent         LeadSource = "Event"
	LeadSourceOther         LeadSource = "Other"
)

var LeadSources = []LeadSource{
	LeadSourceWebsite, LeadSourceReferral, LeadSourceColdCall, LeadSourceEmailCampaign,
	LeadSourceSocialMedia, LeadSourcePaidAd, LeadSourceEvent, LeadSourceOther,
}

func (s LeadSource) Valid() bool {
	return oneOf(s, LeadSources)
}

type Lead struct {
	ID             int64       `db:"id" json:"id"`
	FirstName      string      `db:"first_name" json:"firstName"`
	LastName       string      `db:"last_name" json:"lastName"`
	Company        *string     `db:"company" json:"company"`
	Email          string      `db:"email" json:"email"`
	Phone          *string     `db:"phone" json:"phone"`
	Status         LeadStatus  `db:"status" json:"status"`
	Source         *LeadSource `db:"source" json:"source"`
	Notes          *string     `db:"notes" json:"notes"`
	EstimatedValue *float64    `db:"estimated_value" json:"estimatedValue"`
	CreatedByID    *int64      `db:"created_by_id" json:"createdById"`
	AssignedToID   *int64      `db:"assigned_to_id" json:"assignedToId"`
	CreatedAt      time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updatedAt"`

	CreatedBy  *UserSummary `db:"-" json:"createdBy,omitempty"`
	AssignedTo *UserSummary `db:"-" json:"assignedTo,omitempty"`
}

func (l *Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}

func oneOf[T comparable](v T, values []T) bool {
	for _, candidate := range values {
		if v == candidate {
			return true
		}
	}
	return false
}

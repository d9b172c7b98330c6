package models

import "time"

type OpportunityStage string

const (
	StageProspecting      OpportunityStage = "Prospecting"
	StageQualification    OpportunityStage = "Qualification"
	StageNeedsAnalysis    OpportunityStage = "Needs Analysis"
	StageValueProposition OpportunityStage = "Value Proposition"
	StageProposalSent     OpportunityStage = "Proposal/Price Quote Sent"
	StageNegotiation      OpportunityStage = "Negotiation/Review"
	StageClosedWon        OpportunityStage = "Closed Won"
	StageClosedLost       OpportunityStage = "Closed Lost"
)

var OpportunityStages = []OpportunityStage{
	StageProspecting, StageQualification, StageNeedsAnalysis, StageValueProposition,
	StageProposalSent, StageNegotiation, StageClosedWon, StageClosedLost,
}

func (s OpportunityStage) Valid() bool {
	return oneOf(s, OpportunityStages)
}

type Opportunity struct {
	ID                int64            `db:"id" json:"id"`
	Name              string           `db:"name" json:"name"`
	AccountID         *string          `db:"account_id" json:"accountId"`
	ContactID         *string          `db:"contact_id" json:"contactId"`
	Stage             OpportunityStage `db:"stage" json:"stage"`
	Value             *float64         `db:"value" json:"value"`
	ExpectedCloseDate *Date            `db:"expected_close_date" json:"expectedCloseDate"`
	Description       *string          `db:"description" json:"description"`
	LostReason        *string          `db:"lost_reason" json:"lostReason"`
	CreatedByID       *int64           `db:"created_by_id" json:"createdById"`
	AssignedToID      *int64           `db:"assigned_to_id" json:"assignedToId"`
	CreatedAt         time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updatedAt"`

	Account    *AccountSummary `db:"-" json:"account,omitempty"`
	Contact    *ContactSummary `db:"-" json:"contact,omitempty"`
	CreatedBy  *UserSummary    `db:"-" json:"createdBy,omitempty"`
	AssignedTo *UserSummary    `db:"-" json:"assignedTo,omitempty"`
}

package service

import (
	"context"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/validator"
	"github.com/jmoiron/sqlx"
)

type LeadFields struct {
	Company        *string            `json:"company"`
	Phone          *string            `json:"phone"`
	Status         *models.LeadStatus `json:"status"`
	Source         *models.LeadSource `json:"source"`
	Notes          *string            `json:"notes"`
	EstimatedValue *float64           `json:"estimatedValue"`
	AssignedToID   *int64             `json:"assignedToId"`
}

type CreateLeadInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	LeadFields
}

type UpdateLeadInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	LeadFields
}

func (f *LeadFields) validate(v *validator.Validator) {
	v.Check(validator.MaxRunesPtr(f.Company, 255), "Company must not exceed 255 characters.")
	v.Check(validator.MaxRunesPtr(f.Phone, 50), "Phone number must not exceed 50 characters.")
	if f.Status != nil {
		v.Check(f.Status.Valid(), "Invalid lead status.")
	}
	if f.Source != nil {
		v.Check(f.Source.Valid(), "Invalid lead source.")
	}
	if f.EstimatedValue != nil {
		v.Check(*f.EstimatedValue >= 0, "Estimated value cannot be negative.")
	}
}

func (f *LeadFields) apply(lead *models.Lead) {
	set(&lead.Company, f.Company)
	set(&lead.Phone, f.Phone)
	assign(&lead.Status, f.Status)
	set(&lead.Source, f.Source)
	set(&lead.Notes, f.Notes)
	set(&lead.EstimatedValue, f.EstimatedValue)
	set(&lead.AssignedToID, f.AssignedToID)
}

func validateEmail(v *validator.Validator, email string) {
	v.Check(validator.NotBlank(email), "Email should not be empty.")
	v.Check(validator.IsEmail(email), "Please provide a valid email address.")
}

// ConvertLeadInput turns a lead into an opportunity. CreateAccount and
// CreateContact default to true when omitted.
type ConvertLeadInput struct {
	OpportunityName  string                   `json:"opportunityName"`
	CreateAccount    *bool                    `json:"createAccount"`
	AccountID        *string                  `json:"accountId"`
	CreateContact    *bool                    `json:"createContact"`
	ContactID        *string                  `json:"contactId"`
	OpportunityStage *models.OpportunityStage `json:"opportunityStage"`
	OpportunityValue *float64                 `json:"opportunityValue"`
}

func (in *ConvertLeadInput) createAccount() bool {
	return in.CreateAccount == nil || *in.CreateAccount
}

func (in *ConvertLeadInput) createContact() bool {
	return in.CreateContact == nil || *in.CreateContact
}

func (in *ConvertLeadInput) validate(v *validator.Validator) {
	v.Check(validator.NotBlank(in.OpportunityName), "Opportunity name is required.")
	v.Check(validator.MaxRunes(in.OpportunityName, 255), "Opportunity name must not exceed 255 characters.")
	v.Check(in.createAccount() || in.AccountID != nil, "Account ID is required when not creating a new account.")
	v.Check(in.createContact() || in.ContactID != nil, "Contact ID is required when not creating a new contact.")
	if in.OpportunityStage != nil {
		v.Check(in.OpportunityStage.Valid(), "Invalid opportunity stage.")
		v.Check(*in.OpportunityStage != models.StageClosedLost, "A lead cannot be converted into a lost opportunity.")
	}
	if in.OpportunityValue != nil {
		v.Check(*in.OpportunityValue >= 0, "Opportunity value cannot be negative.")
	}
}

// LeadConversion is everything a conversion touched.
type LeadConversion struct {
	Lead        *models.Lead        `json:"lead"`
	Account     *models.Account     `json:"account,omitempty"`
	Contact     *models.Contact     `json:"contact,omitempty"`
	Opportunity *models.Opportunity `json:"opportunity"`
}

type LeadService struct {
	Leads         repository.LeadRepository
	Accounts      repository.AccountRepository
	Contacts      repository.ContactRepository
	Opportunities repository.OpportunityRepository
	Exists        EntityExistenceChecker
	Tx            TxRunner
	Events        EventPublisher
}

func NewLeadService(svc *LeadService) *LeadService {
	return &LeadService{
		Leads:         svc.Leads,
		Accounts:      svc.Accounts,
		Contacts:      svc.Contacts,
		Opportunities: svc.Opportunities,
		Exists:        svc.Exists,
		Tx:            svc.Tx,
		Events:        svc.Events,
	}
}

func leadConflict(email string) func() error {
	return func() error {
		return apperr.Conflict("Lead with email '%s' already exists.", email)
	}
}

func (s *LeadService) Create(ctx context.Context, input *CreateLeadInput, actorID int64) (*models.Lead, error) {
	var v validator.Validator
	validatePersonName(&v, "First name", input.FirstName)
	validatePersonName(&v, "Last name", input.LastName)
	validateEmail(&v, input.Email)
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if input.AssignedToID != nil {
		if err := requireUser(ctx, s.Exists, *input.AssignedToID, "Assigned To"); err != nil {
			return nil, err
		}
	}

	lead := &models.Lead{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       normalizeEmail(input.Email),
		Status:      models.LeadStatusNew,
		CreatedByID: &actorID,
	}
	input.apply(lead)

	if err := s.Leads.Insert(ctx, lead); err != nil {
		return nil, writeError(err, leadConflict(lead.Email), "create lead")
	}

	announceAssignment(s.Events, models.KindLead, formatID(lead.ID), lead.FullName(), nil, lead.AssignedToID, actorID)

	return s.get(ctx, lead.ID)
}

func (s *LeadService) FindAll(ctx context.Context, page models.Page) (*models.PageResult[models.Lead], error) {
	leads, total, err := s.Leads.List(ctx, page)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve leads.")
	}

	return models.NewPageResult(leads, total, page), nil
}

func (s *LeadService) FindOne(ctx context.Context, id int64) (*models.Lead, error) {
	return s.get(ctx, id)
}

func (s *LeadService) Update(ctx context.Context, id int64, input *UpdateLeadInput, actorID int64) (*models.Lead, error) {
	lead, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var v validator.Validator
	if input.FirstName != nil {
		validatePersonName(&v, "First name", *input.FirstName)
	}
	if input.LastName != nil {
		validatePersonName(&v, "Last name", *input.LastName)
	}
	if input.Email != nil {
		validateEmail(&v, *input.Email)
	}
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if changed(lead.AssignedToID, input.AssignedToID) {
		if err := requireUser(ctx, s.Exists, *input.AssignedToID, "Assigned To"); err != nil {
			return nil, err
		}
	}

	previousAssignee := lead.AssignedToID
	assign(&lead.FirstName, input.FirstName)
	assign(&lead.LastName, input.LastName)
	if input.Email != nil {
		lead.Email = normalizeEmail(*input.Email)
	}
	input.apply(lead)

	if err := s.Leads.Update(ctx, lead, nil); err != nil {
		return nil, writeError(err, leadConflict(lead.Email), "update lead")
	}

	announceAssignment(s.Events, models.KindLead, formatID(lead.ID), lead.FullName(), previousAssignee, lead.AssignedToID, actorID)

	return s.get(ctx, lead.ID)
}

func (s *LeadService) Remove(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	n, err := s.Leads.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err, "Failed to delete lead.")
	}
	if n == 0 {
		return apperr.NotFound("Lead with ID %d not found.", id)
	}

	return nil
}

// Convert creates the opportunity (and, on request, the account and contact)
// for a lead and marks the lead Qualified. All writes share one transaction.
func (s *LeadService) Convert(ctx context.Context, id int64, input *ConvertLeadInput, actorID int64) (*LeadConversion, error) {
	lead, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !lead.Status.Convertible() {
		return nil, apperr.BadRequest("Lead with status '%s' cannot be converted.", lead.Status)
	}

	var v validator.Validator
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if err := canonicalRef(models.KindAccount, input.AccountID); err != nil {
		return nil, err
	}
	if err := canonicalRef(models.KindContact, input.ContactID); err != nil {
		return nil, err
	}

	if !input.createAccount() {
		if err := requireExists(ctx, s.Exists, models.KindAccount, *input.AccountID, ""); err != nil {
			return nil, err
		}
	}

	if !input.createContact() {
		contact, found, err := s.Contacts.GetOne(ctx, *input.ContactID)
		if err != nil {
			return nil, apperr.Internal(err, "Failed to retrieve contact.")
		}
		if !found {
			return nil, apperr.NotFound("Contact with ID %s not found.", *input.ContactID)
		}
		if !input.createAccount() && !sameID(contact.AccountID, *input.AccountID) {
			return nil, apperr.BadRequest("Contact with ID %s does not belong to Account with ID %s.", contact.ID, *input.AccountID)
		}
	}

	result := &LeadConversion{}

	err = s.Tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		accountID := input.AccountID
		if input.createAccount() {
			account := &models.Account{
				Name:         lead.FullName(),
				Phone:        lead.Phone,
				CreatedByID:  &actorID,
				AssignedToID: lead.AssignedToID,
			}
			if lead.Company != nil && validator.NotBlank(*lead.Company) {
				account.Name = *lead.Company
			}
			if err := s.Accounts.Insert(ctx, account, tx); err != nil {
				return writeError(err, accountConflict(account.Name), "create account")
			}
			accountID = &account.ID
			result.Account = account
		}

		contactID := input.ContactID
		if input.createContact() {
			email := lead.Email
			contact := &models.Contact{
				FirstName:    lead.FirstName,
				LastName:     lead.LastName,
				Email:        &email,
				Phone:        lead.Phone,
				AccountID:    accountID,
				CreatedByID:  &actorID,
				AssignedToID: lead.AssignedToID,
			}
			if err := s.Contacts.Insert(ctx, contact, tx); err != nil {
				return writeError(err, contactConflict(contact), "create contact")
			}
			contactID = &contact.ID
			result.Contact = contact
		}

		opportunity := &models.Opportunity{
			Name:         input.OpportunityName,
			AccountID:    accountID,
			ContactID:    contactID,
			Stage:        models.StageProspecting,
			Value:        input.OpportunityValue,
			CreatedByID:  &actorID,
			AssignedToID: lead.AssignedToID,
		}
		assign(&opportunity.Stage, input.OpportunityStage)
		if opportunity.Value == nil {
			opportunity.Value = lead.EstimatedValue
		}
		if err := s.Opportunities.Insert(ctx, opportunity, tx); err != nil {
			return writeError(err, opportunityConflict(opportunity.Name), "create opportunity")
		}
		result.Opportunity = opportunity

		lead.Status = models.LeadStatusQualified
		if err := s.Leads.Update(ctx, lead, tx); err != nil {
			return writeError(err, leadConflict(lead.Email), "update lead")
		}
		result.Lead = lead

		return nil
	})
	if err != nil {
		return nil, passThrough(err, "convert lead")
	}

	return result, nil
}

func (s *LeadService) get(ctx context.Context, id int64) (*models.Lead, error) {
	lead, found, err := s.Leads.GetOne(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve lead.")
	}
	if !found {
		return nil, apperr.NotFound("Lead with ID %d not found.", id)
	}
	return lead, nil
}

// sameID compares UUIDs in their canonical form.
func sameID(current *string, other string) bool {
	if current == nil {
		return false
	}
	a, okA := models.KindAccount.CanonicalID(*current)
	b, okB := models.KindAccount.CanonicalID(other)
	return okA && okB && a == b
}

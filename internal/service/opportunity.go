package service

import (
	"context"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/validator"
)

type OpportunityFields struct {
	AccountID         *string                  `json:"accountId"`
	ContactID         *string                  `json:"contactId"`
	Stage             *models.OpportunityStage `json:"stage"`
	Value             *float64                 `json:"value"`
	ExpectedCloseDate *models.Date             `json:"expectedCloseDate"`
	Description       *string                  `json:"description"`
	LostReason        *string                  `json:"lostReason"`
	AssignedToID      *int64                   `json:"assignedToId"`
}

type CreateOpportunityInput struct {
	Name string `json:"name"`
	OpportunityFields
}

type UpdateOpportunityInput struct {
	Name *string `json:"name"`
	OpportunityFields
}

func (f *OpportunityFields) validate(v *validator.Validator) {
	if f.Stage != nil {
		v.Check(f.Stage.Valid(), "Invalid opportunity stage.")
		if *f.Stage == models.StageClosedLost {
			v.Check(f.LostReason != nil && validator.NotBlank(*f.LostReason), "Lost reason is required when opportunity stage is Closed Lost.")
		}
	}
	if f.Value != nil {
		v.Check(*f.Value >= 0, "Value cannot be negative.")
	}
}

// apply merges the fields and then enforces the lost reason rule on the
// resulting stage: only a Closed Lost opportunity keeps a lost reason.
func (f *OpportunityFields) apply(opportunity *models.Opportunity) {
	set(&opportunity.AccountID, f.AccountID)
	set(&opportunity.ContactID, f.ContactID)
	assign(&opportunity.Stage, f.Stage)
	set(&opportunity.Value, f.Value)
	set(&opportunity.ExpectedCloseDate, f.ExpectedCloseDate)
	set(&opportunity.Description, f.Description)
	set(&opportunity.AssignedToID, f.AssignedToID)

	if f.LostReason != nil && validator.NotBlank(*f.LostReason) {
		opportunity.LostReason = f.LostReason
	}
	if opportunity.Stage != models.StageClosedLost {
		opportunity.LostReason = nil
	}
}

func validateOpportunityName(v *validator.Validator, name string) {
	v.Check(validator.NotBlank(name), "Opportunity name should not be empty.")
	v.Check(validator.MaxRunes(name, 255), "Opportunity name must not exceed 255 characters.")
}

type OpportunityService struct {
	Opportunities repository.OpportunityRepository
	Contacts      repository.ContactRepository
	Exists        EntityExistenceChecker
	Events        EventPublisher
}

func NewOpportunityService(svc *OpportunityService) *OpportunityService {
	return &OpportunityService{
		Opportunities: svc.Opportunities,
		Contacts:      svc.Contacts,
		Exists:        svc.Exists,
		Events:        svc.Events,
	}
}

func opportunityConflict(name string) func() error {
	return func() error {
		return apperr.Conflict("Opportunity with name '%s' already exists for this account.", name)
	}
}

func (s *OpportunityService) Create(ctx context.Context, input *CreateOpportunityInput, actorID int64) (*models.Opportunity, error) {
	var v validator.Validator
	validateOpportunityName(&v, input.Name)
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	opportunity := &models.Opportunity{
		Name:        input.Name,
		Stage:       models.StageProspecting,
		CreatedByID: &actorID,
	}

	if err := s.checkReferences(ctx, opportunity, &input.OpportunityFields); err != nil {
		return nil, err
	}

	input.apply(opportunity)

	if err := s.checkContactAccount(ctx, opportunity); err != nil {
		return nil, err
	}

	if err := s.Opportunities.Insert(ctx, opportunity, nil); err != nil {
		return nil, writeError(err, opportunityConflict(opportunity.Name), "create opportunity")
	}

	announceAssignment(s.Events, models.KindOpportunity, formatID(opportunity.ID), opportunity.Name, nil, opportunity.AssignedToID, actorID)

	return s.get(ctx, opportunity.ID)
}

func (s *OpportunityService) FindAll(ctx context.Context, page models.Page) (*models.PageResult[models.Opportunity], error) {
	opportunities, total, err := s.Opportunities.List(ctx, page)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve opportunities.")
	}

	return models.NewPageResult(opportunities, total, page), nil
}

func (s *OpportunityService) FindOne(ctx context.Context, id int64) (*models.Opportunity, error) {
	return s.get(ctx, id)
}

func (s *OpportunityService) Update(ctx context.Context, id int64, input *UpdateOpportunityInput, actorID int64) (*models.Opportunity, error) {
	opportunity, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var v validator.Validator
	if input.Name != nil {
		validateOpportunityName(&v, *input.Name)
	}
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if err := s.checkReferences(ctx, opportunity, &input.OpportunityFields); err != nil {
		return nil, err
	}

	previousAssignee := opportunity.AssignedToID
	assign(&opportunity.Name, input.Name)
	input.apply(opportunity)

	if err := s.checkContactAccount(ctx, opportunity); err != nil {
		return nil, err
	}

	if err := s.Opportunities.Update(ctx, opportunity); err != nil {
		return nil, writeError(err, opportunityConflict(opportunity.Name), "update opportunity")
	}

	announceAssignment(s.Events, models.KindOpportunity, formatID(opportunity.ID), opportunity.Name, previousAssignee, opportunity.AssignedToID, actorID)

	return s.get(ctx, opportunity.ID)
}

func (s *OpportunityService) Remove(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	n, err := s.Opportunities.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err, "Failed to delete opportunity.")
	}
	if n == 0 {
		return apperr.NotFound("Opportunity with ID %d not found.", id)
	}

	return nil
}

func (s *OpportunityService) checkReferences(ctx context.Context, current *models.Opportunity, input *OpportunityFields) error {
	if err := canonicalRef(models.KindAccount, input.AccountID); err != nil {
		return err
	}
	if err := canonicalRef(models.KindContact, input.ContactID); err != nil {
		return err
	}

	if changed(current.AccountID, input.AccountID) {
		if err := requireExists(ctx, s.Exists, models.KindAccount, *input.AccountID, ""); err != nil {
			return err
		}
	}
	if changed(current.ContactID, input.ContactID) {
		if err := requireExists(ctx, s.Exists, models.KindContact, *input.ContactID, ""); err != nil {
			return err
		}
	}
	if changed(current.AssignedToID, input.AssignedToID) {
		if err := requireUser(ctx, s.Exists, *input.AssignedToID, "Assigned To"); err != nil {
			return err
		}
	}
	return nil
}

// checkContactAccount requires the contact to belong to the opportunity's
// account when both are set.
func (s *OpportunityService) checkContactAccount(ctx context.Context, opportunity *models.Opportunity) error {
	if opportunity.AccountID == nil || opportunity.ContactID == nil {
		return nil
	}

	contact, found, err := s.Contacts.GetOne(ctx, *opportunity.ContactID)
	if err != nil {
		return apperr.Internal(err, "Failed to retrieve contact.")
	}
	if !found {
		return apperr.NotFound("Contact with ID %s not found.", *opportunity.ContactID)
	}

	if !sameID(contact.AccountID, *opportunity.AccountID) {
		return apperr.BadRequest("Contact with ID %s does not belong to Account with ID %s.", contact.ID, *opportunity.AccountID)
	}

	return nil
}

func (s *OpportunityService) get(ctx context.Context, id int64) (*models.Opportunity, error) {
	opportunity, found, err := s.Opportunities.GetOne(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve opportunity.")
	}
	if !found {
		return nil, apperr.NotFound("Opportunity with ID %d not found.", id)
	}
	return opportunity, nil
}

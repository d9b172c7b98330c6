package service

import (
	"context"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/validator"
)

type ContactFields struct {
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	JobTitle     *string `json:"jobTitle"`
	Description  *string `json:"description"`
	AccountID    *string `json:"accountId"`
	AssignedToID *int64  `json:"assignedToId"`
}

type CreateContactInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ContactFields
}

type UpdateContactInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	ContactFields
}

func (f *ContactFields) validate(v *validator.Validator) {
	if f.Email != nil {
		v.Check(validator.IsEmail(*f.Email), "Please provide a valid email address.")
	}
	v.Check(validator.MaxRunesPtr(f.Phone, 50), "Phone number must not exceed 50 characters.")
	v.Check(validator.MaxRunesPtr(f.JobTitle, 255), "Job title must not exceed 255 characters.")
}

func (f *ContactFields) apply(contact *models.Contact) {
	if f.Email != nil {
		email := normalizeEmail(*f.Email)
		contact.Email = &email
	}
	set(&contact.Phone, f.Phone)
	set(&contact.JobTitle, f.JobTitle)
	set(&contact.Description, f.Description)
	set(&contact.AccountID, f.AccountID)
	set(&contact.AssignedToID, f.AssignedToID)
}

func validatePersonName(v *validator.Validator, field, value string) {
	v.Check(validator.NotBlank(value), field+" should not be empty.")
	v.Check(validator.MaxRunes(value, 255), field+" must not exceed 255 characters.")
}

type ContactService struct {
	Contacts      repository.ContactRepository
	Opportunities repository.OpportunityRepository
	Exists        EntityExistenceChecker
	Events        EventPublisher
}

func NewContactService(svc *ContactService) *ContactService {
	return &ContactService{
		Contacts:      svc.Contacts,
		Opportunities: svc.Opportunities,
		Exists:        svc.Exists,
		Events:        svc.Events,
	}
}

func contactConflict(contact *models.Contact) func() error {
	return func() error {
		return apperr.Conflict("Contact with email '%s' already exists for this account.", deref(contact.Email))
	}
}

func (s *ContactService) Create(ctx context.Context, input *CreateContactInput, actorID int64) (*models.Contact, error) {
	var v validator.Validator
	validatePersonName(&v, "First name", input.FirstName)
	validatePersonName(&v, "Last name", input.LastName)
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if err := s.checkReferences(ctx, nil, &input.ContactFields); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		CreatedByID: &actorID,
	}
	input.apply(contact)

	if err := s.Contacts.Insert(ctx, contact, nil); err != nil {
		return nil, writeError(err, contactConflict(contact), "create contact")
	}

	announceAssignment(s.Events, models.KindContact, contact.ID, contact.FullName(), nil, contact.AssignedToID, actorID)

	return s.get(ctx, contact.ID)
}

func (s *ContactService) FindAll(ctx context.Context, page models.Page) (*models.PageResult[models.Contact], error) {
	contacts, total, err := s.Contacts.List(ctx, page)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve contacts.")
	}

	return models.NewPageResult(contacts, total, page), nil
}

func (s *ContactService) FindOne(ctx context.Context, id string) (*models.Contact, error) {
	contact, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if contact.Opportunities, err = s.Opportunities.ListByContact(ctx, id); err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve contact opportunities.")
	}

	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, id string, input *UpdateContactInput, actorID int64) (*models.Contact, error) {
	contact, err := s.get(ctx, id)
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
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if err := s.checkReferences(ctx, contact, &input.ContactFields); err != nil {
		return nil, err
	}

	previousAssignee := contact.AssignedToID
	assign(&contact.FirstName, input.FirstName)
	assign(&contact.LastName, input.LastName)
	input.apply(contact)

	if err := s.Contacts.Update(ctx, contact); err != nil {
		return nil, writeError(err, contactConflict(contact), "update contact")
	}

	announceAssignment(s.Events, models.KindContact, contact.ID, contact.FullName(), previousAssignee, contact.AssignedToID, actorID)

	return s.get(ctx, contact.ID)
}

// Remove soft-deletes the contact; the row stays in storage with deleted_at set.
func (s *ContactService) Remove(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	n, err := s.Contacts.SoftDelete(ctx, id)
	if err != nil {
		return apperr.Internal(err, "Failed to delete contact.")
	}
	if n == 0 {
		return apperr.NotFound("Contact with ID %s not found.", id)
	}

	return nil
}

// checkReferences resolves the account and assignee when they are new or changed.
func (s *ContactService) checkReferences(ctx context.Context, current *models.Contact, input *ContactFields) error {
	if err := canonicalRef(models.KindAccount, input.AccountID); err != nil {
		return err
	}

	var currentAccount *string
	var currentAssignee *int64
	if current != nil {
		currentAccount, currentAssignee = current.AccountID, current.AssignedToID
	}

	if changed(currentAccount, input.AccountID) {
		if err := requireExists(ctx, s.Exists, models.KindAccount, *input.AccountID, ""); err != nil {
			return err
		}
	}
	if changed(currentAssignee, input.AssignedToID) {
		if err := requireUser(ctx, s.Exists, *input.AssignedToID, "Assigned To"); err != nil {
			return err
		}
	}

	return nil
}

func (s *ContactService) get(ctx context.Context, id string) (*models.Contact, error) {
	contact, found, err := s.Contacts.GetOne(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve contact.")
	}
	if !found {
		return nil, apperr.NotFound("Contact with ID %s not found.", id)
	}
	return contact, nil
}

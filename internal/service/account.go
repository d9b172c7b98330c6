package service

import (
	"context"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/validator"
)

// AccountFields are the optional attributes shared by create and update.
type AccountFields struct {
	Industry                  *string `json:"industry"`
	Website                   *string `json:"website"`
	Phone                     *string `json:"phone"`
	BillingAddressStreet      *string `json:"billingAddressStreet"`
	BillingAddressCity        *string `json:"billingAddressCity"`
	BillingAddressState       *string `json:"billingAddressState"`
	BillingAddressPostalCode  *string `json:"billingAddressPostalCode"`
	BillingAddressCountry     *string `json:"billingAddressCountry"`
	ShippingAddressStreet     *string `json:"shippingAddressStreet"`
	ShippingAddressCity       *string `json:"shippingAddressCity"`
	ShippingAddressState      *string `json:"shippingAddressState"`
	ShippingAddressPostalCode *string `json:"shippingAddressPostalCode"`
	ShippingAddressCountry    *string `json:"shippingAddressCountry"`
	Description               *string `json:"description"`
	AssignedToID              *int64  `json:"assignedToId"`
}

type CreateAccountInput struct {
	Name string `json:"name"`
	AccountFields
}

type UpdateAccountInput struct {
	Name *string `json:"name"`
	AccountFields
}

func (f *AccountFields) validate(v *validator.Validator) {
	v.Check(validator.MaxRunesPtr(f.Industry, 100), "Industry must not exceed 100 characters.")
	v.Check(validator.MaxRunesPtr(f.Website, 255), "Website must not exceed 255 characters.")
	v.Check(f.Website == nil || validator.IsURL(*f.Website), "Website must be a valid URL.")
	v.Check(validator.MaxRunesPtr(f.Phone, 50), "Phone number must not exceed 50 characters.")

	for _, street := range []*string{f.BillingAddressStreet, f.ShippingAddressStreet} {
		v.Check(validator.MaxRunesPtr(street, 255), "Address street must not exceed 255 characters.")
	}
	for _, part := range []*string{f.BillingAddressCity, f.BillingAddressState, f.BillingAddressCountry,
		f.ShippingAddressCity, f.ShippingAddressState, f.ShippingAddressCountry} {
		v.Check(validator.MaxRunesPtr(part, 100), "Address city, state and country must not exceed 100 characters.")
	}
	for _, code := range []*string{f.BillingAddressPostalCode, f.ShippingAddressPostalCode} {
		v.Check(validator.MaxRunesPtr(code, 20), "Postal code must not exceed 20 characters.")
	}
}

func (f *AccountFields) apply(account *models.Account) {
	set(&account.Industry, f.Industry)
	set(&account.Website, f.Website)
	set(&account.Phone, f.Phone)
	set(&account.BillingAddressStreet, f.BillingAddressStreet)
	set(&account.BillingAddressCity, f.BillingAddressCity)
	set(&account.BillingAddressState, f.BillingAddressState)
	set(&account.BillingAddressPostalCode, f.BillingAddressPostalCode)
	set(&account.BillingAddressCountry, f.BillingAddressCountry)
	set(&account.ShippingAddressStreet, f.ShippingAddressStreet)
	set(&account.ShippingAddressCity, f.ShippingAddressCity)
	set(&account.ShippingAddressState, f.ShippingAddressState)
	set(&account.ShippingAddressPostalCode, f.ShippingAddressPostalCode)
	set(&account.ShippingAddressCountry, f.ShippingAddressCountry)
	set(&account.Description, f.Description)
	set(&account.AssignedToID, f.AssignedToID)
}

func validateAccountName(v *validator.Validator, name string) {
	v.Check(validator.NotBlank(name), "Account name should not be empty.")
	v.Check(validator.MaxRunes(name, 255), "Account name must not exceed 255 characters.")
}

type AccountService struct {
	Accounts      repository.AccountRepository
	Contacts      repository.ContactRepository
	Opportunities repository.OpportunityRepository
	Projects      repository.ProjectRepository
	Tickets       repository.TicketRepository
	Exists        EntityExistenceChecker
	Events        EventPublisher
}

func NewAccountService(svc *AccountService) *AccountService {
	return &AccountService{
		Accounts:      svc.Accounts,
		Contacts:      svc.Contacts,
		Opportunities: svc.Opportunities,
		Projects:      svc.Projects,
		Tickets:       svc.Tickets,
		Exists:        svc.Exists,
		Events:        svc.Events,
	}
}

func accountConflict(name string) func() error {
	return func() error {
		return apperr.Conflict("Account with name '%s' already exists.", name)
	}
}

// Create relies on the accounts_name_key constraint for uniqueness; a
// duplicate name surfaces as Conflict even when two requests race.
func (s *AccountService) Create(ctx context.Context, input *CreateAccountInput, actorID int64) (*models.Account, error) {
	var v validator.Validator
	validateAccountName(&v, input.Name)
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if input.AssignedToID != nil {
		if err := requireUser(ctx, s.Exists, *input.AssignedToID, "Assigned To"); err != nil {
			return nil, err
		}
	}

	account := &models.Account{
		Name:        input.Name,
		CreatedByID: &actorID,
	}
	input.apply(account)

	if err := s.Accounts.Insert(ctx, account, nil); err != nil {
		return nil, writeError(err, accountConflict(input.Name), "create account")
	}

	announceAssignment(s.Events, models.KindAccount, account.ID, account.Name, nil, account.AssignedToID, actorID)

	return s.get(ctx, account.ID)
}

func (s *AccountService) FindAll(ctx context.Context, page models.Page) (*models.PageResult[models.Account], error) {
	accounts, total, err := s.Accounts.List(ctx, page)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve accounts.")
	}

	return models.NewPageResult(accounts, total, page), nil
}

// FindOne loads the account with its people, contacts, opportunities, projects and tickets.
func (s *AccountService) FindOne(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.Contacts, err = s.Contacts.ListByAccount(ctx, id); err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve account contacts.")
	}
	if account.Opportunities, err = s.Opportunities.ListByAccount(ctx, id); err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve account opportunities.")
	}
	if account.Projects, err = s.Projects.ListByAccount(ctx, id); err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve account projects.")
	}
	if account.Tickets, err = s.Tickets.ListByAccount(ctx, id); err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve account tickets.")
	}

	return account, nil
}

func (s *AccountService) Update(ctx context.Context, id string, input *UpdateAccountInput, actorID int64) (*models.Account, error) {
	account, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var v validator.Validator
	if input.Name != nil {
		validateAccountName(&v, *input.Name)
	}
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if changed(account.AssignedToID, input.AssignedToID) {
		if err := requireUser(ctx, s.Exists, *input.AssignedToID, "Assigned To"); err != nil {
			return nil, err
		}
	}

	previousAssignee := account.AssignedToID
	assign(&account.Name, input.Name)
	input.apply(account)

	if err := s.Accounts.Update(ctx, account); err != nil {
		return nil, writeError(err, accountConflict(account.Name), "update account")
	}

	announceAssignment(s.Events, models.KindAccount, account.ID, account.Name, previousAssignee, account.AssignedToID, actorID)

	return s.get(ctx, account.ID)
}

func (s *AccountService) Remove(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	n, err := s.Accounts.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err, "Failed to delete account.")
	}
	if n == 0 {
		return apperr.NotFound("Account with ID %s not found.", id)
	}

	return nil
}

func (s *AccountService) get(ctx context.Context, id string) (*models.Account, error) {
	account, found, err := s.Accounts.GetOne(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve account.")
	}
	if !found {
		return nil, apperr.NotFound("Account with ID %s not found.", id)
	}
	return account, nil
}

package service

import (
	"context"
	"testing"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/mocks"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testContactID      = "0b6f1e9a-2c3d-4e5f-8a9b-0c1d2e3f4a5b"
	testOtherAccountID = "11111111-2222-4333-8444-555555555555"
)

func newOpportunityService() (*OpportunityService, *mocks.MockOpportunityRepo, *mocks.MockContactRepo, *mocks.MockRegistry) {
	repo := new(mocks.MockOpportunityRepo)
	contacts := new(mocks.MockContactRepo)
	registry := new(mocks.MockRegistry)

	svc := NewOpportunityService(&OpportunityService{
		Opportunities: repo,
		Contacts:      contacts,
		Exists:        registry,
	})
	return svc, repo, contacts, registry
}

func TestOpportunityCreate_ClosedLostNeedsReason(t *testing.T) {
	svc, repo, _, _ := newOpportunityService()

	input := &CreateOpportunityInput{Name: "Renewal"}
	input.Stage = ptr(models.StageClosedLost)
	input.LostReason = ptr("   ")

	_, err := svc.Create(context.Background(), input, 1)

	require.EqualError(t, err, "bad_request: Lost reason is required when opportunity stage is Closed Lost.")
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpportunityCreate_DefaultsToProspecting(t *testing.T) {
	svc, repo, _, _ := newOpportunityService()

	input := &CreateOpportunityInput{Name: "Renewal"}
	input.LostReason = ptr("Budget")

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(o *models.Opportunity) bool {
		return o.Stage == models.StageProspecting && o.LostReason == nil && *o.CreatedByID == 1
	}), mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Opportunity).ID = 5
	}).Return(nil)
	repo.On("GetOne", mock.Anything, int64(5)).Return(&models.Opportunity{ID: 5, Name: "Renewal"}, true, nil)

	opportunity, err := svc.Create(context.Background(), input, 1)

	require.NoError(t, err)
	require.Equal(t, int64(5), opportunity.ID)
	repo.AssertExpectations(t)
}

func TestOpportunityCreate_ContactMustBelongToAccount(t *testing.T) {
	svc, repo, contacts, registry := newOpportunityService()

	registry.On("Exists", mock.Anything, models.KindAccount, testAccountID).Return(true, nil)
	registry.On("Exists", mock.Anything, models.KindContact, testContactID).Return(true, nil)
	contacts.On("GetOne", mock.Anything, testContactID).
		Return(&models.Contact{ID: testContactID, AccountID: ptr(testOtherAccountID)}, true, nil)

	input := &CreateOpportunityInput{Name: "Renewal"}
	input.AccountID = ptr(testAccountID)
	input.ContactID = ptr(testContactID)

	_, err := svc.Create(context.Background(), input, 1)

	require.EqualError(t, err, "bad_request: Contact with ID "+testContactID+" does not belong to Account with ID "+testAccountID+".")
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpportunityCreate_Duplicate(t *testing.T) {
	svc, repo, _, _ := newOpportunityService()
	repo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Create(context.Background(), &CreateOpportunityInput{Name: "Renewal"}, 1)

	require.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestOpportunityUpdate_LeavingClosedLostClearsReason(t *testing.T) {
	svc, repo, _, _ := newOpportunityService()

	current := &models.Opportunity{ID: 3, Name: "Renewal", Stage: models.StageClosedLost, LostReason: ptr("Budget")}
	repo.On("GetOne", mock.Anything, int64(3)).Return(current, true, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *models.Opportunity) bool {
		return o.Stage == models.StageNegotiation && o.LostReason == nil
	})).Return(nil)

	input := &UpdateOpportunityInput{}
	input.Stage = ptr(models.StageNegotiation)

	_, err := svc.Update(context.Background(), 3, input, 1)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOpportunityUpdate_KeepsReasonWhileClosedLost(t *testing.T) {
	svc, repo, _, _ := newOpportunityService()

	current := &models.Opportunity{ID: 3, Name: "Renewal", Stage: models.StageClosedLost, LostReason: ptr("Budget")}
	repo.On("GetOne", mock.Anything, int64(3)).Return(current, true, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *models.Opportunity) bool {
		return o.Name == "Renewal 2025" && o.LostReason != nil && *o.LostReason == "Budget"
	})).Return(nil)

	_, err := svc.Update(context.Background(), 3, &UpdateOpportunityInput{Name: ptr("Renewal 2025")}, 1)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOpportunityRemove_NotFound(t *testing.T) {
	svc, repo, _, _ := newOpportunityService()
	repo.On("GetOne", mock.Anything, int64(99)).Return(nil, false, nil)

	err := svc.Remove(context.Background(), 99)

	require.EqualError(t, err, "not_found: Opportunity with ID 99 not found.")
}

func TestOpportunityUpdate_ReasonIgnoredUnlessClosedLost(t *testing.T) {
	svc, repo, _, _ := newOpportunityService()

	current := &models.Opportunity{ID: 3, Name: "Renewal", Stage: models.StageNegotiation}
	repo.On("GetOne", mock.Anything, int64(3)).Return(current, true, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *models.Opportunity) bool {
		return o.Stage == models.StageNegotiation && o.LostReason == nil
	})).Return(nil)

	input := &UpdateOpportunityInput{}
	input.LostReason = ptr("Budget")

	_, err := svc.Update(context.Background(), 3, input, 1)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

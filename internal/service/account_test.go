package service

import (
	"context"
	"testing"

	"github.com/cradoe/crm/internal/mocks"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAccountService() (*AccountService, *mocks.MockAccountRepo, *mocks.MockRegistry) {
	accounts := new(mocks.MockAccountRepo)
	registry := new(mocks.MockRegistry)

	svc := NewAccountService(&AccountService{
		Accounts: accounts,
		Exists:   registry,
	})
	return svc, accounts, registry
}

func TestAccountCreate_DuplicateName(t *testing.T) {
	svc, accounts, _ := newAccountService()

	accounts.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	account, err := svc.Create(context.Background(), &CreateAccountInput{Name: "Acme"}, 1)

	require.Nil(t, account)
	require.EqualError(t, err, "conflict: Account with name 'Acme' already exists.")
	accounts.AssertNotCalled(t, "GetOne", mock.Anything, mock.Anything)
}

func TestAccountCreate_UnknownAssignee(t *testing.T) {
	svc, accounts, registry := newAccountService()

	registry.On("Exists", mock.Anything, models.KindUser, "9").Return(false, nil)

	input := &CreateAccountInput{Name: "Acme"}
	input.AssignedToID = ptr(int64(9))

	_, err := svc.Create(context.Background(), input, 1)

	require.EqualError(t, err, "not_found: User with ID 9 not found (Assigned To).")
	accounts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountCreate_SetsCreator(t *testing.T) {
	svc, accounts, _ := newAccountService()

	accounts.On("Insert", mock.Anything, mock.MatchedBy(func(a *models.Account) bool {
		return a.Name == "Acme" && a.CreatedByID != nil && *a.CreatedByID == 3
	}), mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Account).ID = testAccountID
	}).Return(nil)
	accounts.On("GetOne", mock.Anything, testAccountID).Return(&models.Account{ID: testAccountID, Name: "Acme"}, true, nil)

	account, err := svc.Create(context.Background(), &CreateAccountInput{Name: "Acme"}, 3)

	require.NoError(t, err)
	require.Equal(t, testAccountID, account.ID)
	accounts.AssertExpectations(t)
}

func TestAccountRemove_NotFound(t *testing.T) {
	svc, accounts, _ := newAccountService()

	accounts.On("GetOne", mock.Anything, testAccountID).Return(nil, false, nil)

	err := svc.Remove(context.Background(), testAccountID)

	require.EqualError(t, err, "not_found: Account with ID "+testAccountID+" not found.")
	accounts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

package mocks

import (
	"context"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Insert(ctx context.Context, account *models.Account, tx *sqlx.Tx) error {
	args := m.Called(ctx, account, tx)
	return args.Error(0)
}

func (m *MockAccountRepo) GetOne(ctx context.Context, id string) (*models.Account, bool, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*models.Account)
	return account, args.Bool(1), args.Error(2)
}

func (m *MockAccountRepo) List(ctx context.Context, page models.Page) ([]models.Account, int, error) {
	args := m.Called(ctx, page)
	accounts, _ := args.Get(0).([]models.Account)
	return accounts, args.Int(1), args.Error(2)
}

func (m *MockAccountRepo) Update(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepo) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Insert(ctx context.Context, contact *models.Contact, tx *sqlx.Tx) error {
	args := m.Called(ctx, contact, tx)
	return args.Error(0)
}

func (m *MockContactRepo) GetOne(ctx context.Context, id string) (*models.Contact, bool, error) {
	args := m.Called(ctx, id)
	contact, _ := args.Get(0).(*models.Contact)
	return contact, args.Bool(1), args.Error(2)
}

func (m *MockContactRepo) List(ctx context.Context, page models.Page) ([]models.Contact, int, error) {
	args := m.Called(ctx, page)
	contacts, _ := args.Get(0).([]models.Contact)
	return contacts, args.Int(1), args.Error(2)
}

func (m *MockContactRepo) ListByAccount(ctx context.Context, accountID string) ([]models.Contact, error) {
	args := m.Called(ctx, accountID)
	contacts, _ := args.Get(0).([]models.Contact)
	return contacts, args.Error(1)
}

func (m *MockContactRepo) Update(ctx context.Context, contact *models.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepo) SoftDelete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

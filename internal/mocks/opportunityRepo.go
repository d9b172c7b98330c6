package mocks

import (
	"context"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type MockOpportunityRepo struct {
	mock.Mock
}

func (m *MockOpportunityRepo) Insert(ctx context.Context, opportunity *models.Opportunity, tx *sqlx.Tx) error {
	args := m.Called(ctx, opportunity, tx)
	return args.Error(0)
}

func (m *MockOpportunityRepo) GetOne(ctx context.Context, id int64) (*models.Opportunity, bool, error) {
	args := m.Called(ctx, id)
	opportunity, _ := args.Get(0).(*models.Opportunity)
	return opportunity, args.Bool(1), args.Error(2)
}

func (m *MockOpportunityRepo) List(ctx context.Context, page models.Page) ([]models.Opportunity, int, error) {
	args := m.Called(ctx, page)
	opportunities, _ := args.Get(0).([]models.Opportunity)
	return opportunities, args.Int(1), args.Error(2)
}

func (m *MockOpportunityRepo) ListByAccount(ctx context.Context, accountID string) ([]models.Opportunity, error) {
	args := m.Called(ctx, accountID)
	opportunities, _ := args.Get(0).([]models.Opportunity)
	return opportunities, args.Error(1)
}

func (m *MockOpportunityRepo) ListByContact(ctx context.Context, contactID string) ([]models.Opportunity, error) {
	args := m.Called(ctx, contactID)
	opportunities, _ := args.Get(0).([]models.Opportunity)
	return opportunities, args.Error(1)
}

func (m *MockOpportunityRepo) Update(ctx context.Context, opportunity *models.Opportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepo) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

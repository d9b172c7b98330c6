package mocks

import (
	"context"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type MockLeadRepo struct {
	mock.Mock
}

func (m *MockLeadRepo) Insert(ctx context.Context, lead *models.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepo) GetOne(ctx context.Context, id int64) (*models.Lead, bool, error) {
	args := m.Called(ctx, id)
	lead, _ := args.Get(0).(*models.Lead)
	return lead, args.Bool(1), args.Error(2)
}

func (m *MockLeadRepo) List(ctx context.Context, page models.Page) ([]models.Lead, int, error) {
	args := m.Called(ctx, page)
	leads, _ := args.Get(0).([]models.Lead)
	return leads, args.Int(1), args.Error(2)
}

func (m *MockLeadRepo) Update(ctx context.Context, lead *models.Lead, tx *sqlx.Tx) error {
	args := m.Called(ctx, lead, tx)
	return args.Error(0)
}

func (m *MockLeadRepo) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

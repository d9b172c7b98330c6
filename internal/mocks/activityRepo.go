package mocks

import (
	"context"

	"github.com/cradoe/crm/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Insert(ctx context.Context, activity *models.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepo) GetOne(ctx context.Context, id string) (*models.Activity, bool, error) {
	args := m.Called(ctx, id)
	activity, _ := args.Get(0).(*models.Activity)
	return activity, args.Bool(1), args.Error(2)
}

func (m *MockActivityRepo) ListByRelated(ctx context.Context, kind models.EntityKind, id string, page models.Page) ([]models.Activity, int, error) {
	args := m.Called(ctx, kind, id, page)
	activities, _ := args.Get(0).([]models.Activity)
	return activities, args.Int(1), args.Error(2)
}

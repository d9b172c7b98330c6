package mocks

import (
	"context"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Insert(ctx context.Context, project *models.Project, tx *sqlx.Tx) error {
	args := m.Called(ctx, project, tx)
	return args.Error(0)
}

func (m *MockProjectRepo) GetOne(ctx context.Context, id string) (*models.Project, bool, error) {
	args := m.Called(ctx, id)
	project, _ := args.Get(0).(*models.Project)
	return project, args.Bool(1), args.Error(2)
}

func (m *MockProjectRepo) List(ctx context.Context, page models.Page) ([]models.Project, int, error) {
	args := m.Called(ctx, page)
	projects, _ := args.Get(0).([]models.Project)
	return projects, args.Int(1), args.Error(2)
}

func (m *MockProjectRepo) ListByAccount(ctx context.Context, accountID string) ([]models.Project, error) {
	args := m.Called(ctx, accountID)
	projects, _ := args.Get(0).([]models.Project)
	return projects, args.Error(1)
}

func (m *MockProjectRepo) Update(ctx context.Context, project *models.Project, tx *sqlx.Tx) error {
	args := m.Called(ctx, project, tx)
	return args.Error(0)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepo) SetTeamMembers(ctx context.Context, projectID string, userIDs []int64, tx *sqlx.Tx) error {
	args := m.Called(ctx, projectID, userIDs, tx)
	return args.Error(0)
}

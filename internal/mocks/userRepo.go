package mocks

import (
	"context"

	"github.com/cradoe/crm/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Insert(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetOne(ctx context.Context, id int64) (*models.User, bool, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Bool(1), args.Error(2)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Bool(1), args.Error(2)
}

func (m *MockUserRepo) List(ctx context.Context, page models.Page) ([]models.User, int, error) {
	args := m.Called(ctx, page)
	users, _ := args.Get(0).([]models.User)
	return users, args.Int(1), args.Error(2)
}

func (m *MockUserRepo) Summaries(ctx context.Context, ids []int64) ([]models.UserSummary, error) {
	args := m.Called(ctx, ids)
	summaries, _ := args.Get(0).([]models.UserSummary)
	return summaries, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

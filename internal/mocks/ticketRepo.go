package mocks

import (
	"context"

	"github.com/cradoe/crm/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepo struct {
	mock.Mock
}

func (m *MockTicketRepo) Insert(ctx context.Context, ticket *models.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepo) GetOne(ctx context.Context, id string) (*models.Ticket, bool, error) {
	args := m.Called(ctx, id)
	ticket, _ := args.Get(0).(*models.Ticket)
	return ticket, args.Bool(1), args.Error(2)
}

func (m *MockTicketRepo) List(ctx context.Context, page models.Page) ([]models.Ticket, int, error) {
	args := m.Called(ctx, page)
	tickets, _ := args.Get(0).([]models.Ticket)
	return tickets, args.Int(1), args.Error(2)
}

func (m *MockTicketRepo) ListByAccount(ctx context.Context, accountID string) ([]models.Ticket, error) {
	args := m.Called(ctx, accountID)
	tickets, _ := args.Get(0).([]models.Ticket)
	return tickets, args.Error(1)
}

func (m *MockTicketRepo) Update(ctx context.Context, ticket *models.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepo) SoftDelete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepo) InsertComment(ctx context.Context, comment *models.TicketComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockTicketRepo) ListComments(ctx context.Context, ticketID string, page models.Page) ([]models.TicketComment, int, error) {
	args := m.Called(ctx, ticketID, page)
	comments, _ := args.Get(0).([]models.TicketComment)
	return comments, args.Int(1), args.Error(2)
}

package service

import (
	"context"
	"testing"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/mocks"
	"github.com/cradoe/crm/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testTicketID  = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	testProjectID = "3c2b1a09-8f7e-4d6c-9b5a-493827161504"
)

func newTicketService() (*TicketService, *mocks.MockTicketRepo, *mocks.MockProjectRepo, *mocks.MockRegistry) {
	tickets := new(mocks.MockTicketRepo)
	projects := new(mocks.MockProjectRepo)
	registry := new(mocks.MockRegistry)

	svc := NewTicketService(&TicketService{
		Tickets:  tickets,
		Projects: projects,
		Exists:   registry,
	})
	return svc, tickets, projects, registry
}

func TestTicketCreate_Defaults(t *testing.T) {
	svc, tickets, _, _ := newTicketService()

	tickets.On("Insert", mock.Anything, mock.MatchedBy(func(tk *models.Ticket) bool {
		return tk.Status == models.TicketStatusOpen && tk.Priority == models.TicketPriorityMedium && *tk.CreatedByID == 4
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Ticket).ID = testTicketID
	}).Return(nil)
	tickets.On("GetOne", mock.Anything, testTicketID).Return(&models.Ticket{ID: testTicketID}, true, nil)

	ticket, err := svc.Create(context.Background(), &CreateTicketInput{Title: "Login broken", Description: "500 on submit"}, 4)

	require.NoError(t, err)
	require.Equal(t, testTicketID, ticket.ID)
	tickets.AssertExpectations(t)
}

func TestTicketCreate_ProjectFromOtherAccount(t *testing.T) {
	svc, tickets, projects, registry := newTicketService()

	registry.On("Exists", mock.Anything, models.KindAccount, testAccountID).Return(true, nil)
	registry.On("Exists", mock.Anything, models.KindProject, testProjectID).Return(true, nil)
	projects.On("GetOne", mock.Anything, testProjectID).
		Return(&models.Project{ID: testProjectID, AccountID: testOtherAccountID}, true, nil)

	input := &CreateTicketInput{Title: "Login broken", Description: "500 on submit"}
	input.AccountID = ptr(testAccountID)
	input.ProjectID = ptr(testProjectID)

	_, err := svc.Create(context.Background(), input, 4)

	require.EqualError(t, err, "bad_request: Project does not belong to the specified account.")
	tickets.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestTicketUpdate_ProjectFromOtherAccount(t *testing.T) {
	svc, tickets, projects, registry := newTicketService()

	current := &models.Ticket{ID: testTicketID, Title: "Login broken", AccountID: ptr(testAccountID)}
	tickets.On("GetOne", mock.Anything, testTicketID).Return(current, true, nil)
	registry.On("Exists", mock.Anything, models.KindProject, testProjectID).Return(true, nil)
	projects.On("GetOne", mock.Anything, testProjectID).
		Return(&models.Project{ID: testProjectID, AccountID: testOtherAccountID}, true, nil)

	input := &UpdateTicketInput{}
	input.ProjectID = ptr(testProjectID)

	_, err := svc.Update(context.Background(), testTicketID, input, 4)

	require.EqualError(t, err, "bad_request: Project does not belong to the ticket's current account.")
	tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTicketAddComment(t *testing.T) {
	t.Run("ticket missing", func(t *testing.T) {
		svc, tickets, _, _ := newTicketService()
		tickets.On("GetOne", mock.Anything, testTicketID).Return(nil, false, nil)

		_, err := svc.AddComment(context.Background(), testTicketID, &AddCommentInput{Content: "hi"}, 4)

		require.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("blank content", func(t *testing.T) {
		svc, tickets, _, _ := newTicketService()
		tickets.On("GetOne", mock.Anything, testTicketID).Return(&models.Ticket{ID: testTicketID}, true, nil)

		_, err := svc.AddComment(context.Background(), testTicketID, &AddCommentInput{Content: " "}, 4)

		require.EqualError(t, err, "bad_request: Comment content should not be empty.")
	})

	t.Run("stores author", func(t *testing.T) {
		svc, tickets, _, _ := newTicketService()
		tickets.On("GetOne", mock.Anything, testTicketID).Return(&models.Ticket{ID: testTicketID}, true, nil)
		tickets.On("InsertComment", mock.Anything, mock.MatchedBy(func(c *models.TicketComment) bool {
			return c.TicketID == testTicketID && *c.AuthorID == 4
		})).Return(nil)

		comment, err := svc.AddComment(context.Background(), testTicketID, &AddCommentInput{Content: "Looking into it"}, 4)

		require.NoError(t, err)
		require.Equal(t, "Looking into it", comment.Content)
	})
}

func TestTicketCreate_StoresCanonicalAccountID(t *testing.T) {
	svc, tickets, _, registry := newTicketService()

	registry.On("Exists", mock.Anything, models.KindAccount, testAccountID).Return(true, nil)
	tickets.On("Insert", mock.Anything, mock.MatchedBy(func(tk *models.Ticket) bool {
		return tk.AccountID != nil && *tk.AccountID == testAccountID
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Ticket).ID = testTicketID
	}).Return(nil)
	tickets.On("GetOne", mock.Anything, testTicketID).Return(&models.Ticket{ID: testTicketID}, true, nil)

	input := &CreateTicketInput{Title: "Login broken", Description: "500 on submit"}
	input.AccountID = ptr(" 6F1C2B7E-3D4A-4C8E-9B2F-1A2B3C4D5E6F ")

	_, err := svc.Create(context.Background(), input, 4)

	require.NoError(t, err)
	tickets.AssertExpectations(t)
	registry.AssertExpectations(t)
}

func TestTicketCreate_MalformedProjectID(t *testing.T) {
	svc, tickets, _, registry := newTicketService()

	input := &CreateTicketInput{Title: "Login broken", Description: "500 on submit"}
	input.ProjectID = ptr("not-a-uuid")

	_, err := svc.Create(context.Background(), input, 4)

	require.EqualError(t, err, "not_found: Project with ID not-a-uuid not found.")
	registry.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	tickets.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

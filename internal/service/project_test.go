package service

import (
	"context"
	"testing"
	"time"

	"github.com/cradoe/crm/internal/mocks"
	"github.com/cradoe/crm/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProjectService() (*ProjectService, *mocks.MockProjectRepo, *mocks.MockUserRepo, *mocks.MockRegistry) {
	projects := new(mocks.MockProjectRepo)
	users := new(mocks.MockUserRepo)
	registry := new(mocks.MockRegistry)

	svc := NewProjectService(&ProjectService{
		Projects: projects,
		Users:    users,
		Exists:   registry,
		Tx:       mocks.MockTx{},
	})
	return svc, projects, users, registry
}

func day(s string) *models.Date {
	t, _ := time.Parse(time.DateOnly, s)
	d := models.NewDate(t)
	return &d
}

func TestProjectCreate_EndBeforeStart(t *testing.T) {
	svc, projects, _, registry := newProjectService()
	registry.On("Exists", mock.Anything, models.KindAccount, testAccountID).Return(true, nil)

	input := &CreateProjectInput{Name: "Rollout", AccountID: testAccountID}
	input.StartDate = day("2024-06-10")
	input.EndDate = day("2024-06-01")

	_, err := svc.Create(context.Background(), input, 1)

	require.EqualError(t, err, "bad_request: End date cannot be before start date.")
	projects.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectCreate_UnknownTeamMember(t *testing.T) {
	svc, _, users, registry := newProjectService()
	registry.On("Exists", mock.Anything, models.KindAccount, testAccountID).Return(true, nil)
	users.On("Summaries", mock.Anything, []int64{2, 3}).Return([]models.UserSummary{{ID: 2}}, nil)

	input := &CreateProjectInput{Name: "Rollout", AccountID: testAccountID}
	input.TeamMemberIDs = []int64{2, 3}

	_, err := svc.Create(context.Background(), input, 1)

	require.EqualError(t, err, "not_found: User with ID 3 not found (Team Member).")
}

func TestProjectCreate_WithTeam(t *testing.T) {
	svc, projects, users, registry := newProjectService()
	registry.On("Exists", mock.Anything, models.KindAccount, testAccountID).Return(true, nil)
	registry.On("Exists", mock.Anything, models.KindUser, "2").Return(true, nil)
	users.On("Summaries", mock.Anything, []int64{2, 3}).Return([]models.UserSummary{{ID: 2}, {ID: 3}}, nil)

	projects.On("Insert", mock.Anything, mock.MatchedBy(func(p *models.Project) bool {
		return p.Status == models.ProjectStatusNotStarted && *p.ProjectManagerID == 2
	}), mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Project).ID = testProjectID
	}).Return(nil)
	projects.On("SetTeamMembers", mock.Anything, testProjectID, []int64{2, 3}, mock.Anything).Return(nil)
	projects.On("GetOne", mock.Anything, testProjectID).Return(&models.Project{ID: testProjectID}, true, nil)

	input := &CreateProjectInput{Name: "Rollout", AccountID: testAccountID}
	input.ProjectManagerID = ptr(int64(2))
	input.TeamMemberIDs = []int64{2, 3}

	project, err := svc.Create(context.Background(), input, 1)

	require.NoError(t, err)
	require.Equal(t, testProjectID, project.ID)
	projects.AssertExpectations(t)
}

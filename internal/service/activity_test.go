package service

import (
	"context"
	"testing"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/events"
	"github.com/cradoe/crm/internal/mocks"
	"github.com/cradoe/crm/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAccountID = "6f1c2b7e-3d4a-4c8e-9b2f-1a2b3c4d5e6f"

func ptr[T any](v T) *T {
	return &v
}

func newActivityService() (*ActivityService, *mocks.MockActivityRepo, *mocks.MockRegistry, *mocks.MockPublisher) {
	repo := new(mocks.MockActivityRepo)
	registry := new(mocks.MockRegistry)
	publisher := new(mocks.MockPublisher)

	svc := NewActivityService(&ActivityService{
		Activities: repo,
		Exists:     registry,
		Resolver:   registry,
		Events:     publisher,
	})
	return svc, repo, registry, publisher
}

func validActivity(kind models.EntityKind, id string) *CreateActivityInput {
	return &CreateActivityInput{
		Type:      models.ActivityCall,
		Body:      "Discussed renewal",
		RelatedTo: &models.RelatedTo{EntityType: kind, EntityID: id},
	}
}

func TestActivityCreate_ValidationFailsFirst(t *testing.T) {
	svc, _, registry, _ := newActivityService()

	_, err := svc.Create(context.Background(), &CreateActivityInput{Type: "SMOKE_SIGNAL"}, 1)

	require.True(t, apperr.Is(err, apperr.KindBadRequest))
	registry.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivityCreate_MissingCreator(t *testing.T) {
	svc, _, registry, _ := newActivityService()
	registry.On("Exists", mock.Anything, models.KindUser, "1").Return(false, nil)

	_, err := svc.Create(context.Background(), validActivity("NOT_A_KIND", "x"), 1)

	require.True(t, apperr.Is(err, apperr.KindNotFound))
	require.EqualError(t, err, "not_found: User with ID 1 not found (Creator).")
}

func TestActivityCreate_MissingAssigneeBeforeKind(t *testing.T) {
	svc, _, registry, _ := newActivityService()
	registry.On("Exists", mock.Anything, models.KindUser, "1").Return(true, nil)
	registry.On("Exists", mock.Anything, models.KindUser, "9").Return(false, nil)

	input := validActivity("NOT_A_KIND", "x")
	input.AssignedToID = ptr(int64(9))

	_, err := svc.Create(context.Background(), input, 1)

	require.EqualError(t, err, "not_found: User with ID 9 not found (Assigned To).")
}

func TestActivityCreate_InvalidKind(t *testing.T) {
	for _, kind := range []models.EntityKind{"NOT_A_KIND", models.KindUser} {
		t.Run(string(kind), func(t *testing.T) {
			svc, _, registry, _ := newActivityService()
			registry.On("Exists", mock.Anything, models.KindUser, "1").Return(true, nil)

			_, err := svc.Create(context.Background(), validActivity(kind, "1"), 1)

			require.EqualError(t, err, "bad_request: invalid related entity type")
		})
	}
}

func TestActivityCreate_RelatedMissing(t *testing.T) {
	svc, repo, registry, _ := newActivityService()
	registry.On("Exists", mock.Anything, models.KindUser, "1").Return(true, nil)
	registry.On("Exists", mock.Anything, models.KindLead, "404").Return(false, nil)

	_, err := svc.Create(context.Background(), validActivity("lead", "404"), 1)

	require.EqualError(t, err, "not_found: Lead with ID 404 not found.")
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestActivityCreate_StoresCanonicalRelation(t *testing.T) {
	svc, repo, registry, publisher := newActivityService()
	upper := "6F1C2B7E-3D4A-4C8E-9B2F-1A2B3C4D5E6F"

	registry.On("Exists", mock.Anything, models.KindUser, "1").Return(true, nil)
	registry.On("Exists", mock.Anything, models.KindUser, "2").Return(true, nil)
	registry.On("Exists", mock.Anything, models.KindAccount, upper).Return(true, nil)

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(a *models.Activity) bool {
		return a.RelatedKind == models.KindAccount && a.RelatedID == testAccountID && !a.OccurredAt.IsZero()
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Activity).ID = "act-1"
	}).Return(nil)

	stored := &models.Activity{ID: "act-1", RelatedKind: models.KindAccount, RelatedID: testAccountID}
	repo.On("GetOne", mock.Anything, "act-1").Return(stored, true, nil)
	registry.On("Describe", mock.Anything, models.KindAccount, testAccountID).
		Return(&models.RelatedEntity{Kind: models.KindAccount, ID: testAccountID, Label: "Acme"}, nil)

	publisher.On("Publish", events.TopicActivityLogged, "act-1", mock.Anything).Return()
	publisher.On("Publish", events.TopicRecordAssigned, "act-1", mock.MatchedBy(func(e events.RecordAssigned) bool {
		return e.Kind == models.KindActivity && e.AssigneeID == 2 && e.AssignedByID == 1
	})).Return()

	input := validActivity("Account", upper)
	input.AssignedToID = ptr(int64(2))

	activity, err := svc.Create(context.Background(), input, 1)

	require.NoError(t, err)
	require.Equal(t, "Acme", activity.RelatedTo.Label)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestActivityFindByRelatedEntity(t *testing.T) {
	page := models.NewPage(1, 10)

	t.Run("invalid kind", func(t *testing.T) {
		svc, _, _, _ := newActivityService()

		_, err := svc.FindByRelatedEntity(context.Background(), "USER", "1", page)

		require.True(t, apperr.Is(err, apperr.KindBadRequest))
	})

	t.Run("malformed id is an empty page", func(t *testing.T) {
		svc, repo, _, _ := newActivityService()

		result, err := svc.FindByRelatedEntity(context.Background(), "lead", "abc", page)

		require.NoError(t, err)
		require.Empty(t, result.Data)
		require.Zero(t, result.Total)
		repo.AssertNotCalled(t, "ListByRelated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lists by canonical id", func(t *testing.T) {
		svc, repo, _, _ := newActivityService()
		repo.On("ListByRelated", mock.Anything, models.KindLead, "7", page).
			Return([]models.Activity{{ID: "a"}, {ID: "b"}}, 2, nil)

		result, err := svc.FindByRelatedEntity(context.Background(), "Lead", " 007 ", page)

		require.NoError(t, err)
		require.Len(t, result.Data, 2)
		require.Equal(t, 2, result.Total)
	})
}

package service

import (
	"context"
	"time"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/events"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/validator"
)

type CreateActivityInput struct {
	Type            models.ActivityType `json:"type"`
	Subject         *string             `json:"subject"`
	Body            string              `json:"body"`
	OccurredAt      *time.Time          `json:"occurredAt"`
	DurationMinutes *int                `json:"durationMinutes"`
	Outcome         *string             `json:"outcome"`
	AssignedToID    *int64              `json:"assignedToId"`
	RelatedTo       *models.RelatedTo   `json:"relatedTo"`
}

func (in *CreateActivityInput) validate(v *validator.Validator) {
	v.Check(in.Type.Valid(), "Invalid activity type.")
	v.Check(validator.NotBlank(in.Body), "Body should not be empty.")
	v.Check(validator.MaxRunesPtr(in.Subject, 255), "Subject must not exceed 255 characters.")
	if in.DurationMinutes != nil {
		v.Check(*in.DurationMinutes >= 1, "Duration must be at least 1 minute.")
	}
	v.Check(in.RelatedTo != nil, "Related entity is required.")
	if in.RelatedTo != nil {
		v.Check(validator.NotBlank(in.RelatedTo.EntityID), "Related entity ID should not be empty.")
	}
}

type ActivityService struct {
	Activities repository.ActivityRepository
	Exists     EntityExistenceChecker
	Resolver   RelatedEntityResolver
	Events     EventPublisher
}

func NewActivityService(svc *ActivityService) *ActivityService {
	return &ActivityService{
		Activities: svc.Activities,
		Exists:     svc.Exists,
		Resolver:   svc.Resolver,
		Events:     svc.Events,
	}
}

// Create logs an interaction against exactly one record. Checks run in a
// fixed order: creator, assignee, related kind, related record.
func (s *ActivityService) Create(ctx context.Context, input *CreateActivityInput, creatorID int64) (*models.Activity, error) {
	var v validator.Validator
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if err := requireUser(ctx, s.Exists, creatorID, "Creator"); err != nil {
		return nil, err
	}

	if input.AssignedToID != nil {
		if err := requireUser(ctx, s.Exists, *input.AssignedToID, "Assigned To"); err != nil {
			return nil, err
		}
	}

	kind, ok := models.ParseEntityKind(string(input.RelatedTo.EntityType))
	if !ok || !kind.Relatable() {
		return nil, apperr.BadRequest("invalid related entity type")
	}

	if err := requireExists(ctx, s.Exists, kind, input.RelatedTo.EntityID, ""); err != nil {
		return nil, err
	}

	// existence implies the id parses
	relatedID, _ := kind.CanonicalID(input.RelatedTo.EntityID)

	occurredAt := time.Now().UTC()
	if input.OccurredAt != nil {
		occurredAt = input.OccurredAt.UTC()
	}

	activity := &models.Activity{
		Type:            input.Type,
		Subject:         input.Subject,
		Body:            input.Body,
		OccurredAt:      occurredAt,
		DurationMinutes: input.DurationMinutes,
		Outcome:         input.Outcome,
		CreatedByID:     &creatorID,
		AssignedToID:    input.AssignedToID,
		RelatedKind:     kind,
		RelatedID:       relatedID,
	}

	if err := s.Activities.Insert(ctx, activity); err != nil {
		return nil, writeError(err, nil, "log activity")
	}

	if s.Events != nil {
		s.Events.Publish(events.TopicActivityLogged, activity.ID, events.ActivityLogged{
			ActivityID:  activity.ID,
			Type:        activity.Type,
			RelatedKind: kind,
			RelatedID:   relatedID,
			CreatedByID: creatorID,
			OccurredAt:  occurredAt,
		})
	}

	label := string(activity.Type)
	if activity.Subject != nil {
		label = *activity.Subject
	}
	announceAssignment(s.Events, models.KindActivity, activity.ID, label, nil, activity.AssignedToID, creatorID)

	return s.FindOne(ctx, activity.ID)
}

// FindByRelatedEntity lists the timeline of one record, newest interaction first.
func (s *ActivityService) FindByRelatedEntity(ctx context.Context, entityType, entityID string, page models.Page) (*models.PageResult[models.Activity], error) {
	kind, ok := models.ParseEntityKind(entityType)
	if !ok || !kind.Relatable() {
		return nil, apperr.BadRequest("invalid related entity type")
	}

	// an id that cannot belong to the kind has no activities
	relatedID, ok := kind.CanonicalID(entityID)
	if !ok {
		return models.NewPageResult[models.Activity](nil, 0, page), nil
	}

	activities, total, err := s.Activities.ListByRelated(ctx, kind, relatedID, page)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve activities.")
	}

	return models.NewPageResult(activities, total, page), nil
}

func (s *ActivityService) FindOne(ctx context.Context, id string) (*models.Activity, error) {
	activity, found, err := s.Activities.GetOne(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve activity.")
	}
	if !found {
		return nil, apperr.NotFound("Activity with ID %s not found.", id)
	}

	related, err := s.Resolver.Describe(ctx, activity.RelatedKind, activity.RelatedID)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to resolve related %s.", kindName(activity.RelatedKind))
	}
	activity.RelatedTo = related

	return activity, nil
}

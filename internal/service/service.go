// Package service holds the business rules of the CRM: reference checks,
// uniqueness, the opportunity stage rules and the activity log.
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/events"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/jmoiron/sqlx"
)

// EntityExistenceChecker reports whether a record of the given kind exists.
// Services use it instead of reaching into each other's tables.
type EntityExistenceChecker interface {
	Exists(ctx context.Context, kind models.EntityKind, id string) (bool, error)
}

// RelatedEntityResolver labels the record an activity points at.
type RelatedEntityResolver interface {
	Describe(ctx context.Context, kind models.EntityKind, id string) (*models.RelatedEntity, error)
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type EventPublisher interface {
	Publish(topic, key string, payload any)
}

var kindNames = map[models.EntityKind]string{
	models.KindUser:        "User",
	models.KindLead:        "Lead",
	models.KindOpportunity: "Opportunity",
	models.KindAccount:     "Account",
	models.KindContact:     "Contact",
	models.KindProject:     "Project",
	models.KindTicket:      "Ticket",
	models.KindActivity:    "Activity",
}

func kindName(kind models.EntityKind) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return string(kind)
}

// requireExists fails with NotFound when the referenced record is absent.
// role, when set, says why the record was needed ("Assigned To").
func requireExists(ctx context.Context, checker EntityExistenceChecker, kind models.EntityKind, id, role string) error {
	found, err := checker.Exists(ctx, kind, id)
	if err != nil {
		return apperr.Internal(err, "Failed to look up %s", strings.ToLower(kindName(kind)))
	}

	if !found {
		if role != "" {
			return apperr.NotFound("%s with ID %s not found (%s).", kindName(kind), id, role)
		}
		return apperr.NotFound("%s with ID %s not found.", kindName(kind), id)
	}

	return nil
}

// canonicalRef rewrites a referenced id to the form it is stored in. An id
// that does not parse cannot match any record.
func canonicalRef(kind models.EntityKind, id *string) error {
	if id == nil {
		return nil
	}

	canonical, ok := kind.CanonicalID(*id)
	if !ok {
		return apperr.NotFound("%s with ID %s not found.", kindName(kind), *id)
	}

	*id = canonical
	return nil
}

func requireUser(ctx context.Context, checker EntityExistenceChecker, id int64, role string) error {
	return requireExists(ctx, checker, models.KindUser, formatID(id), role)
}

// writeError translates a repository error from an insert or update.
func writeError(err error, conflict func() error, op string) error {
	switch {
	case repository.IsDuplicate(err) && conflict != nil:
		return conflict()
	case repository.IsReferenceMissing(err):
		return apperr.NotFound("A referenced record no longer exists.")
	default:
		return apperr.Internal(err, "Failed to %s. Please try again.", op)
	}
}

// passThrough keeps errors that already carry a kind.
func passThrough(err error, op string) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Internal(err, "Failed to %s. Please try again.", op)
}

func announceAssignment(publisher EventPublisher, kind models.EntityKind, id, label string, before, after *int64, actorID int64) {
	if publisher == nil || after == nil {
		return
	}
	if before != nil && *before == *after {
		return
	}

	publisher.Publish(events.TopicRecordAssigned, id, events.RecordAssigned{
		Kind:         kind,
		ID:           id,
		Label:        label,
		AssigneeID:   *after,
		AssignedByID: actorID,
		AssignedAt:   time.Now().UTC(),
	})
}

func changed[T comparable](current *T, next *T) bool {
	if next == nil {
		return false
	}
	return current == nil || *current != *next
}

// set copies src into dst when the caller sent a value.
func set[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

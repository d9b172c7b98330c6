// An activity is a write-once log of an interaction (call, e-mail, meeting...)
// attached to exactly one CRM record. The record is referenced through a
// tagged union, RelatedTo{Kind, ID}, instead of one nullable column per table,
// so "exactly one related record" holds by construction.
package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityCall    ActivityType = "CALL"
	ActivityEmail   ActivityType = "EMAIL"
	ActivityMeeting ActivityType = "MEETING"
	ActivityTask    ActivityType = "TASK"
	ActivityNote    ActivityType = "NOTE"
)

var ActivityTypes = []ActivityType{ActivityCall, ActivityEmail, ActivityMeeting, ActivityTask, ActivityNote}

func (t ActivityType) Valid() bool {
	return oneOf(t, ActivityTypes)
}

// EntityKind names a table that other records can point at.
type EntityKind string

const (
	KindLead        EntityKind = "LEAD"
	KindOpportunity EntityKind = "OPPORTUNITY"
	KindAccount     EntityKind = "ACCOUNT"
	KindContact     EntityKind = "CONTACT"
	KindProject     EntityKind = "PROJECT"
	KindTicket      EntityKind = "TICKET"

	// KindUser is only used for reference checks; activities cannot be related to users.
	KindUser EntityKind = "USER"

	// KindActivity names activities in events; activities cannot point at each other.
	KindActivity EntityKind = "ACTIVITY"
)

// RelatableKinds are the kinds an activity can be attached to.
var RelatableKinds = []EntityKind{KindLead, KindOpportunity, KindAccount, KindContact, KindProject, KindTicket}

// ParseEntityKind is case-insensitive so "lead", "Lead" and "LEAD" are all accepted.
func ParseEntityKind(s string) (EntityKind, bool) {
	kind := EntityKind(strings.ToUpper(strings.TrimSpace(s)))
	if kind == KindUser {
		return kind, true
	}
	return kind, oneOf(kind, RelatableKinds)
}

func (k EntityKind) Relatable() bool {
	return oneOf(k, RelatableKinds)
}

// IntegerKeyed reports whether rows of this kind use BIGSERIAL ids; all others are UUIDs.
func (k EntityKind) IntegerKeyed() bool {
	return k == KindLead || k == KindOpportunity || k == KindUser
}

// CanonicalID normalizes id to the form stored in the database.
// ok is false when id cannot be a key of this kind at all.
func (k EntityKind) CanonicalID(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if k.IntegerKeyed() {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil || n < 1 {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

type RelatedTo struct {
	EntityType EntityKind `json:"entityType"`
	EntityID   string     `json:"entityId"`
}

// RelatedEntity is the resolved target of an activity. Label is empty when the
// target has since been deleted.
type RelatedEntity struct {
	Kind  EntityKind `json:"entityType"`
	ID    string     `json:"entityId"`
	Label string     `json:"label,omitempty"`
}

type Activity struct {
	ID              string       `db:"id" json:"id"`
	Type            ActivityType `db:"type" json:"type"`
	Subject         *string      `db:"subject" json:"subject"`
	Body            string       `db:"body" json:"body"`
	OccurredAt      time.Time    `db:"occurred_at" json:"occurredAt"`
	DurationMinutes *int         `db:"duration_minutes" json:"durationMinutes"`
	Outcome         *string      `db:"outcome" json:"outcome"`
	CreatedByID     *int64       `db:"created_by_id" json:"createdById"`
	AssignedToID    *int64       `db:"assigned_to_id" json:"assignedToId"`
	RelatedKind     EntityKind   `db:"related_kind" json:"-"`
	RelatedID       string       `db:"related_id" json:"-"`
	CreatedAt       time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updatedAt"`

	RelatedTo  *RelatedEntity `db:"-" json:"relatedTo"`
	CreatedBy  *UserSummary   `db:"-" json:"createdBy,omitempty"`
	AssignedTo *UserSummary   `db:"-" json:"assignedTo,omitempty"`
}

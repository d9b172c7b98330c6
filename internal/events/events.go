package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cradoe/crm/internal/models"
)

const (
	// TopicUserRegistered carries a UserRegistered payload after self sign-up.
	TopicUserRegistered = "crm.user.registered"

	// TopicActivityLogged carries an ActivityLogged payload for every new activity.
	TopicActivityLogged = "crm.activity.logged"

	// TopicRecordAssigned carries a RecordAssigned payload whenever a record gets a new assignee.
	TopicRecordAssigned = "crm.record.assigned"
)

type UserRegistered struct {
	UserID       int64     `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type ActivityLogged struct {
	ActivityID  string              `json:"activityId"`
	Type        models.ActivityType `json:"type"`
	RelatedKind models.EntityKind   `json:"relatedKind"`
	RelatedID   string              `json:"relatedId"`
	CreatedByID int64               `json:"createdById"`
	OccurredAt  time.Time           `json:"occurredAt"`
}

type RecordAssigned struct {
	Kind         models.EntityKind `json:"kind"`
	ID           string            `json:"id"`
	Label        string            `json:"label"`
	AssigneeID   int64             `json:"assigneeId"`
	AssignedByID int64             `json:"assignedById"`
	AssignedAt   time.Time         `json:"assignedAt"`
}

type Producer interface {
	ProduceMessage(topic, key string, value []byte) error
}

type BackgroundRunner interface {
	BackgroundTask(r *http.Request, fn func() error)
}

// Publisher sends domain events in the background. Delivery is best effort:
// failures are reported and never fail the request that caused the event.
type Publisher struct {
	producer Producer
	runner   BackgroundRunner
}

func NewPublisher(producer Producer, runner BackgroundRunner) *Publisher {
	return &Publisher{producer: producer, runner: runner}
}

func (p *Publisher) Publish(topic, key string, payload any) {
	if p == nil || p.producer == nil {
		return
	}

	p.runner.BackgroundTask(nil, func() error {
		value, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding %s event: %w", topic, err)
		}

		if err := p.producer.ProduceMessage(topic, key, value); err != nil {
			return fmt.Errorf("publishing %s event %s: %w", topic, key, err)
		}

		return nil
	})
}

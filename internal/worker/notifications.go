package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cradoe/crm/internal/events"
)

const (
	topicUserRegistered = events.TopicUserRegistered
	topicRecordAssigned = events.TopicRecordAssigned
)

func (wk *Worker) handleUserRegistered(ctx context.Context, value []byte) error {
	var event events.UserRegistered
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("decoding user registered event: %w", err)
	}

	emailData := wk.Helper.NewEmailData()
	emailData["Name"] = event.Name
	emailData["Email"] = event.Email

	if err := wk.Mailer.Send(event.Email, emailData, "welcome.tmpl"); err != nil {
		return fmt.Errorf("sending welcome email to user %d: %w", event.UserID, err)
	}

	return nil
}

// handleRecordAssigned mails the assignee. Self-assignments and assignees
// deleted since the event was published are skipped.
func (wk *Worker) handleRecordAssigned(ctx context.Context, value []byte) error {
	var event events.RecordAssigned
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("decoding record assigned event: %w", err)
	}

	if event.AssigneeID == event.AssignedByID {
		return nil
	}

	user, found, err := wk.UserRepo.GetOne(ctx, event.AssigneeID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	emailData := wk.Helper.NewEmailData()
	emailData["Name"] = user.Name
	emailData["Kind"] = string(event.Kind)
	emailData["Label"] = event.Label
	emailData["AssignedAt"] = event.AssignedAt

	if err := wk.Mailer.Send(user.Email, emailData, "assignment.tmpl"); err != nil {
		return fmt.Errorf("sending assignment email to user %d: %w", user.ID, err)
	}

	return nil
}

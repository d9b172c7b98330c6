package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cradoe/crm/internal/mocks"
	"github.com/cradoe/crm/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	producer := &mocks.MockProducer{}
	runner := &mocks.MockHelper{}

	NewPublisher(producer, runner).Publish(TopicRecordAssigned, "12", RecordAssigned{
		Kind:       models.KindLead,
		ID:         "12",
		AssigneeID: 3,
	})

	produced := producer.Produced()
	require.Len(t, produced, 1)
	require.Equal(t, TopicRecordAssigned, produced[0].Topic)
	require.Equal(t, "12", produced[0].Key)

	var decoded RecordAssigned
	require.NoError(t, json.Unmarshal(produced[0].Value, &decoded))
	require.Equal(t, models.KindLead, decoded.Kind)
	require.Equal(t, int64(3), decoded.AssigneeID)
	require.Empty(t, runner.Errors)
}

func TestPublish_ProducerFailureIsReported(t *testing.T) {
	producer := &mocks.MockProducer{Err: errors.New("broker unavailable")}
	runner := &mocks.MockHelper{}

	NewPublisher(producer, runner).Publish(TopicUserRegistered, "1", UserRegistered{UserID: 1})

	require.Len(t, runner.Errors, 1)
	require.ErrorContains(t, runner.Errors[0], "broker unavailable")
}

func TestPublish_NilPublisher(t *testing.T) {
	var p *Publisher
	require.NotPanics(t, func() { p.Publish(TopicUserRegistered, "1", nil) })
}

package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/cradoe/crm/internal/helper"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/smtp"
	"github.com/cradoe/crm/internal/stream"
)

type Worker struct {
	KafkaStream *stream.KafkaStream
	UserRepo    repository.UserRepository
	Mailer      smtp.MailerInterface
	Helper      *helper.HelperRepository
	Logger      *slog.Logger
	Ctx         context.Context
}

const (
	// welcomeGroupID is used for workers that greet newly registered users
	welcomeGroupID = "crm-welcome-group"

	// assignmentGroupID is used for workers that tell users about records assigned to them
	assignmentGroupID = "crm-assignment-group"

	pollTimeoutMs = 100
)

// Our workers typically need access to the user store, the mailer and the kafka event stream
// worker-specific dependency can be passed as argument to the worker
func New(wk *Worker) *Worker {
	return &Worker{
		KafkaStream: wk.KafkaStream,
		UserRepo:    wk.UserRepo,
		Mailer:      wk.Mailer,
		Helper:      wk.Helper,
		Logger:      wk.Logger,
		Ctx:         wk.Ctx,
	}
}

// Run starts every worker in its own goroutine.
func (wk *Worker) Run() {
	go wk.consume(welcomeGroupID, topicUserRegistered, wk.handleUserRegistered)
	go wk.consume(assignmentGroupID, topicRecordAssigned, wk.handleRecordAssigned)
}

// consume polls topic until Ctx is cancelled. A message that fails to process
// is logged and skipped; the notifications are not worth blocking the topic for.
func (wk *Worker) consume(groupID, topic string, handle func(ctx context.Context, value []byte) error) {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: groupID,
		Topic:   topic,
	})
	if err != nil {
		wk.Logger.Error("creating consumer", "topic", topic, "error", err)
		return
	}
	defer consumer.Close()

	wk.Logger.Info("worker started", "topic", topic, "group", groupID)

	for {
		select {
		case <-wk.Ctx.Done():
			wk.Logger.Info("worker stopped", "topic", topic)
			return
		default:
		}

		event := consumer.Poll(pollTimeoutMs)
		switch e := event.(type) {
		case *kafka.Message:
			ctx, cancel := context.WithTimeout(wk.Ctx, 30*time.Second)
			if err := handle(ctx, e.Value); err != nil {
				wk.Logger.Error("processing message", "topic", topic, "partition", e.TopicPartition.String(), "error", err)
			}
			cancel()
		case kafka.Error:
			wk.Logger.Error("consumer error", "topic", topic, "error", e)
		default:
		}
	}
}

package stream

import (
	"log/slog"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const flushTimeoutMs = 5000

type KafkaStream struct {
	kafkaServers string
	logger       *slog.Logger

	mu       sync.Mutex
	producer *kafka.Producer
}

func New(kafkaServers string, logger *slog.Logger) *KafkaStream {
	return &KafkaStream{
		kafkaServers: kafkaServers,
		logger:       logger,
	}
}

// ProduceMessage queues a message on the shared producer. Delivery failures
// arrive asynchronously and are logged.
func (st *KafkaStream) ProduceMessage(topic, key string, value []byte) error {
	producer, err := st.getProducer()
	if err != nil {
		return err
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          value,
	}
	if key != "" {
		msg.Key = []byte(key)
	}

	return producer.Produce(msg, nil)
}

func (st *KafkaStream) getProducer() (*kafka.Producer, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.producer != nil {
		return st.producer, nil
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": st.kafkaServers})
	if err != nil {
		return nil, err
	}

	go st.deliveryReports(producer)

	st.producer = producer
	return producer, nil
}

func (st *KafkaStream) deliveryReports(producer *kafka.Producer) {
	for e := range producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				st.logger.Error("event delivery failed", "topic", *ev.TopicPartition.Topic, "error", ev.TopicPartition.Error)
			} else {
				st.logger.Debug("event delivered", "topic", *ev.TopicPartition.Topic, "offset", ev.TopicPartition.Offset.String())
			}
		case kafka.Error:
			st.logger.Error("kafka producer error", "error", ev)
		}
	}
}

// Close flushes queued messages and releases the producer.
func (st *KafkaStream) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.producer == nil {
		return
	}

	if remaining := st.producer.Flush(flushTimeoutMs); remaining > 0 {
		st.logger.Warn("kafka producer closed with undelivered events", "count", remaining)
	}
	st.producer.Close()
	st.producer = nil
}

type StreamConsumer struct {
	GroupId string
	Topic   string
}

func (st *KafkaStream) CreateConsumer(consumerStruct *StreamConsumer) (*kafka.Consumer, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": st.kafkaServers,
		"group.id":          consumerStruct.GroupId,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(consumerStruct.Topic, nil); err != nil {
		consumer.Close()
		return nil, err
	}

	return consumer, nil
}

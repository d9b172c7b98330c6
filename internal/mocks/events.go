package mocks

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(topic, key string, payload any) {
	m.Called(topic, key, payload)
}

// MockProducer records produced messages.
type MockProducer struct {
	mu       sync.Mutex
	Messages []ProducedMessage
	Err      error
}

type ProducedMessage struct {
	Topic string
	Key   string
	Value []byte
}

func (p *MockProducer) ProduceMessage(topic, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Messages = append(p.Messages, ProducedMessage{Topic: topic, Key: key, Value: value})
	return p.Err
}

func (p *MockProducer) Produced() []ProducedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]ProducedMessage(nil), p.Messages...)
}

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Issue(userID int64, email string, roles []string) (string, time.Time, error) {
	args := m.Called(userID, email, roles)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

package mocks

import (
	"net/http"
	"sync"
)

// MockHelper runs background tasks inline and keeps their errors.
type MockHelper struct {
	mu     sync.Mutex
	Errors []error
}

func (m *MockHelper) BackgroundTask(r *http.Request, fn func() error) {
	if err := fn(); err != nil {
		m.mu.Lock()
		m.Errors = append(m.Errors, err)
		m.mu.Unlock()
	}
}

package mocks

import (
	"net/http"
	"sync"
)

type MockErrorHandler struct {
	mu       sync.Mutex
	Reported []error
}

func (m *MockErrorHandler) ReportServerError(r *http.Request, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reported = append(m.Reported, err)
}

package handler

import (
	"net/http"
	"time"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/response"
)

type StatusHandler struct {
	ErrHandler *errHandler.ErrorRepository
	now        func() time.Time
}

func NewStatusHandler(handler *StatusHandler) *StatusHandler {
	return &StatusHandler{
		ErrHandler: handler.ErrHandler,
		now:        time.Now,
	}
}

type statusPayload struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	payload := statusPayload{
		Status:    "success",
		Message:   "CRM API is running smoothly!",
		Timestamp: h.now().UTC(),
	}

	err := response.Raw(w, http.StatusOK, payload)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

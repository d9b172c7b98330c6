package handler

import (
	"net/http"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/response"
	"github.com/cradoe/crm/internal/service"
)

type ActivityHandler struct {
	Service    *service.ActivityService
	ErrHandler *errHandler.ErrorRepository
}

func NewActivityHandler(handler *ActivityHandler) *ActivityHandler {
	return &ActivityHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

func (h *ActivityHandler) HandleActivitiesCreate(w http.ResponseWriter, r *http.Request) {
	var input service.CreateActivityInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	activity, err := h.Service.Create(r.Context(), &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, activity, "Activity logged successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ActivityHandler) HandleActivitiesGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	activity, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, activity, "Activity fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleActivitiesRelated lists the timeline of one record, newest first.
func (h *ActivityHandler) HandleActivitiesRelated(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r, h.ErrHandler)
	if !ok {
		return
	}

	activities, err := h.Service.FindByRelatedEntity(r.Context(), r.PathValue("entityType"), r.PathValue("entityId"), page)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, activities, "Activities fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

package handler

import (
	"net/http"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/response"
	"github.com/cradoe/crm/internal/service"
)

type LeadHandler struct {
	Service    *service.LeadService
	ErrHandler *errHandler.ErrorRepository
}

func NewLeadHandler(handler *LeadHandler) *LeadHandler {
	return &LeadHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

func (h *LeadHandler) HandleLeadsCreate(w http.ResponseWriter, r *http.Request) {
	var input service.CreateLeadInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	lead, err := h.Service.Create(r.Context(), &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, lead, "Lead created successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *LeadHandler) HandleLeadsList(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r, h.ErrHandler)
	if !ok {
		return
	}

	leads, err := h.Service.FindAll(r.Context(), page)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, leads, "Leads fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *LeadHandler) HandleLeadsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	lead, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, lead, "Lead fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *LeadHandler) HandleLeadsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	var input service.UpdateLeadInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	lead, err := h.Service.Update(r.Context(), id, &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, lead, "Lead updated successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *LeadHandler) HandleLeadsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	if err := h.Service.Remove(r.Context(), id); err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	response.NoContent(w)
}

// HandleLeadsConvert turns the lead into an opportunity, creating the account
// and contact on the way unless existing ones are named.
func (h *LeadHandler) HandleLeadsConvert(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	var input service.ConvertLeadInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	conversion, err := h.Service.Convert(r.Context(), id, &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, conversion, "Lead converted successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

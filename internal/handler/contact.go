package handler

import (
	"net/http"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/response"
	"github.com/cradoe/crm/internal/service"
)

type ContactHandler struct {
	Service    *service.ContactService
	ErrHandler *errHandler.ErrorRepository
}

func NewContactHandler(handler *ContactHandler) *ContactHandler {
	return &ContactHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

func (h *ContactHandler) HandleContactsCreate(w http.ResponseWriter, r *http.Request) {
	var input service.CreateContactInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	contact, err := h.Service.Create(r.Context(), &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, contact, "Contact created successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ContactHandler) HandleContactsList(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r, h.ErrHandler)
	if !ok {
		return
	}

	contacts, err := h.Service.FindAll(r.Context(), page)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, contacts, "Contacts fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ContactHandler) HandleContactsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	contact, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, contact, "Contact fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ContactHandler) HandleContactsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	var input service.UpdateContactInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	contact, err := h.Service.Update(r.Context(), id, &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, contact, "Contact updated successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ContactHandler) HandleContactsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	if err := h.Service.Remove(r.Context(), id); err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	response.NoContent(w)
}

package handler

import (
	"net/http"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/response"
	"github.com/cradoe/crm/internal/service"
)

type TicketHandler struct {
	Service    *service.TicketService
	ErrHandler *errHandler.ErrorRepository
}

func NewTicketHandler(handler *TicketHandler) *TicketHandler {
	return &TicketHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

func (h *TicketHandler) HandleTicketsCreate(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTicketInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	ticket, err := h.Service.Create(r.Context(), &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, ticket, "Ticket created successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *TicketHandler) HandleTicketsList(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r, h.ErrHandler)
	if !ok {
		return
	}

	tickets, err := h.Service.FindAll(r.Context(), page)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, tickets, "Tickets fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *TicketHandler) HandleTicketsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	ticket, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, ticket, "Ticket fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *TicketHandler) HandleTicketsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	var input service.UpdateTicketInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	ticket, err := h.Service.Update(r.Context(), id, &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, ticket, "Ticket updated successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *TicketHandler) HandleTicketsDelete(w http.ResponseWriter, r *http.Request) {
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

func (h *TicketHandler) HandleTicketCommentsCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	var input service.AddCommentInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	comment, err := h.Service.AddComment(r.Context(), id, &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, comment, "Comment added successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *TicketHandler) HandleTicketCommentsList(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	page, ok := pageParams(w, r, h.ErrHandler)
	if !ok {
		return
	}

	comments, err := h.Service.ListComments(r.Context(), id, page)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, comments, "Comments fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

package handler

import (
	"net/http"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/response"
	"github.com/cradoe/crm/internal/service"
)

type OpportunityHandler struct {
	Service    *service.OpportunityService
	ErrHandler *errHandler.ErrorRepository
}

func NewOpportunityHandler(handler *OpportunityHandler) *OpportunityHandler {
	return &OpportunityHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

func (h *OpportunityHandler) HandleOpportunitiesCreate(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOpportunityInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	opportunity, err := h.Service.Create(r.Context(), &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, opportunity, "Opportunity created successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *OpportunityHandler) HandleOpportunitiesList(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r, h.ErrHandler)
	if !ok {
		return
	}

	opportunities, err := h.Service.FindAll(r.Context(), page)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, opportunities, "Opportunities fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *OpportunityHandler) HandleOpportunitiesGet(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	opportunity, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, opportunity, "Opportunity fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *OpportunityHandler) HandleOpportunitiesUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	var input service.UpdateOpportunityInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	opportunity, err := h.Service.Update(r.Context(), id, &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, opportunity, "Opportunity updated successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *OpportunityHandler) HandleOpportunitiesDelete(w http.ResponseWriter, r *http.Request) {
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

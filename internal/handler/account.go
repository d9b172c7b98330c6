package handler

import (
	"net/http"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/response"
	"github.com/cradoe/crm/internal/service"
)

type AccountHandler struct {
	Service    *service.AccountService
	ErrHandler *errHandler.ErrorRepository
}

func NewAccountHandler(handler *AccountHandler) *AccountHandler {
	return &AccountHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

func (h *AccountHandler) HandleAccountsCreate(w http.ResponseWriter, r *http.Request) {
	var input service.CreateAccountInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	account, err := h.Service.Create(r.Context(), &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, account, "Account created successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AccountHandler) HandleAccountsList(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r, h.ErrHandler)
	if !ok {
		return
	}

	accounts, err := h.Service.FindAll(r.Context(), page)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, accounts, "Accounts fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AccountHandler) HandleAccountsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	account, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, account, "Account fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AccountHandler) HandleAccountsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	var input service.UpdateAccountInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	account, err := h.Service.Update(r.Context(), id, &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, account, "Account updated successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AccountHandler) HandleAccountsDelete(w http.ResponseWriter, r *http.Request) {
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

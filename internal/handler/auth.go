package handler

import (
	"net/http"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/response"
	"github.com/cradoe/crm/internal/service"
)

type AuthHandler struct {
	Service    *service.AuthService
	ErrHandler *errHandler.ErrorRepository
}

func NewAuthHandler(handler *AuthHandler) *AuthHandler {
	return &AuthHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

// New user registration creates the user with the default role and signs them in.
// The welcome e-mail is sent by a worker once the registration event is consumed.
func (h *AuthHandler) HandleAuthRegister(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	result, err := h.Service.Register(r.Context(), &input)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, result, "Account created successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AuthHandler) HandleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	result, err := h.Service.Login(r.Context(), &input)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, result, "Login successful", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AuthHandler) HandleAuthProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Profile(r.Context(), actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, user, "Profile fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

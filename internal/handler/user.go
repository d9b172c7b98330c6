package handler

import (
	"net/http"

	"github.com/cradoe/crm/internal/context"
	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/response"
	"github.com/cradoe/crm/internal/service"
)

type UserHandler struct {
	Service    *service.UserService
	ErrHandler *errHandler.ErrorRepository
}

func NewUserHandler(handler *UserHandler) *UserHandler {
	return &UserHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

func (h *UserHandler) HandleUsersCreate(w http.ResponseWriter, r *http.Request) {
	var input service.CreateUserInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	user, err := h.Service.Create(r.Context(), &input)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, user, "User created successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *UserHandler) HandleUsersList(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r, h.ErrHandler)
	if !ok {
		return
	}

	users, err := h.Service.FindAll(r.Context(), page)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, users, "Users fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *UserHandler) HandleUsersProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.FindOne(r.Context(), actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, user, "Profile fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *UserHandler) HandleUsersGet(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	user, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, user, "User fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// Users may edit their own profile; anyone else needs the admin role.
// Only administrators may change roles.
func (h *UserHandler) HandleUsersUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	var input service.UpdateUserInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	actor := context.ContextGetAuthenticatedUser(r)
	isAdmin := actor.HasRole(models.RoleAdmin)
	if (actor.ID != id && !isAdmin) || (input.Roles != nil && !isAdmin) {
		h.ErrHandler.Forbidden(w, r)
		return
	}

	user, err := h.Service.Update(r.Context(), id, &input)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, user, "User updated successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *UserHandler) HandleUsersDelete(w http.ResponseWriter, r *http.Request) {
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

package handler

import (
	"net/http"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/response"
	"github.com/cradoe/crm/internal/service"
)

type ProjectHandler struct {
	Service    *service.ProjectService
	ErrHandler *errHandler.ErrorRepository
}

func NewProjectHandler(handler *ProjectHandler) *ProjectHandler {
	return &ProjectHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

func (h *ProjectHandler) HandleProjectsCreate(w http.ResponseWriter, r *http.Request) {
	var input service.CreateProjectInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	project, err := h.Service.Create(r.Context(), &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, project, "Project created successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ProjectHandler) HandleProjectsList(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParams(w, r, h.ErrHandler)
	if !ok {
		return
	}

	projects, err := h.Service.FindAll(r.Context(), page)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, projects, "Projects fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ProjectHandler) HandleProjectsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	project, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, project, "Project fetched successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ProjectHandler) HandleProjectsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, h.ErrHandler)
	if !ok {
		return
	}

	var input service.UpdateProjectInput

	if !decodeInput(w, r, h.ErrHandler, &input) {
		return
	}

	project, err := h.Service.Update(r.Context(), id, &input, actorID(r))
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, project, "Project updated successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ProjectHandler) HandleProjectsDelete(w http.ResponseWriter, r *http.Request) {
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

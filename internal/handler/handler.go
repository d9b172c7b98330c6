package handler

import (
	"net/http"

	"github.com/cradoe/crm/internal/context"
	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/request"
)

// decodeInput decodes the body into dst, rejecting unknown fields. It writes
// the 400 response itself and reports whether the handler may continue.
func decodeInput(w http.ResponseWriter, r *http.Request, eh *errHandler.ErrorRepository, dst any) bool {
	err := request.DecodeJSONStrict(w, r, dst)
	if err != nil {
		eh.BadRequest(w, r, err)
		return false
	}
	return true
}

func pageParams(w http.ResponseWriter, r *http.Request, eh *errHandler.ErrorRepository) (models.Page, bool) {
	page, errs := request.Pagination(r)
	if errs != nil {
		eh.FailedValidation(w, r, errs)
		return models.Page{}, false
	}
	return page, true
}

func uuidParam(w http.ResponseWriter, r *http.Request, eh *errHandler.ErrorRepository) (string, bool) {
	id, err := request.UUID(r, "id")
	if err != nil {
		eh.BadRequest(w, r, err)
		return "", false
	}
	return id, true
}

func intParam(w http.ResponseWriter, r *http.Request, eh *errHandler.ErrorRepository) (int64, bool) {
	id, err := request.IntID(r, "id")
	if err != nil {
		eh.BadRequest(w, r, err)
		return 0, false
	}
	return id, true
}

// actorID is the authenticated user. Routes using it sit behind RequireAuthenticatedUser.
func actorID(r *http.Request) int64 {
	return context.ContextGetAuthenticatedUser(r).ID
}

package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cradoe/crm/internal/context"
	"github.com/cradoe/crm/internal/mocks"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/service"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleStatus(t *testing.T) {
	h := NewStatusHandler(&StatusHandler{ErrHandler: newTestErrHandler()})
	h.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	rr := httptest.NewRecorder()
	h.HandleStatus(rr, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	require.Equal(t, "success", body["status"])
	require.Equal(t, "CRM API is running smoothly!", body["message"])
	require.Equal(t, "2024-05-01T12:00:00Z", body["timestamp"])
}

func TestPathIDValidation(t *testing.T) {
	eh := newTestErrHandler()

	leads := NewLeadHandler(&LeadHandler{Service: service.NewLeadService(&service.LeadService{}), ErrHandler: eh})
	accounts := NewAccountHandler(&AccountHandler{Service: service.NewAccountService(&service.AccountService{}), ErrHandler: eh})

	tests := []struct {
		name    string
		handle  http.HandlerFunc
		id      string
		message string
	}{
		{"lead id is not numeric", leads.HandleLeadsGet, "abc", "Validation failed (numeric string is expected)"},
		{"lead id is zero", leads.HandleLeadsGet, "0", "Validation failed (numeric string is expected)"},
		{"account id is not a uuid", accounts.HandleAccountsGet, "42", "Validation failed (uuid is expected)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/x/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()

			tt.handle(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Equal(t, tt.message, decodeBody(t, rr)["message"])
		})
	}
}

func TestPaginationValidation(t *testing.T) {
	accounts := NewAccountHandler(&AccountHandler{
		Service:    service.NewAccountService(&service.AccountService{}),
		ErrHandler: newTestErrHandler(),
	})

	for _, query := range []string{"?page=0", "?limit=101", "?limit=abc"} {
		t.Run(query, func(t *testing.T) {
			rr := httptest.NewRecorder()
			accounts.HandleAccountsList(rr, httptest.NewRequest(http.MethodGet, "/api/accounts"+query, nil))

			require.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestHandleAccountsList(t *testing.T) {
	accountRepo := new(mocks.MockAccountRepo)
	accountRepo.On("List", mock.Anything, models.NewPage(2, 5)).Return([]models.Account{{ID: "a", Name: "Acme"}}, 6, nil)

	accounts := NewAccountHandler(&AccountHandler{
		Service:    service.NewAccountService(&service.AccountService{Accounts: accountRepo}),
		ErrHandler: newTestErrHandler(),
	})

	rr := httptest.NewRecorder()
	accounts.HandleAccountsList(rr, httptest.NewRequest(http.MethodGet, "/api/accounts?page=2&limit=5", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	data, ok := decodeBody(t, rr)["data"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(6), data["total"])
	require.Equal(t, float64(2), data["page"])
	require.Len(t, data["data"], 1)

	accountRepo.AssertExpectations(t)
}

func TestHandleUsersUpdate_RolesRequireAdmin(t *testing.T) {
	users := NewUserHandler(&UserHandler{
		Service:    service.NewUserService(&service.UserService{Users: new(mocks.MockUserRepo)}),
		ErrHandler: newTestErrHandler(),
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/users/7", bytes.NewBufferString(`{"roles":["admin"]}`))
	req.SetPathValue("id", "7")
	req = context.ContextSetAuthenticatedUser(req, &models.User{ID: 7, Roles: []string{models.RoleUser}})
	rr := httptest.NewRecorder()

	users.HandleUsersUpdate(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestHandleUsersUpdate_OtherUserRequiresAdmin(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	users := NewUserHandler(&UserHandler{
		Service:    service.NewUserService(&service.UserService{Users: userRepo}),
		ErrHandler: newTestErrHandler(),
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/users/1", bytes.NewBufferString(`{"password":"new-password","email":"someone@example.com"}`))
	req.SetPathValue("id", "1")
	req = context.ContextSetAuthenticatedUser(req, &models.User{ID: 7, Roles: []string{models.RoleUser}})
	rr := httptest.NewRecorder()

	users.HandleUsersUpdate(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	userRepo.AssertNotCalled(t, "GetOne", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHandleUsersUpdate_Self(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetOne", mock.Anything, int64(7)).Return(&models.User{ID: 7, Name: "Ada", Email: "ada@example.com", Roles: []string{models.RoleUser}}, true, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	users := NewUserHandler(&UserHandler{
		Service:    service.NewUserService(&service.UserService{Users: userRepo}),
		ErrHandler: newTestErrHandler(),
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/users/7", bytes.NewBufferString(`{"name":"Ada Lovelace"}`))
	req.SetPathValue("id", "7")
	req = context.ContextSetAuthenticatedUser(req, &models.User{ID: 7, Roles: []string{models.RoleUser}})
	rr := httptest.NewRecorder()

	users.HandleUsersUpdate(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	userRepo.AssertExpectations(t)
}

func TestHandleUsersUpdate_AdminEditsOtherUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetOne", mock.Anything, int64(7)).Return(&models.User{ID: 7, Name: "Ada", Email: "ada@example.com", Roles: []string{models.RoleUser}}, true, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return len(u.Roles) == 1 && u.Roles[0] == models.RoleAdmin
	})).Return(nil)

	users := NewUserHandler(&UserHandler{
		Service:    service.NewUserService(&service.UserService{Users: userRepo}),
		ErrHandler: newTestErrHandler(),
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/users/7", bytes.NewBufferString(`{"roles":["admin"]}`))
	req.SetPathValue("id", "7")
	req = context.ContextSetAuthenticatedUser(req, &models.User{ID: 1, Roles: []string{models.RoleAdmin}})
	rr := httptest.NewRecorder()

	users.HandleUsersUpdate(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	userRepo.AssertExpectations(t)
}

package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/mocks"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/service"
	"github.com/cradoe/crm/internal/token"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestErrHandler() *errHandler.ErrorRepository {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return errHandler.New("", "http://localhost", new(mocks.MockMailer), logger)
}

func newAuthHandler(t *testing.T, users *mocks.MockUserRepo) *AuthHandler {
	t.Helper()

	return NewAuthHandler(&AuthHandler{
		Service: service.NewAuthService(&service.AuthService{
			Users:  users,
			Tokens: token.New("test_secret", "http://localhost", time.Hour),
		}),
		ErrHandler: newTestErrHandler(),
	})
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &models.User{
		ID:             123,
		Name:           "Test User",
		Email:          "test@example.com",
		HashedPassword: string(hash),
		Roles:          []string{models.RoleUser},
	}
}

func postJSON(t *testing.T, target string, body any) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, target, bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestHandleAuthLogin_ValidCredentials(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.MockUserRepo)
	mockUserRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(testUser(t, "correctpassword"), true, nil)

	authHandler := newAuthHandler(t, mockUserRepo)

	req := postJSON(t, "/api/auth/login", map[string]string{
		"email":    "Test@Example.com",
		"password": "correctpassword",
	})
	rr := httptest.NewRecorder()

	// Act
	authHandler.HandleAuthLogin(rr, req)

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)

	response := decodeBody(t, rr)
	require.Contains(t, response, "data")

	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok, "Expected response['data'] to be a map")

	require.NotEmpty(t, data["accessToken"])
	require.Contains(t, data, "expiresAt")

	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "test@example.com", user["email"])
	require.NotContains(t, user, "hashedPassword")

	mockUserRepo.AssertExpectations(t)
}

func TestHandleAuthLogin_WrongPassword(t *testing.T) {
	mockUserRepo := new(mocks.MockUserRepo)
	mockUserRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(testUser(t, "correctpassword"), true, nil)

	authHandler := newAuthHandler(t, mockUserRepo)

	req := postJSON(t, "/api/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrongpassword",
	})
	rr := httptest.NewRecorder()

	authHandler.HandleAuthLogin(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "Invalid credentials", decodeBody(t, rr)["message"])
}

func TestHandleAuthLogin_UnknownEmail(t *testing.T) {
	mockUserRepo := new(mocks.MockUserRepo)
	mockUserRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, false, nil)

	authHandler := newAuthHandler(t, mockUserRepo)

	req := postJSON(t, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever123",
	})
	rr := httptest.NewRecorder()

	authHandler.HandleAuthLogin(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "Invalid credentials", decodeBody(t, rr)["message"])
}

func TestHandleAuthLogin_UnknownField(t *testing.T) {
	authHandler := newAuthHandler(t, new(mocks.MockUserRepo))

	req := postJSON(t, "/api/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "correctpassword",
		"remember": "yes",
	})
	rr := httptest.NewRecorder()

	authHandler.HandleAuthLogin(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, decodeBody(t, rr)["message"], "remember")
}

func TestHandleAuthRegister_Duplicate(t *testing.T) {
	mockUserRepo := new(mocks.MockUserRepo)
	mockUserRepo.On("Insert", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	authHandler := newAuthHandler(t, mockUserRepo)

	req := postJSON(t, "/api/auth/register", map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "supersecret",
	})
	rr := httptest.NewRecorder()

	authHandler.HandleAuthRegister(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "User with email 'jane@example.com' already exists.", decodeBody(t, rr)["message"])
}

func TestHandleAuthRegister_InvalidInput(t *testing.T) {
	authHandler := newAuthHandler(t, new(mocks.MockUserRepo))

	req := postJSON(t, "/api/auth/register", map[string]string{
		"name":     "Jane Doe",
		"email":    "not-an-email",
		"password": "short",
	})
	rr := httptest.NewRecorder()

	authHandler.HandleAuthRegister(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	errs, ok := decodeBody(t, rr)["error"].([]interface{})
	require.True(t, ok)
	require.Len(t, errs, 2)
}

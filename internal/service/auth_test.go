package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/events"
	"github.com/cradoe/crm/internal/mocks"
	"github.com/cradoe/crm/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() (*AuthService, *mocks.MockUserRepo, *mocks.MockTokens, *mocks.MockLimiter, *mocks.MockPublisher) {
	users := new(mocks.MockUserRepo)
	tokens := new(mocks.MockTokens)
	limiter := new(mocks.MockLimiter)
	publisher := new(mocks.MockPublisher)

	svc := NewAuthService(&AuthService{
		Users:   users,
		Tokens:  tokens,
		Limiter: limiter,
		Events:  publisher,
	})
	return svc, users, tokens, limiter, publisher
}

func TestAuthRegister(t *testing.T) {
	svc, users, tokens, _, publisher := newAuthService()
	expiry := time.Now().Add(time.Hour)

	users.On("Insert", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "jane@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("supersecret")) == nil &&
			len(u.Roles) == 1 && u.Roles[0] == models.RoleUser
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 42
	}).Return(nil)
	tokens.On("Issue", int64(42), "jane@example.com", mock.Anything).Return("signed", expiry, nil)
	publisher.On("Publish", events.TopicUserRegistered, "42", mock.Anything).Return()

	result, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "supersecret",
	})

	require.NoError(t, err)
	require.Equal(t, "signed", result.AccessToken)
	require.Equal(t, expiry, result.ExpiresAt)
	publisher.AssertExpectations(t)
}

func TestAuthLogin_LockedEmail(t *testing.T) {
	svc, users, _, limiter, _ := newAuthService()
	limiter.On("Locked", mock.Anything, "jane@example.com").Return(true, nil)

	_, err := svc.Login(context.Background(), &LoginInput{Email: "jane@example.com", Password: "supersecret"})

	require.True(t, apperr.Is(err, apperr.KindTooManyRequests))
	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuthLogin_FailureIsRecorded(t *testing.T) {
	svc, users, _, limiter, _ := newAuthService()
	limiter.On("Locked", mock.Anything, "jane@example.com").Return(false, nil)
	limiter.On("RecordFailure", mock.Anything, "jane@example.com").Return(nil)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, false, nil)

	_, err := svc.Login(context.Background(), &LoginInput{Email: "jane@example.com", Password: "supersecret"})

	require.EqualError(t, err, "unauthorized: Invalid credentials")
	limiter.AssertExpectations(t)
}

func TestAuthLogin_LimiterOutageFailsOpen(t *testing.T) {
	svc, users, tokens, limiter, _ := newAuthService()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: 7, Email: "jane@example.com", HashedPassword: string(hash)}

	limiter.On("Locked", mock.Anything, "jane@example.com").Return(false, errors.New("redis down"))
	limiter.On("Reset", mock.Anything, "jane@example.com").Return(errors.New("redis down"))
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, true, nil)
	tokens.On("Issue", int64(7), "jane@example.com", mock.Anything).Return("signed", time.Now(), nil)

	result, err := svc.Login(context.Background(), &LoginInput{Email: "jane@example.com", Password: "supersecret"})

	require.NoError(t, err)
	require.Equal(t, "signed", result.AccessToken)
}

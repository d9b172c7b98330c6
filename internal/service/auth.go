package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/events"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost        = 10
	minPasswordLength = 8
)

type TokenIssuer interface {
	Issue(userID int64, email string, roles []string) (string, time.Time, error)
}

// LoginLimiter counts failed logins per email.
type LoginLimiter interface {
	Locked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        *models.User `json:"user"`
}

type AuthService struct {
	Users   repository.UserRepository
	Tokens  TokenIssuer
	Limiter LoginLimiter
	Events  EventPublisher
	Logger  *slog.Logger
}

func NewAuthService(svc *AuthService) *AuthService {
	return &AuthService{
		Users:   svc.Users,
		Tokens:  svc.Tokens,
		Limiter: svc.Limiter,
		Events:  svc.Events,
		Logger:  svc.Logger,
	}
}

func validatePassword(v *validator.Validator, password string) {
	v.Check(validator.NotBlank(password), "Password should not be empty.")
	v.Check(validator.MinRunes(password, minPasswordLength), "Password must be at least 8 characters long.")
	v.Check(validator.MaxRunes(password, 72), "Password must not exceed 72 characters.")
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func userConflict(email string) func() error {
	return func() error {
		return apperr.Conflict("User with email '%s' already exists.", email)
	}
}

func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	var v validator.Validator
	validatePersonName(&v, "Name", input.Name)
	validateEmail(&v, input.Email)
	validatePassword(&v, input.Password)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to register user.")
	}

	user := &models.User{
		Name:           input.Name,
		Email:          normalizeEmail(input.Email),
		HashedPassword: hashed,
		Roles:          []string{models.RoleUser},
	}

	if err := s.Users.Insert(ctx, user); err != nil {
		return nil, writeError(err, userConflict(user.Email), "register user")
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	if s.Events != nil {
		s.Events.Publish(events.TopicUserRegistered, formatID(user.ID), events.UserRegistered{
			UserID:       user.ID,
			Name:         user.Name,
			Email:        user.Email,
			RegisteredAt: user.CreatedAt,
		})
	}

	return result, nil
}

// Login fails with the same message for an unknown email and a wrong
// password. Repeated failures lock the email for a while.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	var v validator.Validator
	validateEmail(&v, input.Email)
	v.Check(validator.NotBlank(input.Password), "Password should not be empty.")
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	email := normalizeEmail(input.Email)

	if s.locked(ctx, email) {
		return nil, apperr.TooManyRequests("Too many failed login attempts. Please try again later.")
	}

	user, found, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to log in.")
	}

	if !found || !passwordMatches(user.HashedPassword, input.Password) {
		s.recordFailure(ctx, email)
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if s.Limiter != nil {
		if err := s.Limiter.Reset(ctx, email); err != nil {
			s.logError("resetting login attempts", err)
		}
	}

	return s.issue(user)
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, found, err := s.Users.GetOne(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve profile.")
	}
	if !found {
		return nil, apperr.Unauthorized("User not found")
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, expiry, err := s.Tokens.Issue(user.ID, user.Email, user.Roles)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to issue access token.")
	}

	return &AuthResult{AccessToken: token, ExpiresAt: expiry, User: user}, nil
}

// locked fails open: a limiter outage must not block every login.
func (s *AuthService) locked(ctx context.Context, email string) bool {
	if s.Limiter == nil {
		return false
	}

	locked, err := s.Limiter.Locked(ctx, email)
	if err != nil {
		s.logError("checking login attempts", err)
		return false
	}
	return locked
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.Limiter == nil {
		return
	}
	if err := s.Limiter.RecordFailure(ctx, email); err != nil {
		s.logError("recording failed login", err)
	}
}

func (s *AuthService) logError(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Warn(msg, "error", err)
	}
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

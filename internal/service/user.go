package service

import (
	"context"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/validator"
)

type CreateUserInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type UpdateUserInput struct {
	Name     *string  `json:"name"`
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Roles    []string `json:"roles"`
}

var knownRoles = []string{models.RoleUser, models.RoleAdmin}

func validateRoles(v *validator.Validator, roles []string) {
	v.Check(len(roles) > 0, "Roles must not be empty.")
	for _, role := range roles {
		v.Check(validator.PermittedValue(role, knownRoles...), "Unknown role '"+role+"'.")
	}
}

type UserService struct {
	Users repository.UserRepository
}

func NewUserService(svc *UserService) *UserService {
	return &UserService{Users: svc.Users}
}

func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	var v validator.Validator
	validatePersonName(&v, "Name", input.Name)
	validateEmail(&v, input.Email)
	validatePassword(&v, input.Password)
	if input.Roles != nil {
		validateRoles(&v, input.Roles)
	}
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to create user.")
	}

	user := &models.User{
		Name:           input.Name,
		Email:          normalizeEmail(input.Email),
		HashedPassword: hashed,
		Roles:          input.Roles,
	}

	if err := s.Users.Insert(ctx, user); err != nil {
		return nil, writeError(err, userConflict(user.Email), "create user")
	}

	return user, nil
}

func (s *UserService) FindAll(ctx context.Context, page models.Page) (*models.PageResult[models.User], error) {
	users, total, err := s.Users.List(ctx, page)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve users.")
	}

	return models.NewPageResult(users, total, page), nil
}

func (s *UserService) FindOne(ctx context.Context, id int64) (*models.User, error) {
	return s.get(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id int64, input *UpdateUserInput) (*models.User, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var v validator.Validator
	if input.Name != nil {
		validatePersonName(&v, "Name", *input.Name)
	}
	if input.Email != nil {
		validateEmail(&v, *input.Email)
	}
	if input.Password != nil {
		validatePassword(&v, *input.Password)
	}
	if input.Roles != nil {
		validateRoles(&v, input.Roles)
	}
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	assign(&user.Name, input.Name)
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}
	if input.Password != nil {
		if user.HashedPassword, err = hashPassword(*input.Password); err != nil {
			return nil, apperr.Internal(err, "Failed to update user.")
		}
	}
	if input.Roles != nil {
		user.Roles = input.Roles
	}

	if err := s.Users.Update(ctx, user); err != nil {
		return nil, writeError(err, userConflict(user.Email), "update user")
	}

	return user, nil
}

// Remove deletes the user. Records that referenced the user keep existing
// with the reference cleared.
func (s *UserService) Remove(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	n, err := s.Users.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err, "Failed to delete user.")
	}
	if n == 0 {
		return apperr.NotFound("User with ID %d not found.", id)
	}

	return nil
}

func (s *UserService) get(ctx context.Context, id int64) (*models.User, error) {
	user, found, err := s.Users.GetOne(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve user.")
	}
	if !found {
		return nil, apperr.NotFound("User with ID %d not found.", id)
	}
	return user, nil
}

package service

import (
	"context"
	"slices"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/validator"
	"github.com/jmoiron/sqlx"
)

type ProjectFields struct {
	Description      *string               `json:"description"`
	Status           *models.ProjectStatus `json:"status"`
	StartDate        *models.Date          `json:"startDate"`
	EndDate          *models.Date          `json:"endDate"`
	Budget           *float64              `json:"budget"`
	ProjectManagerID *int64                `json:"projectManagerId"`
	// TeamMemberIDs replaces the whole team when present.
	TeamMemberIDs []int64 `json:"teamMemberIds"`
}

type CreateProjectInput struct {
	Name      string `json:"name"`
	AccountID string `json:"accountId"`
	ProjectFields
}

type UpdateProjectInput struct {
	Name      *string `json:"name"`
	AccountID *string `json:"accountId"`
	ProjectFields
}

func (f *ProjectFields) validate(v *validator.Validator) {
	if f.Status != nil {
		v.Check(f.Status.Valid(), "Invalid project status.")
	}
	if f.Budget != nil {
		v.Check(*f.Budget >= 0, "Budget cannot be negative.")
	}
}

func (f *ProjectFields) apply(project *models.Project) {
	set(&project.Description, f.Description)
	assign(&project.Status, f.Status)
	set(&project.StartDate, f.StartDate)
	set(&project.EndDate, f.EndDate)
	set(&project.Budget, f.Budget)
	set(&project.ProjectManagerID, f.ProjectManagerID)
}

func validateProjectName(v *validator.Validator, name string) {
	v.Check(validator.NotBlank(name), "Project name should not be empty.")
	v.Check(validator.MaxRunes(name, 255), "Project name must not exceed 255 characters.")
}

type ProjectService struct {
	Projects repository.ProjectRepository
	Users    repository.UserRepository
	Exists   EntityExistenceChecker
	Tx       TxRunner
}

func NewProjectService(svc *ProjectService) *ProjectService {
	return &ProjectService{
		Projects: svc.Projects,
		Users:    svc.Users,
		Exists:   svc.Exists,
		Tx:       svc.Tx,
	}
}

func projectConflict(name string) func() error {
	return func() error {
		return apperr.Conflict("Project with name '%s' already exists for this account.", name)
	}
}

func (s *ProjectService) Create(ctx context.Context, input *CreateProjectInput, actorID int64) (*models.Project, error) {
	var v validator.Validator
	validateProjectName(&v, input.Name)
	v.Check(validator.NotBlank(input.AccountID), "Account ID should not be empty.")
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if err := canonicalRef(models.KindAccount, &input.AccountID); err != nil {
		return nil, err
	}
	if err := requireExists(ctx, s.Exists, models.KindAccount, input.AccountID, ""); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        input.Name,
		AccountID:   input.AccountID,
		Status:      models.ProjectStatusNotStarted,
		CreatedByID: &actorID,
	}
	input.apply(project)

	if err := s.checkPeople(ctx, nil, &input.ProjectFields); err != nil {
		return nil, err
	}
	if err := checkSchedule(project); err != nil {
		return nil, err
	}

	err := s.Tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.Projects.Insert(ctx, project, tx); err != nil {
			return writeError(err, projectConflict(project.Name), "create project")
		}
		if len(input.TeamMemberIDs) > 0 {
			if err := s.Projects.SetTeamMembers(ctx, project.ID, input.TeamMemberIDs, tx); err != nil {
				return writeError(err, projectConflict(project.Name), "assign project team")
			}
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err, "create project")
	}

	return s.get(ctx, project.ID)
}

func (s *ProjectService) FindAll(ctx context.Context, page models.Page) (*models.PageResult[models.Project], error) {
	projects, total, err := s.Projects.List(ctx, page)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve projects.")
	}

	return models.NewPageResult(projects, total, page), nil
}

func (s *ProjectService) FindOne(ctx context.Context, id string) (*models.Project, error) {
	return s.get(ctx, id)
}

func (s *ProjectService) Update(ctx context.Context, id string, input *UpdateProjectInput, actorID int64) (*models.Project, error) {
	project, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var v validator.Validator
	if input.Name != nil {
		validateProjectName(&v, *input.Name)
	}
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if err := canonicalRef(models.KindAccount, input.AccountID); err != nil {
		return nil, err
	}
	if input.AccountID != nil && *input.AccountID != project.AccountID {
		if err := requireExists(ctx, s.Exists, models.KindAccount, *input.AccountID, ""); err != nil {
			return nil, err
		}
	}
	if err := s.checkPeople(ctx, project, &input.ProjectFields); err != nil {
		return nil, err
	}

	assign(&project.Name, input.Name)
	assign(&project.AccountID, input.AccountID)
	input.apply(project)

	if err := checkSchedule(project); err != nil {
		return nil, err
	}

	err = s.Tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.Projects.Update(ctx, project, tx); err != nil {
			return writeError(err, projectConflict(project.Name), "update project")
		}
		if input.TeamMemberIDs != nil {
			if err := s.Projects.SetTeamMembers(ctx, project.ID, input.TeamMemberIDs, tx); err != nil {
				return writeError(err, projectConflict(project.Name), "assign project team")
			}
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err, "update project")
	}

	return s.get(ctx, project.ID)
}

func (s *ProjectService) Remove(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	n, err := s.Projects.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err, "Failed to delete project.")
	}
	if n == 0 {
		return apperr.NotFound("Project with ID %s not found.", id)
	}

	return nil
}

// checkPeople resolves the project manager and every team member.
func (s *ProjectService) checkPeople(ctx context.Context, current *models.Project, input *ProjectFields) error {
	var currentManager *int64
	if current != nil {
		currentManager = current.ProjectManagerID
	}
	if changed(currentManager, input.ProjectManagerID) {
		if err := requireUser(ctx, s.Exists, *input.ProjectManagerID, "Project Manager"); err != nil {
			return err
		}
	}

	if len(input.TeamMemberIDs) == 0 {
		return nil
	}

	members, err := s.Users.Summaries(ctx, input.TeamMemberIDs)
	if err != nil {
		return apperr.Internal(err, "Failed to look up team members.")
	}

	found := make([]int64, 0, len(members))
	for _, m := range members {
		found = append(found, m.ID)
	}
	for _, id := range input.TeamMemberIDs {
		if !slices.Contains(found, id) {
			return apperr.NotFound("User with ID %d not found (Team Member).", id)
		}
	}

	return nil
}

func checkSchedule(project *models.Project) error {
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Before(*project.StartDate) {
		return apperr.BadRequest("End date cannot be before start date.")
	}
	return nil
}

func (s *ProjectService) get(ctx context.Context, id string) (*models.Project, error) {
	project, found, err := s.Projects.GetOne(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve project.")
	}
	if !found {
		return nil, apperr.NotFound("Project with ID %s not found.", id)
	}
	return project, nil
}

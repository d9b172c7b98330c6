package service

import (
	"context"

	"github.com/cradoe/crm/internal/apperr"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/validator"
)

type TicketFields struct {
	Status       *models.TicketStatus   `json:"status"`
	Priority     *models.TicketPriority `json:"priority"`
	AccountID    *string                `json:"accountId"`
	ProjectID    *string                `json:"projectId"`
	AssignedToID *int64                 `json:"assignedToId"`
}

type CreateTicketInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TicketFields
}

type UpdateTicketInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	TicketFields
}

func (f *TicketFields) validate(v *validator.Validator) {
	if f.Status != nil {
		v.Check(f.Status.Valid(), "Invalid ticket status.")
	}
	if f.Priority != nil {
		v.Check(f.Priority.Valid(), "Invalid ticket priority.")
	}
}

func (f *TicketFields) apply(ticket *models.Ticket) {
	assign(&ticket.Status, f.Status)
	assign(&ticket.Priority, f.Priority)
	set(&ticket.AccountID, f.AccountID)
	set(&ticket.ProjectID, f.ProjectID)
	set(&ticket.AssignedToID, f.AssignedToID)
}

func validateTicketText(v *validator.Validator, title, description *string) {
	if title != nil {
		v.Check(validator.NotBlank(*title), "Title should not be empty.")
		v.Check(validator.MaxRunes(*title, 255), "Title must not exceed 255 characters.")
	}
	if description != nil {
		v.Check(validator.NotBlank(*description), "Description should not be empty.")
	}
}

type AddCommentInput struct {
	Content       string  `json:"content"`
	AttachmentURL *string `json:"attachmentUrl"`
}

type TicketService struct {
	Tickets  repository.TicketRepository
	Projects repository.ProjectRepository
	Exists   EntityExistenceChecker
	Events   EventPublisher
}

func NewTicketService(svc *TicketService) *TicketService {
	return &TicketService{
		Tickets:  svc.Tickets,
		Projects: svc.Projects,
		Exists:   svc.Exists,
		Events:   svc.Events,
	}
}

func (s *TicketService) Create(ctx context.Context, input *CreateTicketInput, actorID int64) (*models.Ticket, error) {
	var v validator.Validator
	validateTicketText(&v, &input.Title, &input.Description)
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	ticket := &models.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TicketStatusOpen,
		Priority:    models.TicketPriorityMedium,
		CreatedByID: &actorID,
	}

	if err := s.checkReferences(ctx, ticket, &input.TicketFields); err != nil {
		return nil, err
	}

	input.apply(ticket)

	if err := s.checkProjectAccount(ctx, ticket, "Project does not belong to the specified account."); err != nil {
		return nil, err
	}

	if err := s.Tickets.Insert(ctx, ticket); err != nil {
		return nil, writeError(err, nil, "create ticket")
	}

	announceAssignment(s.Events, models.KindTicket, ticket.ID, ticket.Title, nil, ticket.AssignedToID, actorID)

	return s.get(ctx, ticket.ID)
}

func (s *TicketService) FindAll(ctx context.Context, page models.Page) (*models.PageResult[models.Ticket], error) {
	tickets, total, err := s.Tickets.List(ctx, page)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve tickets.")
	}

	return models.NewPageResult(tickets, total, page), nil
}

func (s *TicketService) FindOne(ctx context.Context, id string) (*models.Ticket, error) {
	return s.get(ctx, id)
}

func (s *TicketService) Update(ctx context.Context, id string, input *UpdateTicketInput, actorID int64) (*models.Ticket, error) {
	ticket, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var v validator.Validator
	validateTicketText(&v, input.Title, input.Description)
	input.validate(&v)
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	if err := s.checkReferences(ctx, ticket, &input.TicketFields); err != nil {
		return nil, err
	}

	previousAssignee := ticket.AssignedToID
	assign(&ticket.Title, input.Title)
	assign(&ticket.Description, input.Description)
	input.apply(ticket)

	if err := s.checkProjectAccount(ctx, ticket, "Project does not belong to the ticket's current account."); err != nil {
		return nil, err
	}

	if err := s.Tickets.Update(ctx, ticket); err != nil {
		return nil, writeError(err, nil, "update ticket")
	}

	announceAssignment(s.Events, models.KindTicket, ticket.ID, ticket.Title, previousAssignee, ticket.AssignedToID, actorID)

	return s.get(ctx, ticket.ID)
}

// Remove soft-deletes the ticket. Its comments stay attached to the hidden row.
func (s *TicketService) Remove(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	n, err := s.Tickets.SoftDelete(ctx, id)
	if err != nil {
		return apperr.Internal(err, "Failed to delete ticket.")
	}
	if n == 0 {
		return apperr.NotFound("Ticket with ID %s not found.", id)
	}

	return nil
}

func (s *TicketService) AddComment(ctx context.Context, ticketID string, input *AddCommentInput, authorID int64) (*models.TicketComment, error) {
	if _, err := s.get(ctx, ticketID); err != nil {
		return nil, err
	}

	var v validator.Validator
	v.Check(validator.NotBlank(input.Content), "Comment content should not be empty.")
	if input.AttachmentURL != nil {
		v.Check(validator.IsURL(*input.AttachmentURL), "Attachment URL must be a valid URL.")
	}
	if v.HasErrors() {
		return nil, apperr.Invalid(v.Errors)
	}

	comment := &models.TicketComment{
		TicketID:      ticketID,
		AuthorID:      &authorID,
		Content:       input.Content,
		AttachmentURL: input.AttachmentURL,
	}

	if err := s.Tickets.InsertComment(ctx, comment); err != nil {
		return nil, writeError(err, nil, "add comment")
	}

	return comment, nil
}

func (s *TicketService) ListComments(ctx context.Context, ticketID string, page models.Page) (*models.PageResult[models.TicketComment], error) {
	if _, err := s.get(ctx, ticketID); err != nil {
		return nil, err
	}

	comments, total, err := s.Tickets.ListComments(ctx, ticketID, page)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve comments.")
	}

	return models.NewPageResult(comments, total, page), nil
}

func (s *TicketService) checkReferences(ctx context.Context, current *models.Ticket, input *TicketFields) error {
	if err := canonicalRef(models.KindAccount, input.AccountID); err != nil {
		return err
	}
	if err := canonicalRef(models.KindProject, input.ProjectID); err != nil {
		return err
	}

	if changed(current.AccountID, input.AccountID) {
		if err := requireExists(ctx, s.Exists, models.KindAccount, *input.AccountID, ""); err != nil {
			return err
		}
	}
	if changed(current.ProjectID, input.ProjectID) {
		if err := requireExists(ctx, s.Exists, models.KindProject, *input.ProjectID, ""); err != nil {
			return err
		}
	}
	if changed(current.AssignedToID, input.AssignedToID) {
		if err := requireUser(ctx, s.Exists, *input.AssignedToID, "Assigned To"); err != nil {
			return err
		}
	}
	return nil
}

// checkProjectAccount requires the project to belong to the ticket's account
// when both are set.
func (s *TicketService) checkProjectAccount(ctx context.Context, ticket *models.Ticket, message string) error {
	if ticket.AccountID == nil || ticket.ProjectID == nil {
		return nil
	}

	project, found, err := s.Projects.GetOne(ctx, *ticket.ProjectID)
	if err != nil {
		return apperr.Internal(err, "Failed to retrieve project.")
	}
	if !found {
		return apperr.NotFound("Project with ID %s not found.", *ticket.ProjectID)
	}

	if !sameID(&project.AccountID, *ticket.AccountID) {
		return apperr.BadRequest("%s", message)
	}

	return nil
}

func (s *TicketService) get(ctx context.Context, id string) (*models.Ticket, error) {
	ticket, found, err := s.Tickets.GetOne(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to retrieve ticket.")
	}
	if !found {
		return nil, apperr.NotFound("Ticket with ID %s not found.", id)
	}
	return ticket, nil
}

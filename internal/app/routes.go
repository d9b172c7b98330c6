package app

import (
	"net/http"
	"strings"

	"github.com/cradoe/crm/internal/cache"
	"github.com/cradoe/crm/internal/handler"
	"github.com/cradoe/crm/internal/middleware"
	"github.com/cradoe/crm/internal/models"
	"github.com/cradoe/crm/internal/service"
)

type services struct {
	auth          *service.AuthService
	users         *service.UserService
	accounts      *service.AccountService
	contacts      *service.ContactService
	leads         *service.LeadService
	opportunities *service.OpportunityService
	projects      *service.ProjectService
	tickets       *service.TicketService
	activities    *service.ActivityService
}

func (app *Application) services() *services {
	registry := app.DB.Registry()

	return &services{
		auth: service.NewAuthService(&service.AuthService{
			Users:   app.DB.User(),
			Tokens:  app.Tokens,
			Limiter: cache.NewLoginLimiter(app.Cache, app.Config.Login.MaxAttempts, app.Config.Login.LockWindow),
			Events:  app.Events,
			Logger:  app.Logger,
		}),
		users: service.NewUserService(&service.UserService{
			Users: app.DB.User(),
		}),
		accounts: service.NewAccountService(&service.AccountService{
			Accounts:      app.DB.Account(),
			Contacts:      app.DB.Contact(),
			Opportunities: app.DB.Opportunity(),
			Projects:      app.DB.Project(),
			Tickets:       app.DB.Ticket(),
			Exists:        registry,
			Events:        app.Events,
		}),
		contacts: service.NewContactService(&service.ContactService{
			Contacts:      app.DB.Contact(),
			Opportunities: app.DB.Opportunity(),
			Exists:        registry,
			Events:        app.Events,
		}),
		leads: service.NewLeadService(&service.LeadService{
			Leads:         app.DB.Lead(),
			Accounts:      app.DB.Account(),
			Contacts:      app.DB.Contact(),
			Opportunities: app.DB.Opportunity(),
			Exists:        registry,
			Tx:            app.DB,
			Events:        app.Events,
		}),
		opportunities: service.NewOpportunityService(&service.OpportunityService{
			Opportunities: app.DB.Opportunity(),
			Contacts:      app.DB.Contact(),
			Exists:        registry,
			Events:        app.Events,
		}),
		projects: service.NewProjectService(&service.ProjectService{
			Projects: app.DB.Project(),
			Users:    app.DB.User(),
			Exists:   registry,
			Tx:       app.DB,
		}),
		tickets: service.NewTicketService(&service.TicketService{
			Tickets:  app.DB.Ticket(),
			Projects: app.DB.Project(),
			Exists:   registry,
			Events:   app.Events,
		}),
		activities: service.NewActivityService(&service.ActivityService{
			Activities: app.DB.Activity(),
			Exists:     registry,
			Resolver:   registry,
			Events:     app.Events,
		}),
	}
}

func (app *Application) routes() http.Handler {
	mux := http.NewServeMux()

	svc := app.services()
	eh := app.errorHandler

	mid := middleware.New(eh, app.Logger, app.DB.User(), app.Tokens)

	statusHandler := handler.NewStatusHandler(&handler.StatusHandler{ErrHandler: eh})
	authHandler := handler.NewAuthHandler(&handler.AuthHandler{Service: svc.auth, ErrHandler: eh})
	userHandler := handler.NewUserHandler(&handler.UserHandler{Service: svc.users, ErrHandler: eh})
	accountHandler := handler.NewAccountHandler(&handler.AccountHandler{Service: svc.accounts, ErrHandler: eh})
	contactHandler := handler.NewContactHandler(&handler.ContactHandler{Service: svc.contacts, ErrHandler: eh})
	leadHandler := handler.NewLeadHandler(&handler.LeadHandler{Service: svc.leads, ErrHandler: eh})
	opportunityHandler := handler.NewOpportunityHandler(&handler.OpportunityHandler{Service: svc.opportunities, ErrHandler: eh})
	projectHandler := handler.NewProjectHandler(&handler.ProjectHandler{Service: svc.projects, ErrHandler: eh})
	ticketHandler := handler.NewTicketHandler(&handler.TicketHandler{Service: svc.tickets, ErrHandler: eh})
	activityHandler := handler.NewActivityHandler(&handler.ActivityHandler{Service: svc.activities, ErrHandler: eh})
	fileHandler := handler.NewFileHandler(&handler.FileHandler{FileUploader: app.FileUploader, ErrHandler: eh})

	prefix := "/" + strings.Trim(app.Config.ApiPrefix, "/")

	public := func(pattern string, h http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		mux.Handle(method+" "+prefix+path, h)
	}
	protected := func(pattern string, h http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		mux.Handle(method+" "+prefix+path, mid.RequireAuthenticatedUser(h))
	}
	admin := func(pattern string, h http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		mux.Handle(method+" "+prefix+path, mid.RequireRole(models.RoleAdmin, h))
	}

	mux.HandleFunc("/", eh.NotFound)

	public("GET /status", statusHandler.HandleStatus)

	public("POST /auth/register", authHandler.HandleAuthRegister)
	public("POST /auth/login", authHandler.HandleAuthLogin)
	protected("GET /auth/profile", authHandler.HandleAuthProfile)

	admin("POST /users", userHandler.HandleUsersCreate)
	protected("GET /users", userHandler.HandleUsersList)
	protected("GET /users/profile", userHandler.HandleUsersProfile)
	protected("GET /users/{id}", userHandler.HandleUsersGet)
	protected("PATCH /users/{id}", userHandler.HandleUsersUpdate)
	admin("DELETE /users/{id}", userHandler.HandleUsersDelete)

	protected("POST /accounts", accountHandler.HandleAccountsCreate)
	protected("GET /accounts", accountHandler.HandleAccountsList)
	protected("GET /accounts/{id}", accountHandler.HandleAccountsGet)
	protected("PATCH /accounts/{id}", accountHandler.HandleAccountsUpdate)
	protected("DELETE /accounts/{id}", accountHandler.HandleAccountsDelete)

	protected("POST /contacts", contactHandler.HandleContactsCreate)
	protected("GET /contacts", contactHandler.HandleContactsList)
	protected("GET /contacts/{id}", contactHandler.HandleContactsGet)
	protected("PATCH /contacts/{id}", contactHandler.HandleContactsUpdate)
	protected("DELETE /contacts/{id}", contactHandler.HandleContactsDelete)

	protected("POST /leads", leadHandler.HandleLeadsCreate)
	protected("GET /leads", leadHandler.HandleLeadsList)
	protected("GET /leads/{id}", leadHandler.HandleLeadsGet)
	protected("PATCH /leads/{id}", leadHandler.HandleLeadsUpdate)
	protected("DELETE /leads/{id}", leadHandler.HandleLeadsDelete)
	protected("POST /leads/{id}/convert", leadHandler.HandleLeadsConvert)

	protected("POST /opportunities", opportunityHandler.HandleOpportunitiesCreate)
	protected("GET /opportunities", opportunityHandler.HandleOpportunitiesList)
	protected("GET /opportunities/{id}", opportunityHandler.HandleOpportunitiesGet)
	protected("PATCH /opportunities/{id}", opportunityHandler.HandleOpportunitiesUpdate)
	protected("DELETE /opportunities/{id}", opportunityHandler.HandleOpportunitiesDelete)

	protected("POST /projects", projectHandler.HandleProjectsCreate)
	protected("GET /projects", projectHandler.HandleProjectsList)
	protected("GET /projects/{id}", projectHandler.HandleProjectsGet)
	protected("PATCH /projects/{id}", projectHandler.HandleProjectsUpdate)
	protected("DELETE /projects/{id}", projectHandler.HandleProjectsDelete)

	protected("POST /tickets", ticketHandler.HandleTicketsCreate)
	protected("GET /tickets", ticketHandler.HandleTicketsList)
	protected("GET /tickets/{id}", ticketHandler.HandleTicketsGet)
	protected("PATCH /tickets/{id}", ticketHandler.HandleTicketsUpdate)
	protected("DELETE /tickets/{id}", ticketHandler.HandleTicketsDelete)
	protected("POST /tickets/{id}/comments", ticketHandler.HandleTicketCommentsCreate)
	protected("GET /tickets/{id}/comments", ticketHandler.HandleTicketCommentsList)

	protected("POST /activities", activityHandler.HandleActivitiesCreate)
	protected("GET /activities/{id}", activityHandler.HandleActivitiesGet)
	protected("GET /activities/related/{entityType}/{entityId}", activityHandler.HandleActivitiesRelated)

	protected("POST /files", fileHandler.HandleUploadFile)

	return mid.LogAccess(mid.RecoverPanic(mid.Authenticate(mux)))
}

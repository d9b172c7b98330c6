package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cradoe/crm/internal/context"
	"github.com/cradoe/crm/internal/errHandler"
	"github.com/cradoe/crm/internal/repository"
	"github.com/cradoe/crm/internal/response"
	"github.com/cradoe/crm/internal/token"

	"github.com/tomasen/realip"
)

type TokenVerifier interface {
	Verify(token string) *token.Claims
}

type Middleware struct {
	errHandler *errHandler.ErrorRepository
	logger     *slog.Logger
	UserRepo   repository.UserRepository
	tokens     TokenVerifier
}

func New(errHandler *errHandler.ErrorRepository, logger *slog.Logger, UserRepo repository.UserRepository, tokens TokenVerifier) *Middleware {
	return &Middleware{
		errHandler: errHandler,
		logger:     logger,
		UserRepo:   UserRepo,
		tokens:     tokens,
	}
}

func (mid *Middleware) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				mid.errHandler.ServerError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) LogAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
		)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount)

		mid.logger.Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

// Authenticate attaches the user named by a valid bearer token to the request.
// Requests without a token pass through anonymously; a bad token is rejected.
func (mid *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")

		if authorizationHeader != "" {
			headerParts := strings.Split(authorizationHeader, " ")

			if len(headerParts) != 2 || headerParts[0] != "Bearer" {
				mid.errHandler.InvalidAuthenticationToken(w, r)
				return
			}

			claims := mid.tokens.Verify(headerParts[1])
			if claims == nil {
				mid.errHandler.InvalidAuthenticationToken(w, r)
				return
			}

			user, found, err := mid.UserRepo.GetOne(r.Context(), claims.UserID)
			if err != nil {
				mid.errHandler.ServerError(w, r, err)
				return
			}

			if found {
				r = context.ContextSetAuthenticatedUser(r, user)
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) RequireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticatedUser := context.ContextGetAuthenticatedUser(r)

		if authenticatedUser == nil {
			mid.errHandler.AuthenticationRequired(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole implies RequireAuthenticatedUser.
func (mid *Middleware) RequireRole(role string, next http.Handler) http.Handler {
	return mid.RequireAuthenticatedUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !context.ContextGetAuthenticatedUser(r).HasRole(role) {
			mid.errHandler.Forbidden(w, r)
			return
		}

		next.ServeHTTP(w, r)
	}))
}

// Package http provides the HTTP handlers and middleware of the authorization context.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/portfolio-auth/internal/auth/http"
	"github.com/allisson/portfolio-auth/internal/authz/http/dto"
	authzUseCase "github.com/allisson/portfolio-auth/internal/authz/usecase"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
	"github.com/allisson/portfolio-auth/internal/httputil"
	customValidation "github.com/allisson/portfolio-auth/internal/validation"
)

const (
	userResource = "user"
	readAction   = "read"
)

// AuthorizationHandler handles HTTP requests for authorization decisions.
type AuthorizationHandler struct {
	authorizationUseCase authzUseCase.AuthorizationUseCase
	logger               *slog.Logger
}

// NewAuthorizationHandler creates a new authorization handler with required dependencies.
func NewAuthorizationHandler(
	authorizationUseCase authzUseCase.AuthorizationUseCase,
	logger *slog.Logger,
) *AuthorizationHandler {
	return &AuthorizationHandler{
		authorizationUseCase: authorizationUseCase,
		logger:               logger,
	}
}

// DecideHandler evaluates a permission check.
// POST /v1/authz/decisions - Requires authentication. Returns 200 OK with the decision whether
// it grants or denies; an omitted username is replaced by the token subject.
//
// The roles, permissions and organization of another user are only included when the caller
// holds user:read, the permission that guards the access view.
func (h *AuthorizationHandler) DecideHandler(c *gin.Context) {
	var req dto.DecisionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	claims, ok := authHTTP.GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = claims.Subject
	}

	decision := h.authorizationUseCase.Authorize(c.Request.Context(), username, req.Resource, req.Action)
	response := dto.MapDecisionToResponse(decision)
	if username != claims.Subject && response.HasAccessDetails() && !h.canReadUsers(c, claims.Subject) {
		response = response.WithoutAccessDetails()
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthorizationHandler) canReadUsers(c *gin.Context, caller string) bool {
	decision := h.authorizationUseCase.Authorize(c.Request.Context(), caller, userResource, readAction)
	return decision.Authorized
}

// AccessHandler returns the roles, permissions and organization of a user.
// GET /v1/authz/users/:username/access - Requires the user:read permission.
func (h *AuthorizationHandler) AccessHandler(c *gin.Context) {
	access, err := h.authorizationUseCase.Describe(c.Request.Context(), c.Param("username"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserAccessToResponse(access))
}

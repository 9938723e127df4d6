package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	"github.com/allisson/portfolio-auth/internal/auth/http/dto"
	authUseCase "github.com/allisson/portfolio-auth/internal/auth/usecase"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
	"github.com/allisson/portfolio-auth/internal/httputil"
	customValidation "github.com/allisson/portfolio-auth/internal/validation"
)

// AuthHandler handles HTTP requests for authentication and token operations.
type AuthHandler struct {
	authenticationUseCase authUseCase.AuthenticationUseCase
	tokenUseCase          authUseCase.TokenUseCase
	logger                *slog.Logger
}

// NewAuthHandler creates a new authentication handler with required dependencies.
func NewAuthHandler(
	authenticationUseCase authUseCase.AuthenticationUseCase,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authenticationUseCase: authenticationUseCase,
		tokenUseCase:          tokenUseCase,
		logger:                logger,
	}
}

// LoginHandler authenticates a username/password pair and issues a token.
// POST /v1/auth/login - Only registered when mock authentication is enabled.
// Returns 200 OK with the outcome on success, 401 on rejected credentials.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	outcome := h.authenticationUseCase.AuthenticateCredentials(c.Request.Context(), req.ToCredentials())
	h.writeOutcome(c, outcome)
}

// FederatedLoginHandler issues a token for an identity asserted by a trusted upstream
// authenticator. POST /v1/auth/federated - Requires the X-Upstream-Key header.
func (h *AuthHandler) FederatedLoginHandler(c *gin.Context) {
	var req dto.FederatedLoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	outcome := h.authenticationUseCase.Authenticate(c.Request.Context(), req.ToIdentity())
	h.writeOutcome(c, outcome)
}

// ValidateHandler reports the validation outcome of a token.
// POST /v1/auth/validate - Always returns 200 OK; the outcome tells whether the token is usable.
func (h *AuthHandler) ValidateHandler(c *gin.Context) {
	var req dto.TokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	outcome := h.tokenUseCase.Validate(c.Request.Context(), req.Token)
	c.JSON(http.StatusOK, dto.MapValidationOutcomeToResponse(outcome))
}

// RefreshHandler re-issues a token with a fresh validity window.
// POST /v1/auth/refresh - Returns 200 OK with the outcome, 401 when the token is rejected.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req dto.TokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	outcome := h.authenticationUseCase.Refresh(c.Request.Context(), req.Token)
	h.writeOutcome(c, outcome)
}

// MeHandler returns the claims of the presented token.
// GET /v1/auth/me - Requires AuthenticationMiddleware.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	claims, ok := GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClaimsToResponse(claims))
}

func (h *AuthHandler) writeOutcome(c *gin.Context, outcome *authDomain.AuthenticationOutcome) {
	status := http.StatusOK
	switch {
	case outcome.Success:
	case outcome.Error == authDomain.MsgAuthenticationUnavailable:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusUnauthorized
	}

	c.JSON(status, dto.MapAuthenticationOutcomeToResponse(outcome))
}

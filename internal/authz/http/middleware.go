package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/portfolio-auth/internal/auth/http"
	authzUseCase "github.com/allisson/portfolio-auth/internal/authz/usecase"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
	"github.com/allisson/portfolio-auth/internal/httputil"
)

// AuthorizationMiddleware requires the authenticated user to hold the resource:action
// permission.
//
// This middleware MUST be used after AuthenticationMiddleware. The decision is taken from the
// current role assignments in the store, not from the authorities embedded in the token, so a
// deactivated user loses access before the token expires.
//
// Error handling:
//   - No claims in context → 401 Unauthorized
//   - Denied decision → 403 Forbidden with the denial reason
func AuthorizationMiddleware(
	authorizationUseCase authzUseCase.AuthorizationUseCase,
	resource, action string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authHTTP.GetClaims(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no authenticated user in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		decision := authorizationUseCase.Authorize(c.Request.Context(), claims.Subject, resource, action)
		if !decision.Authorized {
			logger.Debug("authorization failed",
				slog.String("username", claims.Subject),
				slog.String("resource", resource),
				slog.String("action", action),
				slog.String("reason", decision.Reason))
			httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrForbidden, decision.Reason), logger)
			return
		}

		c.Next()
	}
}

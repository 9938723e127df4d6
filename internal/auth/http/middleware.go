package http

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/portfolio-auth/internal/auth/usecase"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
	"github.com/allisson/portfolio-auth/internal/httputil"
)

// UpstreamKeyHeader carries the shared key of a trusted upstream authenticator.
const UpstreamKeyHeader = "X-Upstream-Key"

// AuthenticationMiddleware provides authentication via Bearer token in the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Validates the token using tokenUseCase.Validate()
// 3. Stores the verified claims in the request context
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Expired, invalid or unsupported token → 401 Unauthorized with the validation reason
//
// Downstream handlers read the claims with GetClaims.
func AuthenticationMiddleware(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		outcome := tokenUseCase.Validate(c.Request.Context(), token)
		if !outcome.Valid() {
			logger.Debug("authentication failed",
				slog.String("status", string(outcome.Status)),
				slog.String("reason", outcome.Reason))
			httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, outcome.Reason), logger)
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), outcome.Claims))

		logger.Debug("authentication successful", slog.String("username", outcome.Claims.Subject))

		c.Next()
	}
}

// UpstreamKeyMiddleware admits only requests presenting sharedKey in the X-Upstream-Key header.
// The comparison runs in constant time.
func UpstreamKeyMiddleware(sharedKey string, logger *slog.Logger) gin.HandlerFunc {
	expected := []byte(sharedKey)

	return func(c *gin.Context) {
		presented := []byte(c.GetHeader(UpstreamKeyHeader))
		if len(expected) == 0 || subtle.ConstantTimeCompare(presented, expected) != 1 {
			logger.Warn("upstream assertion rejected: invalid shared key",
				slog.String("client_ip", c.ClientIP()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		c.Next()
	}
}

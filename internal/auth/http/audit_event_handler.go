package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/portfolio-auth/internal/auth/http/dto"
	authUseCase "github.com/allisson/portfolio-auth/internal/auth/usecase"
	"github.com/allisson/portfolio-auth/internal/httputil"
)

// AuditEventHandler handles HTTP requests for audit event operations.
type AuditEventHandler struct {
	auditEventUseCase authUseCase.AuditEventUseCase
	logger            *slog.Logger
}

// NewAuditEventHandler creates a new audit event handler with required dependencies.
func NewAuditEventHandler(
	auditEventUseCase authUseCase.AuditEventUseCase,
	logger *slog.Logger,
) *AuditEventHandler {
	return &AuditEventHandler{
		auditEventUseCase: auditEventUseCase,
		logger:            logger,
	}
}

// ListHandler retrieves audit events with pagination and optional time filtering.
// GET /v1/audit-events?offset=0&limit=50&created_at_from=2026-02-01T00:00:00Z&created_at_to=2026-02-14T23:59:59Z
// Requires the audit:read permission. Events are ordered by created_at descending and both
// time boundaries are inclusive.
func (h *AuditEventHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	createdAtFrom, createdAtTo, err := httputil.ParseTimeRange(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	events, err := h.auditEventUseCase.List(c.Request.Context(), offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditEventsToListResponse(events))
}

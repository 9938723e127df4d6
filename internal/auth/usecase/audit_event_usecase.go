package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	authService "github.com/allisson/portfolio-auth/internal/auth/service"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
)

// verifyBatchSize is the page size used when walking a time range for verification.
const verifyBatchSize = 500

// auditEventUseCase implements AuditEventUseCase with signed, persisted events.
type auditEventUseCase struct {
	repo   AuditEventRepository
	signer authService.AuditSigner
}

// Record signs and stores an event. CreatedAt is truncated to microseconds so the signature
// survives the round trip through PostgreSQL and MySQL timestamp columns.
func (a *auditEventUseCase) Record(
	ctx context.Context,
	eventType authDomain.AuditEventType,
	username, sessionID string,
	metadata map[string]any,
) error {
	event := &authDomain.AuditEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Username:  username,
		SessionID: sessionID,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	signature, err := a.signer.Sign(event)
	if err != nil {
		return apperrors.Wrap(err, "failed to sign audit event")
	}
	event.Signature = signature

	if err := a.repo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to create audit event")
	}

	return nil
}

// List retrieves events newest first with optional inclusive time bounds.
func (a *auditEventUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*authDomain.AuditEvent, error) {
	events, err := a.repo.List(ctx, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	return events, nil
}

// DeleteOlderThan removes events created more than days days ago.
func (a *auditEventUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must not be negative")
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	count, err := a.repo.DeleteOlderThan(ctx, cutoff, dryRun)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit events")
	}
	return count, nil
}

// Verify checks the signature of a single event.
func (a *auditEventUseCase) Verify(event *authDomain.AuditEvent) error {
	if !event.IsSigned() {
		return authDomain.ErrSignatureInvalid
	}
	return a.signer.Verify(event)
}

// VerifyBatch walks every event created in [start, end] and checks its signature.
func (a *auditEventUseCase) VerifyBatch(
	ctx context.Context,
	start, end time.Time,
) (*VerificationReport, error) {
	report := &VerificationReport{InvalidEvents: make([]uuid.UUID, 0)}

	for offset := 0; ; offset += verifyBatchSize {
		events, err := a.repo.List(ctx, offset, verifyBatchSize, &start, &end)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list audit events")
		}

		for _, event := range events {
			report.TotalChecked++
			if !event.IsSigned() {
				report.UnsignedCount++
				continue
			}
			report.SignedCount++

			if err := a.signer.Verify(event); err != nil {
				if !errors.Is(err, authDomain.ErrSignatureInvalid) {
					return nil, err
				}
				report.InvalidCount++
				report.InvalidEvents = append(report.InvalidEvents, event.ID)
				continue
			}
			report.ValidCount++
		}

		if len(events) < verifyBatchSize {
			return report, nil
		}
	}
}

// NewAuditEventUseCase creates an AuditEventUseCase.
func NewAuditEventUseCase(repo AuditEventRepository, signer authService.AuditSigner) AuditEventUseCase {
	return &auditEventUseCase{
		repo:   repo,
		signer: signer,
	}
}

// logAuditRecorder writes audit events to the structured log instead of the database.
type logAuditRecorder struct {
	logger *slog.Logger
}

// Record logs the event at info level.
func (l *logAuditRecorder) Record(
	ctx context.Context,
	eventType authDomain.AuditEventType,
	username, sessionID string,
	metadata map[string]any,
) error {
	l.logger.InfoContext(ctx, "audit event",
		slog.String("event_type", string(eventType)),
		slog.String("username", username),
		slog.String("session_id", sessionID),
		slog.Any("metadata", metadata),
	)
	return nil
}

// NewLogAuditRecorder creates an AuditRecorder that writes to logger.
func NewLogAuditRecorder(logger *slog.Logger) AuditRecorder {
	return &logAuditRecorder{logger: logger}
}

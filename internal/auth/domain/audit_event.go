package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent records an authentication event. Signature is an HMAC-SHA256 over the canonical
// form of the event and is empty when the event has not been signed.
type AuditEvent struct {
	ID        uuid.UUID
	EventType AuditEventType
	Username  string
	SessionID string
	Metadata  map[string]any
	Signature []byte
	CreatedAt time.Time
}

// IsSigned reports whether the event carries a full-length HMAC-SHA256 signature.
func (e *AuditEvent) IsSigned() bool {
	return len(e.Signature) == 32
}

package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
)

// auditSigningInfo is the HKDF info label; bump the version when the canonical form changes.
const auditSigningInfo = "audit-event-signing-v1"

type auditSigner struct {
	signingKey []byte
}

// NewAuditSigner creates an HMAC-SHA256 audit event signer whose 32-byte key is derived from
// secret with HKDF-SHA256, so the token signing secret is never used directly as a MAC key.
func NewAuditSigner(secret []byte) (AuditSigner, error) {
	signingKey, err := deriveSigningKey(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	return &auditSigner{signingKey: signingKey}, nil
}

func deriveSigningKey(secret []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(auditSigningInfo))

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, signingKey); err != nil {
		return nil, err
	}

	return signingKey, nil
}

// canonicalizeEvent renders the event as
// id || event_type || username || session_id || metadata || created_at
// with variable-length fields length-prefixed.
func canonicalizeEvent(event *authDomain.AuditEvent) ([]byte, error) {
	buf := make([]byte, 0, 512)

	buf = append(buf, event.ID[:]...)
	buf = appendLengthPrefixed(buf, []byte(event.EventType))
	buf = appendLengthPrefixed(buf, []byte(event.Username))
	buf = appendLengthPrefixed(buf, []byte(event.SessionID))

	if event.Metadata != nil {
		// encoding/json sorts map keys, which keeps the encoding deterministic.
		metadataBytes, err := json.Marshal(event.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		buf = appendLengthPrefixed(buf, metadataBytes)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	buf = binary.BigEndian.AppendUint64(buf, uint64(event.CreatedAt.UnixNano()))

	return buf, nil
}

func appendLengthPrefixed(buf []byte, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

// Sign returns the HMAC-SHA256 signature of event.
func (a *auditSigner) Sign(event *authDomain.AuditEvent) ([]byte, error) {
	canonical, err := canonicalizeEvent(event)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize event: %w", err)
	}

	mac := hmac.New(sha256.New, a.signingKey)
	mac.Write(canonical)

	return mac.Sum(nil), nil
}

// Verify returns ErrSignatureInvalid if event was altered after signing.
func (a *auditSigner) Verify(event *authDomain.AuditEvent) error {
	expected, err := a.Sign(event)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(event.Signature, expected) {
		return authDomain.ErrSignatureInvalid
	}

	return nil
}

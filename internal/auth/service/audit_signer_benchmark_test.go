package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
)

func benchmarkEvent() *authDomain.AuditEvent {
	return &authDomain.AuditEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: authDomain.EventTokenIssued,
		Username:  "benchmark",
		SessionID: "s-bench",
		Metadata:  map[string]any{"authorities": []string{"READ_PORTFOLIO", "WRITE_PORTFOLIO"}},
		CreatedAt: time.Now().UTC(),
	}
}

func BenchmarkAuditSigner_Sign(b *testing.B) {
	signer, err := NewAuditSigner(bytes.Repeat([]byte("s"), 64))
	if err != nil {
		b.Fatal(err)
	}
	event := benchmarkEvent()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := signer.Sign(event); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAuditSigner_Verify(b *testing.B) {
	signer, err := NewAuditSigner(bytes.Repeat([]byte("s"), 64))
	if err != nil {
		b.Fatal(err)
	}
	event := benchmarkEvent()
	event.Signature, err = signer.Sign(event)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := signer.Verify(event); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJwtTokenCodec_Encode(b *testing.B) {
	codec, err := NewTokenCodec(bytes.Repeat([]byte("k"), authDomain.MinSigningKeyLength))
	if err != nil {
		b.Fatal(err)
	}
	iat := time.Now().UTC().Truncate(time.Second)
	claims := &authDomain.TokenClaims{
		Subject:     "benchmark",
		Authorities: []string{"READ_PORTFOLIO"},
		IssuedAt:    iat,
		ExpiresAt:   iat.Add(time.Hour),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Encode(claims); err != nil {
			b.Fatal(err)
		}
	}
}

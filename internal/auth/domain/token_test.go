package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenClaims_IsExpiredAt(t *testing.T) {
	exp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	claims := &TokenClaims{ExpiresAt: exp}

	assert.False(t, claims.IsExpiredAt(exp.Add(-time.Second)))
	assert.True(t, claims.IsExpiredAt(exp), "expiry instant itself is expired")
	assert.True(t, claims.IsExpiredAt(exp.Add(time.Second)))
}

func TestTokenClaims_HasSession(t *testing.T) {
	assert.False(t, (&TokenClaims{}).HasSession())
	assert.True(t, (&TokenClaims{SessionID: "s-1"}).HasSession())
}

func TestValidationOutcome(t *testing.T) {
	claims := &TokenClaims{Subject: "user1", Authorities: []string{}}

	t.Run("Valid", func(t *testing.T) {
		outcome := NewValidOutcome(claims)
		assert.True(t, outcome.Valid())
		assert.Empty(t, outcome.Reason)
		assert.Same(t, claims, outcome.Claims)
	})

	t.Run("Expired", func(t *testing.T) {
		outcome := NewExpiredOutcome(claims)
		assert.False(t, outcome.Valid())
		assert.Equal(t, StatusExpired, outcome.Status)
		assert.Equal(t, "token validation failed: token has expired: unauthorized", outcome.Reason)
		assert.Same(t, claims, outcome.Claims)
	})

	t.Run("Invalid", func(t *testing.T) {
		outcome := NewInvalidOutcome(errors.New("bad segment"))
		assert.False(t, outcome.Valid())
		assert.Equal(t, StatusInvalid, outcome.Status)
		assert.Equal(t, "token validation failed: bad segment", outcome.Reason)
		assert.Nil(t, outcome.Claims)
	})

	t.Run("Unsupported", func(t *testing.T) {
		outcome := NewUnsupportedOutcome(ErrUnsupportedAlgorithm)
		assert.Equal(t, StatusUnsupported, outcome.Status)
		assert.Contains(t, outcome.Reason, "validation failed")
		assert.Nil(t, outcome.Claims)
	})

	t.Run("NilIsNotValid", func(t *testing.T) {
		var outcome *ValidationOutcome
		assert.False(t, outcome.Valid())
	})
}

func TestAuthenticationOutcome(t *testing.T) {
	exp := time.Now().UTC().Add(time.Hour).Truncate(time.Second)

	t.Run("SuccessCopiesClaims", func(t *testing.T) {
		outcome := NewAuthenticationSuccess(&IssuedToken{
			Token: "a.b.c",
			Claims: &TokenClaims{
				Subject:     "user1",
				Authorities: []string{"READ_PORTFOLIO"},
				SessionID:   "s-1",
				ExpiresAt:   exp,
			},
		})
		require.True(t, outcome.Success)
		assert.Equal(t, "user1", outcome.Username)
		assert.Equal(t, []string{"READ_PORTFOLIO"}, outcome.Authorities)
		assert.Equal(t, "a.b.c", outcome.Token)
		assert.Equal(t, "s-1", outcome.SessionID)
		assert.Equal(t, exp, outcome.ExpiresAt)
		assert.Empty(t, outcome.Error)
	})

	t.Run("SuccessWithoutTokenBecomesFailure", func(t *testing.T) {
		outcome := NewAuthenticationSuccess(&IssuedToken{Claims: &TokenClaims{Subject: "user1"}})
		assert.False(t, outcome.Success)
		assert.Empty(t, outcome.Token)
		assert.NotEmpty(t, outcome.Error)

		assert.False(t, NewAuthenticationSuccess(nil).Success)
	})

	t.Run("Failure", func(t *testing.T) {
		outcome := NewAuthenticationFailure("identity not authenticated")
		assert.False(t, outcome.Success)
		assert.Empty(t, outcome.Token)
		assert.Equal(t, "identity not authenticated", outcome.Error)
	})
}

func TestAuditEvent_IsSigned(t *testing.T) {
	assert.True(t, (&AuditEvent{Signature: make([]byte, 32)}).IsSigned())
	assert.False(t, (&AuditEvent{Signature: make([]byte, 31)}).IsSigned())
	assert.False(t, (&AuditEvent{}).IsSigned())
}

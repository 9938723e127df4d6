package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
)

func TestMapAuthenticationOutcomeToResponse(t *testing.T) {
	t.Run("Success_MapSuccessfulOutcome", func(t *testing.T) {
		expiresAt := time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)
		outcome := authDomain.NewAuthenticationSuccess(&authDomain.IssuedToken{
			Token: "a.b.c",
			Claims: &authDomain.TokenClaims{
				Subject:     "user1",
				Authorities: []string{"ROLE_ANALYST"},
				SessionID:   "idx-1",
				ExpiresAt:   expiresAt,
			},
		})

		response := MapAuthenticationOutcomeToResponse(outcome)

		assert.True(t, response.Success)
		assert.Equal(t, "user1", response.Username)
		assert.Equal(t, []string{"ROLE_ANALYST"}, response.Authorities)
		assert.Equal(t, "a.b.c", response.Token)
		assert.Equal(t, "idx-1", response.SessionID)
		require.NotNil(t, response.ExpiresAt)
		assert.Equal(t, expiresAt, *response.ExpiresAt)
		assert.Empty(t, response.Error)
	})

	t.Run("Success_MapFailedOutcome", func(t *testing.T) {
		outcome := authDomain.NewAuthenticationFailure(authDomain.MsgNotAuthenticated)

		response := MapAuthenticationOutcomeToResponse(outcome)

		assert.False(t, response.Success)
		assert.Empty(t, response.Token)
		assert.Nil(t, response.ExpiresAt)
		assert.Equal(t, authDomain.MsgNotAuthenticated, response.Error)
	})
}

func TestMapValidationOutcomeToResponse(t *testing.T) {
	claims := &authDomain.TokenClaims{
		Subject:   "user1",
		IssuedAt:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		ExpiresAt: time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC),
	}

	t.Run("Success_ValidOutcome", func(t *testing.T) {
		response := MapValidationOutcomeToResponse(authDomain.NewValidOutcome(claims))

		assert.True(t, response.Valid)
		assert.Equal(t, "valid", response.Status)
		require.NotNil(t, response.Claims)
		assert.Equal(t, "user1", response.Claims.Username)
		assert.Equal(t, []string{}, response.Claims.Authorities)
	})

	t.Run("Success_ExpiredOutcomeKeepsClaims", func(t *testing.T) {
		response := MapValidationOutcomeToResponse(authDomain.NewExpiredOutcome(claims))

		assert.False(t, response.Valid)
		assert.Equal(t, "expired", response.Status)
		assert.NotEmpty(t, response.Reason)
		require.NotNil(t, response.Claims)
	})

	t.Run("Success_InvalidOutcomeHasNoClaims", func(t *testing.T) {
		response := MapValidationOutcomeToResponse(authDomain.NewInvalidOutcome(errors.New("bad token")))

		assert.False(t, response.Valid)
		assert.Equal(t, "invalid", response.Status)
		assert.Contains(t, response.Reason, authDomain.ValidationFailedPrefix)
		assert.Nil(t, response.Claims)
	})
}

func TestMapAuditEventsToListResponse(t *testing.T) {
	t.Run("Success_MapEvents", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()
		events := []*authDomain.AuditEvent{
			{
				ID:        id,
				EventType: authDomain.EventLoginSuccess,
				Username:  "user1",
				SessionID: "idx-1",
				Metadata:  map[string]any{"authorities": []string{"ROLE_ANALYST"}},
				Signature: make([]byte, 32),
				CreatedAt: now,
			},
			{
				ID:        uuid.Must(uuid.NewV7()),
				EventType: authDomain.EventLoginFailed,
				Username:  "user2",
				CreatedAt: now,
			},
		}

		response := MapAuditEventsToListResponse(events)

		require.Len(t, response.Data, 2)
		assert.Equal(t, id.String(), response.Data[0].ID)
		assert.Equal(t, "auth.login_success", response.Data[0].EventType)
		assert.True(t, response.Data[0].Signed)
		assert.False(t, response.Data[1].Signed)
	})

	t.Run("Success_EmptyListIsNotNil", func(t *testing.T) {
		response := MapAuditEventsToListResponse(nil)
		assert.NotNil(t, response.Data)
		assert.Len(t, response.Data, 0)
	})
}

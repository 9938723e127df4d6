package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	authMocks "github.com/allisson/portfolio-auth/internal/auth/usecase/mocks"
)

func testClaims() *authDomain.TokenClaims {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &authDomain.TokenClaims{
		Subject:     "alice",
		Authorities: []string{"ROLE_ANALYST", "READ_PORTFOLIO"},
		SessionID:   "session-1",
		IssuedAt:    issuedAt,
		ExpiresAt:   issuedAt.Add(time.Hour),
	}
}

func TestRunIssueToken(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	authorities := []string{"ROLE_ANALYST", "READ_PORTFOLIO"}

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &authMocks.MockTokenUseCase{}
		mockUseCase.On("Issue", ctx, "alice", authorities, "session-1").
			Return(&authDomain.IssuedToken{Token: "header.payload.sig", Claims: testClaims()}, nil)

		var out bytes.Buffer
		err := RunIssueToken(ctx, mockUseCase, logger, &out, "alice", authorities, "session-1", "text")

		require.NoError(t, err)
		assert.Equal(t, "header.payload.sig\n", out.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &authMocks.MockTokenUseCase{}
		mockUseCase.On("Issue", ctx, "alice", authorities, "session-1").
			Return(&authDomain.IssuedToken{Token: "header.payload.sig", Claims: testClaims()}, nil)

		var out bytes.Buffer
		err := RunIssueToken(ctx, mockUseCase, logger, &out, "alice", authorities, "session-1", "json")
		require.NoError(t, err)

		var result struct {
			Token  string       `json:"token"`
			Claims claimsOutput `json:"claims"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, "header.payload.sig", result.Token)
		assert.Equal(t, "alice", result.Claims.Subject)
		assert.Equal(t, authorities, result.Claims.Authorities)
		assert.Equal(t, "2025-03-01T13:00:00Z", result.Claims.ExpiresAt)
	})

	t.Run("blank-username", func(t *testing.T) {
		mockUseCase := &authMocks.MockTokenUseCase{}
		mockUseCase.On("Issue", ctx, " ", []string(nil), "").Return(nil, authDomain.ErrUsernameRequired)

		err := RunIssueToken(ctx, mockUseCase, logger, &bytes.Buffer{}, " ", nil, "", "text")

		require.Error(t, err)
		assert.ErrorIs(t, err, authDomain.ErrUsernameRequired)
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunIssueToken(ctx, &authMocks.MockTokenUseCase{}, logger, &bytes.Buffer{}, "alice", nil, "", "xml")
		require.Error(t, err)
	})
}

func TestRunValidateToken(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("valid-text", func(t *testing.T) {
		mockUseCase := &authMocks.MockTokenUseCase{}
		mockUseCase.On("Validate", ctx, "good").Return(authDomain.NewValidOutcome(testClaims()))

		var out bytes.Buffer
		err := RunValidateToken(ctx, mockUseCase, logger, &out, " good\n", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Status: valid")
		assert.Contains(t, out.String(), "Subject: alice")
		assert.Contains(t, out.String(), "Authorities: ROLE_ANALYST, READ_PORTFOLIO")
		assert.Contains(t, out.String(), "Session: session-1")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("expired-json", func(t *testing.T) {
		mockUseCase := &authMocks.MockTokenUseCase{}
		mockUseCase.On("Validate", ctx, "old").Return(authDomain.NewExpiredOutcome(testClaims()))

		var out bytes.Buffer
		err := RunValidateToken(ctx, mockUseCase, logger, &out, "old", "json")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "token is expired")

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, false, result["valid"])
		assert.Equal(t, "expired", result["status"])
		assert.NotNil(t, result["claims"])
	})

	t.Run("invalid-text", func(t *testing.T) {
		mockUseCase := &authMocks.MockTokenUseCase{}
		mockUseCase.On("Validate", ctx, "garbage").
			Return(authDomain.NewInvalidOutcome(authDomain.ErrTokenMalformed))

		var out bytes.Buffer
		err := RunValidateToken(ctx, mockUseCase, logger, &out, "garbage", "text")

		require.Error(t, err)
		assert.Contains(t, out.String(), "Status: invalid")
		assert.Contains(t, out.String(), "Reason: ")
		assert.NotContains(t, out.String(), "Subject:")
	})
}

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authUseCase "github.com/allisson/portfolio-auth/internal/auth/usecase"
	authMocks "github.com/allisson/portfolio-auth/internal/auth/usecase/mocks"
)

func TestRunVerifyAuditEvents(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	startDate := "2025-01-01"
	endDate := "2025-01-02"

	report := &authUseCase.VerificationReport{
		TotalChecked:  10,
		SignedCount:   10,
		ValidCount:    10,
		InvalidEvents: []uuid.UUID{},
	}

	t.Run("success-text", func(t *testing.T) {
		mockUseCase := &authMocks.MockAuditEventUseCase{}
		mockUseCase.On("VerifyBatch", ctx,
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		).Return(report, nil)

		var out bytes.Buffer
		err := RunVerifyAuditEvents(ctx, mockUseCase, logger, &out, startDate, endDate, "text")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Audit event integrity verification")
		assert.Contains(t, out.String(), "Status: PASSED")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success-json", func(t *testing.T) {
		mockUseCase := &authMocks.MockAuditEventUseCase{}
		mockUseCase.On("VerifyBatch", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(report, nil)

		var out bytes.Buffer
		err := RunVerifyAuditEvents(ctx, mockUseCase, logger, &out, "2025-01-01 08:00:00", endDate, "json")
		require.NoError(t, err)

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, float64(10), result["total_checked"])
		assert.Equal(t, true, result["passed"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("no-events", func(t *testing.T) {
		mockUseCase := &authMocks.MockAuditEventUseCase{}
		mockUseCase.On("VerifyBatch", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(&authUseCase.VerificationReport{}, nil)

		var out bytes.Buffer
		err := RunVerifyAuditEvents(ctx, mockUseCase, logger, &out, startDate, endDate, "text")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "no events found")
	})

	t.Run("invalid-start-date", func(t *testing.T) {
		err := RunVerifyAuditEvents(ctx, nil, logger, nil, "invalid", endDate, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid start date")
	})

	t.Run("invalid-end-date", func(t *testing.T) {
		err := RunVerifyAuditEvents(ctx, nil, logger, nil, startDate, "01/02/2025", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid end date")
	})

	t.Run("end-before-start", func(t *testing.T) {
		err := RunVerifyAuditEvents(ctx, nil, logger, nil, endDate, startDate, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "end date must be after start date")
	})

	t.Run("integrity-failure", func(t *testing.T) {
		mockUseCase := &authMocks.MockAuditEventUseCase{}
		invalid := []uuid.UUID{uuid.New(), uuid.New()}
		failureReport := &authUseCase.VerificationReport{
			TotalChecked:  10,
			SignedCount:   10,
			ValidCount:    8,
			InvalidCount:  2,
			InvalidEvents: invalid,
		}
		mockUseCase.On("VerifyBatch", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(failureReport, nil)

		var out bytes.Buffer
		err := RunVerifyAuditEvents(ctx, mockUseCase, logger, &out, startDate, endDate, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "integrity check failed")
		assert.Contains(t, out.String(), "WARNING: 2 event(s) failed integrity check")
		assert.Contains(t, out.String(), invalid[0].String())
	})
}

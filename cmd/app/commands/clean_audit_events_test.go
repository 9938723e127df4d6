package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	authMocks "github.com/allisson/portfolio-auth/internal/auth/usecase/mocks"
)

func TestRunCleanAuditEvents(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	days := 30

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &authMocks.MockAuditEventUseCase{}
		mockUseCase.On("DeleteOlderThan", ctx, days, false).Return(int64(100), nil)

		var out bytes.Buffer
		err := RunCleanAuditEvents(ctx, mockUseCase, logger, &out, days, false, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Deleted 100 audit event(s) older than 30 day(s)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("dry-run-text-output", func(t *testing.T) {
		mockUseCase := &authMocks.MockAuditEventUseCase{}
		mockUseCase.On("DeleteOlderThan", ctx, days, true).Return(int64(7), nil)

		var out bytes.Buffer
		err := RunCleanAuditEvents(ctx, mockUseCase, logger, &out, days, true, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "would delete 7 audit event(s)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &authMocks.MockAuditEventUseCase{}
		mockUseCase.On("DeleteOlderThan", ctx, days, true).Return(int64(50), nil)

		var out bytes.Buffer
		err := RunCleanAuditEvents(ctx, mockUseCase, logger, &out, days, true, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"count": 50`)
		require.Contains(t, out.String(), `"dry_run": true`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-days", func(t *testing.T) {
		mockUseCase := &authMocks.MockAuditEventUseCase{}
		err := RunCleanAuditEvents(ctx, mockUseCase, logger, &bytes.Buffer{}, -1, false, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "days must be a positive number")
		mockUseCase.AssertNotCalled(t, "DeleteOlderThan")
	})

	t.Run("invalid-format", func(t *testing.T) {
		mockUseCase := &authMocks.MockAuditEventUseCase{}
		err := RunCleanAuditEvents(ctx, mockUseCase, logger, &bytes.Buffer{}, days, false, "yaml")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid format")
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &authMocks.MockAuditEventUseCase{}
		mockUseCase.On("DeleteOlderThan", ctx, days, false).Return(int64(0), errors.New("db down"))

		err := RunCleanAuditEvents(ctx, mockUseCase, logger, &bytes.Buffer{}, days, false, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to delete audit events")
	})
}

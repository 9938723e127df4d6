package usecase

import (
	"context"
	"time"

	authzDomain "github.com/allisson/portfolio-auth/internal/authz/domain"
	"github.com/allisson/portfolio-auth/internal/metrics"
)

const metricsDomain = "authz"

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// authorizationUseCaseWithMetrics decorates AuthorizationUseCase with metrics instrumentation.
type authorizationUseCaseWithMetrics struct {
	next    AuthorizationUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthorizationUseCaseWithMetrics wraps an AuthorizationUseCase with metrics recording.
// Decisions are labelled granted or denied.
func NewAuthorizationUseCaseWithMetrics(useCase AuthorizationUseCase, m metrics.BusinessMetrics) AuthorizationUseCase {
	return &authorizationUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *authorizationUseCaseWithMetrics) Authorize(
	ctx context.Context,
	username, resource, action string,
) *authzDomain.AuthorizationDecision {
	start := time.Now()
	decision := a.next.Authorize(ctx, username, resource, action)

	status := "denied"
	if decision.Authorized {
		status = "granted"
	}
	a.metrics.RecordOperation(ctx, metricsDomain, "authorize", status)
	a.metrics.RecordDuration(ctx, metricsDomain, "authorize", time.Since(start), status)

	return decision
}

func (a *authorizationUseCaseWithMetrics) Describe(ctx context.Context, username string) (*authzDomain.UserAccess, error) {
	start := time.Now()
	access, err := a.next.Describe(ctx, username)

	status := statusOf(err)
	a.metrics.RecordOperation(ctx, metricsDomain, "describe", status)
	a.metrics.RecordDuration(ctx, metricsDomain, "describe", time.Since(start), status)

	return access, err
}

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{next: useCase, metrics: m}
}

func (u *userUseCaseWithMetrics) CreateUser(ctx context.Context, input CreateUserInput) (*authzDomain.User, error) {
	start := time.Now()
	user, err := u.next.CreateUser(ctx, input)

	status := statusOf(err)
	u.metrics.RecordOperation(ctx, metricsDomain, "user_create", status)
	u.metrics.RecordDuration(ctx, metricsDomain, "user_create", time.Since(start), status)

	return user, err
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	authzDomain "github.com/allisson/portfolio-auth/internal/authz/domain"
)

// authorizationUseCase implements AuthorizationUseCase.
type authorizationUseCase struct {
	userRepo      UserRepository
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// NewAuthorizationUseCase creates an AuthorizationUseCase whose store lookups are bounded by
// lookupTimeout. A non-positive timeout leaves the caller's deadline in charge.
func NewAuthorizationUseCase(
	userRepo UserRepository,
	lookupTimeout time.Duration,
	logger *slog.Logger,
) AuthorizationUseCase {
	return &authorizationUseCase{
		userRepo:      userRepo,
		lookupTimeout: lookupTimeout,
		logger:        logger,
	}
}

// Authorize decides whether username may perform action on resource.
//
// The active flag is checked before any permission so a deactivated account is denied even
// when one of its roles still grants the pair. A grant returns the full permission, role and
// organization bundle loaded by the same query.
func (a *authorizationUseCase) Authorize(
	ctx context.Context,
	username, resource, action string,
) *authzDomain.AuthorizationDecision {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(resource) == "" || strings.TrimSpace(action) == "" {
		return authzDomain.NewDenial(username, resource, action, authzDomain.ReasonInvalidRequest)
	}

	user, err := a.lookup(ctx, username)
	if err != nil {
		if errors.Is(err, authzDomain.ErrUserNotFound) {
			return authzDomain.NewDenial(username, resource, action, authzDomain.ReasonUserInactive)
		}
		a.logger.ErrorContext(ctx, "authorization lookup failed",
			slog.String("username", username),
			slog.Any("error", err),
		)
		return authzDomain.NewFailureDenial(username, resource, action, err)
	}

	if !user.IsActive {
		return authzDomain.NewDenial(username, resource, action, authzDomain.ReasonUserInactive)
	}

	if !user.HasPermission(resource, action) {
		return authzDomain.NewPermissionDenial(username, resource, action)
	}

	decision := authzDomain.NewGrant(user, resource, action)
	// The stored username may differ in case; the decision must echo the request.
	decision.Username = username
	return decision
}

// Describe returns the access bundle of username. Unknown users yield ErrUserNotFound.
func (a *authorizationUseCase) Describe(ctx context.Context, username string) (*authzDomain.UserAccess, error) {
	if strings.TrimSpace(username) == "" {
		return nil, authzDomain.ErrUsernameRequired
	}

	user, err := a.lookup(ctx, username)
	if err != nil {
		return nil, err
	}

	return authzDomain.NewUserAccess(user), nil
}

func (a *authorizationUseCase) lookup(ctx context.Context, username string) (*authzDomain.User, error) {
	if a.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.lookupTimeout)
		defer cancel()
	}
	return a.userRepo.GetByUsername(ctx, username)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	authService "github.com/allisson/portfolio-auth/internal/auth/service"
	"github.com/allisson/portfolio-auth/internal/config"
)

// tokenUseCase implements TokenUseCase on top of a TokenCodec.
type tokenUseCase struct {
	codec               authService.TokenCodec
	ttl                 time.Duration
	allowExpiredRefresh bool
	now                 func() time.Time
}

// TokenOption customizes a TokenUseCase.
type TokenOption func(*tokenUseCase)

// WithClock replaces the wall clock used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(t *tokenUseCase) {
		t.now = now
	}
}

// Issue signs a new token for username with the configured TTL.
//
// iat is the current time truncated to whole seconds (the wire precision) and exp is iat plus
// the TTL. A TTL of zero produces tokens that are expired from the moment they are issued.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	username string,
	authorities []string,
	sessionID string,
) (*authDomain.IssuedToken, error) {
	if strings.TrimSpace(username) == "" {
		return nil, authDomain.ErrUsernameRequired
	}

	issuedAt := t.now().UTC().Truncate(time.Second)
	claims := &authDomain.TokenClaims{
		Subject:     username,
		Authorities: append([]string{}, authorities...),
		SessionID:   sessionID,
		IssuedAt:    issuedAt,
		ExpiresAt:   issuedAt.Add(t.ttl),
	}

	token, err := t.codec.Encode(claims)
	if err != nil {
		return nil, err
	}

	return &authDomain.IssuedToken{Token: token, Claims: claims}, nil
}

// Validate decodes token and checks its expiry against the clock.
func (t *tokenUseCase) Validate(ctx context.Context, token string) *authDomain.ValidationOutcome {
	claims, err := t.codec.Decode(token)
	if err != nil {
		if errors.Is(err, authDomain.ErrUnsupportedAlgorithm) {
			return authDomain.NewUnsupportedOutcome(err)
		}
		return authDomain.NewInvalidOutcome(err)
	}

	if claims.IsExpiredAt(t.now()) {
		return authDomain.NewExpiredOutcome(claims)
	}

	return authDomain.NewValidOutcome(claims)
}

// Refresh re-issues token. The signature must verify; an expired token is accepted only when
// expired refresh is allowed.
func (t *tokenUseCase) Refresh(ctx context.Context, token string) (*authDomain.IssuedToken, error) {
	claims, err := t.codec.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", authDomain.ErrTokenRefreshRejected, err)
	}

	if claims.IsExpiredAt(t.now()) && !t.allowExpiredRefresh {
		return nil, fmt.Errorf("%w: %w", authDomain.ErrTokenRefreshRejected, authDomain.ErrTokenExpired)
	}

	return t.Issue(ctx, claims.Subject, claims.Authorities, claims.SessionID)
}

// IsExpired is true for every outcome except valid.
func (t *tokenUseCase) IsExpired(ctx context.Context, token string) bool {
	return !t.Validate(ctx, token).Valid()
}

// ExtractUsername returns the subject of token, or false when token does not verify.
func (t *tokenUseCase) ExtractUsername(token string) (string, bool) {
	claims, err := t.codec.Decode(token)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

// ExtractAuthorities returns the authorities of token, or false when token does not verify.
func (t *tokenUseCase) ExtractAuthorities(token string) ([]string, bool) {
	claims, err := t.codec.Decode(token)
	if err != nil {
		return nil, false
	}
	return claims.Authorities, true
}

// NewTokenUseCase creates a TokenUseCase. TTL and the expired refresh policy are read from cfg
// once and never change afterwards.
func NewTokenUseCase(cfg *config.Config, codec authService.TokenCodec, opts ...TokenOption) TokenUseCase {
	t := &tokenUseCase{
		codec:               codec,
		ttl:                 cfg.TokenTTL,
		allowExpiredRefresh: cfg.TokenRefreshAllowExpired,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	authUseCase "github.com/allisson/portfolio-auth/internal/auth/usecase"
)

type claimsOutput struct {
	Subject     string   `json:"subject"`
	Authorities []string `json:"authorities"`
	SessionID   string   `json:"session_id,omitempty"`
	IssuedAt    string   `json:"issued_at"`
	ExpiresAt   string   `json:"expires_at"`
}

func newClaimsOutput(claims *authDomain.TokenClaims) *claimsOutput {
	if claims == nil {
		return nil
	}
	return &claimsOutput{
		Subject:     claims.Subject,
		Authorities: nonNil(claims.Authorities),
		SessionID:   claims.SessionID,
		IssuedAt:    claims.IssuedAt.UTC().Format(time.RFC3339),
		ExpiresAt:   claims.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// RunIssueToken signs a token for username with the given authorities. It is meant for
// operators and test fixtures; the HTTP login flows are the normal way to obtain a token.
func RunIssueToken(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	username string,
	authorities []string,
	sessionID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	issued, err := tokenUseCase.Issue(ctx, username, authorities, sessionID)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("token issued",
		slog.String("username", issued.Claims.Subject),
		slog.Int("authorities", len(issued.Claims.Authorities)),
		slog.Bool("has_session", issued.Claims.HasSession()),
	)

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{
			"token":  issued.Token,
			"claims": newClaimsOutput(issued.Claims),
		})
	}

	_, _ = fmt.Fprintln(writer, issued.Token)
	return nil
}

// RunValidateToken reports the validation outcome of token. A token that is not valid is
// printed and then returned as an error.
func RunValidateToken(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	token string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	outcome := tokenUseCase.Validate(ctx, strings.TrimSpace(token))

	logger.Info("token validated", slog.String("status", string(outcome.Status)))

	if format == FormatJSON {
		if err := writeJSON(writer, map[string]any{
			"valid":  outcome.Valid(),
			"status": outcome.Status,
			"reason": outcome.Reason,
			"claims": newClaimsOutput(outcome.Claims),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Status: %s\n", outcome.Status)
		if outcome.Reason != "" {
			_, _ = fmt.Fprintf(writer, "Reason: %s\n", outcome.Reason)
		}
		if claims := outcome.Claims; claims != nil {
			_, _ = fmt.Fprintf(writer, "Subject: %s\n", claims.Subject)
			_, _ = fmt.Fprintf(writer, "Authorities: %s\n", strings.Join(claims.Authorities, ", "))
			if claims.HasSession() {
				_, _ = fmt.Fprintf(writer, "Session: %s\n", claims.SessionID)
			}
			_, _ = fmt.Fprintf(writer, "Expires at: %s\n", claims.ExpiresAt.UTC().Format(time.RFC3339))
		}
	}

	if !outcome.Valid() {
		return fmt.Errorf("token is %s", outcome.Status)
	}
	return nil
}

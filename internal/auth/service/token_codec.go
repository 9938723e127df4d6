package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
)

// tokenPayload is the JSON payload of an access token. Authorities is always serialized,
// sessionIndex only when present.
type tokenPayload struct {
	Authorities  []string `json:"authorities"`
	SessionIndex string   `json:"sessionIndex,omitempty"`
	jwt.RegisteredClaims
}

// jwtTokenCodec implements TokenCodec with HS512 compact JWS.
type jwtTokenCodec struct {
	key    []byte
	parser *jwt.Parser
}

// NewTokenCodec creates a TokenCodec signing with a copy of key. Returns ErrSigningKeyTooShort
// when key is shorter than 64 bytes.
func NewTokenCodec(key []byte) (TokenCodec, error) {
	if len(key) < authDomain.MinSigningKeyLength {
		return nil, authDomain.ErrSigningKeyTooShort
	}

	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	return &jwtTokenCodec{
		key: keyCopy,
		// Expiry is checked by the token use case so expired tokens can still be decoded.
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}, nil
}

// Encode signs claims with HS512.
func (c *jwtTokenCodec) Encode(claims *authDomain.TokenClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims are required")
	}

	authorities := claims.Authorities
	if authorities == nil {
		authorities = []string{}
	}

	payload := tokenPayload{
		Authorities:  authorities,
		SessionIndex: claims.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, payload).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Decode verifies token and returns its claims. Claims are never returned alongside an error.
func (c *jwtTokenCodec) Decode(token string) (*authDomain.TokenClaims, error) {
	var payload tokenPayload

	_, err := c.parser.ParseWithClaims(token, &payload, c.keyFunc)
	if err != nil {
		return nil, mapParseError(err)
	}

	if payload.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", authDomain.ErrTokenMalformed)
	}
	if payload.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing iat claim", authDomain.ErrTokenMalformed)
	}
	if payload.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", authDomain.ErrTokenMalformed)
	}

	authorities := payload.Authorities
	if authorities == nil {
		authorities = []string{}
	}

	return &authDomain.TokenClaims{
		Subject:     payload.Subject,
		Authorities: authorities,
		SessionID:   payload.SessionIndex,
		IssuedAt:    payload.IssuedAt.UTC(),
		ExpiresAt:   payload.ExpiresAt.UTC(),
	}, nil
}

func (c *jwtTokenCodec) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != jwt.SigningMethodHS512.Alg() {
		return nil, fmt.Errorf("%w: %s", authDomain.ErrUnsupportedAlgorithm, token.Method.Alg())
	}
	return c.key, nil
}

// mapParseError translates jwt parser errors into domain errors.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, authDomain.ErrUnsupportedAlgorithm):
		return err
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		// Raised for algorithms the jwt library does not know at all.
		return fmt.Errorf("%w: %v", authDomain.ErrUnsupportedAlgorithm, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return authDomain.ErrTokenSignatureInvalid
	default:
		return fmt.Errorf("%w: %v", authDomain.ErrTokenMalformed, err)
	}
}

package service

import (
	"context"
	"fmt"
	"strings"

	"gocloud.dev/secrets"

	appValidation "github.com/allisson/portfolio-auth/internal/validation"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSKeeper is the subset of *secrets.Keeper used to unwrap the signing secret.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	// OpenKeeper supports gcpkms://, awskms://, azurekeyvault://, hashivault:// and base64key://.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

type kmsService struct{}

// NewKMSService creates a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for keyURI.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// SigningSecretResolver turns the configured signing secret into key bytes.
type SigningSecretResolver struct {
	kms KMSService
}

// NewSigningSecretResolver creates a SigningSecretResolver using kms for wrapped secrets.
func NewSigningSecretResolver(kms KMSService) *SigningSecretResolver {
	return &SigningSecretResolver{kms: kms}
}

// Resolve returns secret as bytes when keyURI is empty. Otherwise secret is a base64 ciphertext
// that is decrypted with the keeper at keyURI.
func (r *SigningSecretResolver) Resolve(ctx context.Context, secret, keyURI string) ([]byte, error) {
	if strings.TrimSpace(keyURI) == "" {
		return []byte(secret), nil
	}

	ciphertext, err := appValidation.DecodeCiphertext(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped signing secret: %w", err)
	}

	keeper, err := r.kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing secret: %w", err)
	}

	return plaintext, nil
}

package app

import (
	"context"
	"fmt"
	"strings"

	authHTTP "github.com/allisson/portfolio-auth/internal/auth/http"
	authRepository "github.com/allisson/portfolio-auth/internal/auth/repository"
	authService "github.com/allisson/portfolio-auth/internal/auth/service"
	authUseCase "github.com/allisson/portfolio-auth/internal/auth/usecase"
	"github.com/allisson/portfolio-auth/internal/database"
)

// SigningKey returns the token signing key, unwrapped through KMS when a key URI is configured.
func (c *Container) SigningKey(ctx context.Context) ([]byte, error) {
	var err error
	c.signingKeyInit.Do(func() {
		c.signingKey, err = c.initSigningKey(ctx)
		if err != nil {
			c.initErrors["signingKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingKey"]; exists {
		return nil, storedErr
	}
	return c.signingKey, nil
}

// TokenCodec returns the JWT codec built on the signing key.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	var err error
	c.tokenCodecInit.Do(func() {
		c.tokenCodec, err = c.initTokenCodec()
		if err != nil {
			c.initErrors["tokenCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// PasswordHasher returns the Argon2id password hasher.
func (c *Container) PasswordHasher() authService.PasswordHasher {
	c.passwordHasherInit.Do(func() {
		c.passwordHasher = authService.NewPasswordHasher()
	})
	return c.passwordHasher
}

// CredentialStore returns the credential repository based on database driver.
func (c *Container) CredentialStore() (authService.CredentialStore, error) {
	var err error
	c.credentialStoreInit.Do(func() {
		c.credentialStore, err = c.initCredentialStore()
		if err != nil {
			c.initErrors["credentialStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialStore"]; exists {
		return nil, storedErr
	}
	return c.credentialStore, nil
}

// CredentialAuthenticator returns the username/password authenticator, or nil when credential
// login is disabled.
func (c *Container) CredentialAuthenticator() (authService.CredentialAuthenticator, error) {
	var err error
	c.credentialAuthenticatorInit.Do(func() {
		c.credentialAuthenticator, err = c.initCredentialAuthenticator()
		if err != nil {
			c.initErrors["credentialAuthenticator"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialAuthenticator"]; exists {
		return nil, storedErr
	}
	return c.credentialAuthenticator, nil
}

// AuditEventRepository returns the audit event repository based on database driver.
func (c *Container) AuditEventRepository() (authUseCase.AuditEventRepository, error) {
	var err error
	c.auditEventRepositoryInit.Do(func() {
		c.auditEventRepository, err = c.initAuditEventRepository()
		if err != nil {
			c.initErrors["auditEventRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditEventRepository"]; exists {
		return nil, storedErr
	}
	return c.auditEventRepository, nil
}

// AuditEventUseCase returns the signed audit event use case.
func (c *Container) AuditEventUseCase() (authUseCase.AuditEventUseCase, error) {
	var err error
	c.auditEventUseCaseInit.Do(func() {
		c.auditEventUseCase, err = c.initAuditEventUseCase()
		if err != nil {
			c.initErrors["auditEventUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditEventUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditEventUseCase, nil
}

// AuditRecorder returns where authentication events go: the audit_events table when audit
// persistence is enabled, the application log otherwise.
func (c *Container) AuditRecorder() (authUseCase.AuditRecorder, error) {
	if !c.config.AuditEnabled {
		return authUseCase.NewLogAuditRecorder(c.Logger()), nil
	}
	return c.AuditEventUseCase()
}

// AuthenticationUseCase returns the authentication use case.
func (c *Container) AuthenticationUseCase() (authUseCase.AuthenticationUseCase, error) {
	var err error
	c.authenticationUseCaseInit.Do(func() {
		c.authenticationUseCase, err = c.initAuthenticationUseCase()
		if err != nil {
			c.initErrors["authenticationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authenticationUseCase"]; exists {
		return nil, storedErr
	}
	return c.authenticationUseCase, nil
}

// AuthHandler returns the HTTP handler for authentication endpoints.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		c.authHandler, err = c.initAuthHandler()
		if err != nil {
			c.initErrors["authHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// AuditEventHandler returns the HTTP handler for audit event endpoints.
func (c *Container) AuditEventHandler() (*authHTTP.AuditEventHandler, error) {
	var err error
	c.auditEventHandlerInit.Do(func() {
		c.auditEventHandler, err = c.initAuditEventHandler()
		if err != nil {
			c.initErrors["auditEventHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditEventHandler"]; exists {
		return nil, storedErr
	}
	return c.auditEventHandler, nil
}

func (c *Container) initSigningKey(ctx context.Context) ([]byte, error) {
	if strings.TrimSpace(c.config.TokenSigningSecret) == "" {
		return nil, fmt.Errorf("token signing secret is not configured")
	}

	resolver := authService.NewSigningSecretResolver(authService.NewKMSService())
	key, err := resolver.Resolve(ctx, c.config.TokenSigningSecret, c.config.TokenSigningSecretKMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token signing secret: %w", err)
	}
	return key, nil
}

func (c *Container) initTokenCodec() (authService.TokenCodec, error) {
	key, err := c.SigningKey(c.backgroundCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get signing key for token codec: %w", err)
	}

	codec, err := authService.NewTokenCodec(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	return codec, nil
}

func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	codec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for token use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
	}

	useCase := authUseCase.NewTokenUseCase(c.config, codec)
	if c.config.MetricsEnabled {
		useCase = authUseCase.NewTokenUseCaseWithMetrics(useCase, businessMetrics)
	}
	return useCase, nil
}

func (c *Container) initCredentialStore() (authService.CredentialStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential store: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return authRepository.NewPostgreSQLCredentialRepository(db), nil
	case database.DriverMySQL:
		return authRepository.NewMySQLCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initCredentialAuthenticator() (authService.CredentialAuthenticator, error) {
	if !c.config.MockAuthEnabled {
		return nil, nil
	}

	store, err := c.CredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential store for credential authenticator: %w", err)
	}
	return authService.NewMockCredentialAuthenticator(store, c.PasswordHasher()), nil
}

func (c *Container) initAuditEventRepository() (authUseCase.AuditEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit event repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return authRepository.NewPostgreSQLAuditEventRepository(db), nil
	case database.DriverMySQL:
		return authRepository.NewMySQLAuditEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAuditEventUseCase() (authUseCase.AuditEventUseCase, error) {
	repo, err := c.AuditEventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit event repository for audit event use case: %w", err)
	}

	key, err := c.SigningKey(c.backgroundCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get signing key for audit event use case: %w", err)
	}

	signer, err := authService.NewAuditSigner(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit signer: %w", err)
	}

	return authUseCase.NewAuditEventUseCase(repo, signer), nil
}

func (c *Container) initAuthenticationUseCase() (authUseCase.AuthenticationUseCase, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for authentication use case: %w", err)
	}

	credentials, err := c.CredentialAuthenticator()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential authenticator for authentication use case: %w", err)
	}

	auditRecorder, err := c.AuditRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit recorder for authentication use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for authentication use case: %w", err)
	}

	useCase := authUseCase.NewAuthenticationUseCase(
		tokenUseCase,
		credentials,
		auditRecorder,
		c.Logger(),
		authUseCase.WithAuditTimeout(c.config.AuditWriteTimeout),
	)
	if c.config.MetricsEnabled {
		useCase = authUseCase.NewAuthenticationUseCaseWithMetrics(useCase, businessMetrics)
	}
	return useCase, nil
}

func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	authenticationUseCase, err := c.AuthenticationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get authentication use case for auth handler: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for auth handler: %w", err)
	}

	return authHTTP.NewAuthHandler(authenticationUseCase, tokenUseCase, c.Logger()), nil
}

func (c *Container) initAuditEventHandler() (*authHTTP.AuditEventHandler, error) {
	auditEventUseCase, err := c.AuditEventUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit event use case for audit event handler: %w", err)
	}
	return authHTTP.NewAuditEventHandler(auditEventUseCase, c.Logger()), nil
}

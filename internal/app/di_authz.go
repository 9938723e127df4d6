package app

import (
	"fmt"

	authzHTTP "github.com/allisson/portfolio-auth/internal/authz/http"
	authzRepository "github.com/allisson/portfolio-auth/internal/authz/repository"
	authzUseCase "github.com/allisson/portfolio-auth/internal/authz/usecase"
	"github.com/allisson/portfolio-auth/internal/database"
)

// UserRepository returns the user repository based on database driver.
func (c *Container) UserRepository() (authzUseCase.UserRepository, error) {
	var err error
	c.userRepositoryInit.Do(func() {
		c.userRepository, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepository"]; exists {
		return nil, storedErr
	}
	return c.userRepository, nil
}

// AuthorizationUseCase returns the authorization use case.
func (c *Container) AuthorizationUseCase() (authzUseCase.AuthorizationUseCase, error) {
	var err error
	c.authorizationUseCaseInit.Do(func() {
		c.authorizationUseCase, err = c.initAuthorizationUseCase()
		if err != nil {
			c.initErrors["authorizationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authorizationUseCase"]; exists {
		return nil, storedErr
	}
	return c.authorizationUseCase, nil
}

// UserUseCase returns the user provisioning use case.
func (c *Container) UserUseCase() (authzUseCase.UserUseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// AuthorizationHandler returns the HTTP handler for authorization endpoints.
func (c *Container) AuthorizationHandler() (*authzHTTP.AuthorizationHandler, error) {
	var err error
	c.authorizationHandlerInit.Do(func() {
		c.authorizationHandler, err = c.initAuthorizationHandler()
		if err != nil {
			c.initErrors["authorizationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authorizationHandler"]; exists {
		return nil, storedErr
	}
	return c.authorizationHandler, nil
}

func (c *Container) initUserRepository() (authzUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return authzRepository.NewPostgreSQLUserRepository(db), nil
	case database.DriverMySQL:
		return authzRepository.NewMySQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAuthorizationUseCase() (authzUseCase.AuthorizationUseCase, error) {
	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for authorization use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for authorization use case: %w", err)
	}

	useCase := authzUseCase.NewAuthorizationUseCase(userRepository, c.config.AuthzLookupTimeout, c.Logger())
	if c.config.MetricsEnabled {
		useCase = authzUseCase.NewAuthorizationUseCaseWithMetrics(useCase, businessMetrics)
	}
	return useCase, nil
}

func (c *Container) initUserUseCase() (authzUseCase.UserUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
	}

	useCase := authzUseCase.NewUserUseCase(txManager, userRepository, c.PasswordHasher())
	if c.config.MetricsEnabled {
		useCase = authzUseCase.NewUserUseCaseWithMetrics(useCase, businessMetrics)
	}
	return useCase, nil
}

func (c *Container) initAuthorizationHandler() (*authzHTTP.AuthorizationHandler, error) {
	authorizationUseCase, err := c.AuthorizationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization use case for authorization handler: %w", err)
	}
	return authzHTTP.NewAuthorizationHandler(authorizationUseCase, c.Logger()), nil
}

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrationsPath returns the migration source for driver. An explicit dir wins; otherwise
// PostgreSQL and MySQL use their own directory under migrations/.
func migrationsPath(driver, dir string) string {
	if dir = strings.TrimSpace(dir); dir != "" {
		if strings.Contains(dir, "://") {
			return dir
		}
		return "file://" + dir
	}
	if driver == "mysql" {
		return "file://migrations/mysql"
	}
	return "file://migrations/postgresql"
}

// RunMigrations applies all pending migrations for driver from dir (empty means the default
// directory). Having nothing to apply is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString, dir string) error {
	if driver != "postgres" && driver != "mysql" {
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	source := migrationsPath(driver, dir)
	logger.Info("running database migrations",
		slog.String("driver", driver),
		slog.String("source", source),
	)

	m, err := migrate.New(source, migrationURL(driver, connectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationURL prefixes MySQL DSNs with the scheme the migrate driver registry expects and
// enables multi-statement execution, which the migration files rely on. PostgreSQL connection
// strings are already URLs.
func migrationURL(driver, connectionString string) string {
	if driver != "mysql" {
		return connectionString
	}

	url := connectionString
	if !strings.HasPrefix(url, "mysql://") {
		url = "mysql://" + url
	}
	if strings.Contains(url, "multiStatements=") {
		return url
	}
	if strings.Contains(url, "?") {
		return url + "&multiStatements=true"
	}
	return url + "?multiStatements=true"
}

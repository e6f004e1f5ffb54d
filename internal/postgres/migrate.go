package postgres

import (
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrateOptions configures a schema migration run.
type MigrateOptions struct {
	// DatabaseURL is the postgres url to run migrations on.
	DatabaseURL string

	// SourcePath is the directory of migration files.
	SourcePath string

	// MigrationsTable is the table keeping the migration version. Modules use their own table.
	MigrationsTable string

	// Steps is the number of migrations to apply. Applies all migrations if zero.
	Steps int

	Logger migrate.Logger
}

// NewMigrate creates a Migrate instance from the given options.
func NewMigrate(opts MigrateOptions) (*migrate.Migrate, error) {
	databaseURL, err := url.Parse(opts.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if opts.MigrationsTable != "" {
		databaseURL = cloneURLWithQuery(databaseURL, url.Values{"x-migrations-table": {opts.MigrationsTable}})
	}
	m, err := migrate.New("file://"+opts.SourcePath, databaseURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = opts.Logger
	return m, nil
}

// MigrateUp applies all or N up migrations. It's a no-op if the schema is up-to-date.
func MigrateUp(opts MigrateOptions) error {
	m, err := NewMigrate(opts)
	if err != nil {
		return errors.WithStack(err)
	}
	defer m.Close()

	if opts.Steps == 0 {
		err = m.Up()
	} else {
		err = m.Steps(opts.Steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to apply up migrations")
	}
	return nil
}

// MigrateDown applies all or N down migrations. It's a no-op if there is nothing to revert.
func MigrateDown(opts MigrateOptions) error {
	m, err := NewMigrate(opts)
	if err != nil {
		return errors.WithStack(err)
	}
	defer m.Close()

	if opts.Steps == 0 {
		err = m.Down()
	} else {
		err = m.Steps(-opts.Steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to apply down migrations")
	}
	return nil
}

func cloneURLWithQuery(u *url.URL, newQuery url.Values) *url.URL {
	clone := *u
	query := clone.Query()
	for key, values := range newQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	clone.RawQuery = query.Encode()
	return &clone
}

package migrate

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/internal/postgres"
	"github.com/spf13/cobra"
)

const (
	royaltyMigrationSource = "modules/royalty/database/postgresql/migrations"
	royaltyMigrationsTable = "royalty_schema_migrations"
)

type migrateCmdOptions struct {
	DatabaseURL   string
	RoyaltySource string
	Verbose       bool
}

func (o *migrateCmdOptions) bindFlags(cmd *cobra.Command, direction string) {
	flags := cmd.Flags()
	flags.StringVar(&o.RoyaltySource, "royalty-source", royaltyMigrationSource, fmt.Sprintf("Path to Royalty migrations directory. Default is %q.", royaltyMigrationSource))
	flags.StringVar(&o.DatabaseURL, "database", "", fmt.Sprintf("Database url to apply %s migrations on", direction))
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "Print every applied migration")
}

func (o *migrateCmdOptions) migrateOptions(out io.Writer, steps int) (postgres.MigrateOptions, error) {
	if o.DatabaseURL == "" {
		return postgres.MigrateOptions{}, errors.New("--database is required")
	}
	return postgres.MigrateOptions{
		DatabaseURL:     o.DatabaseURL,
		SourcePath:      o.RoyaltySource,
		MigrationsTable: royaltyMigrationsTable,
		Steps:           steps,
		Logger:          &consoleLogger{out: out, prefix: "[Royalty] ", verbose: o.Verbose},
	}, nil
}

type migrateCmdArgs struct {
	N int
}

func (a *migrateCmdArgs) ParseArgs(args []string) error {
	if len(args) > 0 {
		// assume args already validated by cobra to be len(args) <= 1
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to parse N")
		}
		if n < 0 {
			return errors.Errorf("N must not be negative, got %d", n)
		}
		a.N = n
	}
	return nil
}

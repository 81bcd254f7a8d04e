package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/todod/internal/store"
)

// MigrateOptions holds flags for the migrate command.
type MigrateOptions struct {
	*RootOptions
	DB DatabaseFlags
}

// MigrateResult describes the database after migration.
type MigrateResult struct {
	Path          string   `json:"path"`
	Driver        string   `json:"driver"`
	Created       bool     `json:"created"`
	SchemaVersion int      `json:"schema_version"`
	Tables        []string `json:"tables"`
}

// String renders the text output of the migrate command.
func (r MigrateResult) String() string {
	state := "existing database"
	if r.Created {
		state = "created database"
	}
	return fmt.Sprintf("✓ %s %s (driver %s)\n  schema version: %d\n  tables: %s",
		state, r.Path, r.Driver, r.SchemaVersion, strings.Join(r.Tables, ", "))
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database",
		Long: `Create the database file and its tables if absent, and apply any
pending schema migrations. Running it again is a no-op.

Exit codes:
  0 - Database is ready
  2 - Command error (bad config, database cannot be opened)

Examples:
  todod migrate
  todod migrate --db instance/todos.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), opts, cmd)
		},
	}

	opts.DB.register(cmd)

	return cmd
}

func runMigrate(ctx context.Context, opts *MigrateOptions, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts.RootOptions)

	cfg, err := opts.loadConfig(opts.DB.overrides(cmd)...)
	if err != nil {
		return out.Fail(ErrCodeConfig, err)
	}

	out.VerboseLog("opening %s with driver %s", cfg.Database.Path, cfg.Database.Driver)
	st, err := store.Open(cfg.Database.Path,
		store.WithDriver(cfg.Database.Driver),
		store.WithBusyTimeout(cfg.Database.BusyTimeout),
	)
	if err != nil {
		return out.Fail(ErrCodeStore, WrapExitError(ExitCommandError, "failed to open database", err))
	}
	defer st.Close()

	tables, err := st.Tables(ctx)
	if err != nil {
		return out.Fail(ErrCodeStore, WrapExitError(ExitCommandError, "failed to list tables", err))
	}
	version, err := st.SchemaVersion(ctx)
	if err != nil {
		return out.Fail(ErrCodeStore, WrapExitError(ExitCommandError, "failed to read schema version", err))
	}

	return out.Success(MigrateResult{
		Path:          st.Path(),
		Driver:        cfg.Database.Driver,
		Created:       st.Created(),
		SchemaVersion: version,
		Tables:        tables,
	})
}

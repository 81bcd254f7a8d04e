package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/todod/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the todod CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "todod",
		Short: "todod - a to-do list HTTP API",
		Long:  "A small JSON API for creating, listing, updating and deleting to-do items, backed by SQLite.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig loads the effective configuration. Failures are command errors.
func (o *RootOptions) loadConfig(overrides ...config.Override) (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath, overrides...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}

// DatabaseFlags are the flags shared by commands that open the database.
type DatabaseFlags struct {
	Path   string
	Driver string
}

func (f *DatabaseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Path, "db", "", "database path (overrides config)")
	cmd.Flags().StringVar(&f.Driver, "driver", "", "SQLite driver: sqlite3 (cgo) or sqlite (pure Go)")
}

// overrides applies only the flags that were set on the command line.
func (f *DatabaseFlags) overrides(cmd *cobra.Command) []config.Override {
	var out []config.Override
	if cmd.Flags().Changed("db") {
		path := f.Path
		out = append(out, func(c *config.Config) { c.Database.Path = path })
	}
	if cmd.Flags().Changed("driver") {
		driver := f.Driver
		out = append(out, func(c *config.Config) { c.Database.Driver = driver })
	}
	return out
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/applink/internal/query"
)

// DefaultDatabase is the dataset path used when --db is not given.
const DefaultDatabase = "recipes.db"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Metrics bool   // dump query counters to stderr on exit

	// IDs allows overriding request id generation (for testing).
	// If nil, defaults to query.UUIDv7Generator.
	IDs query.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the applink CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "applink",
		Short: "applink - recipe app links",
		Long:  "Resolve recipe app links against the bundled read-only recipe dataset.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "print query counters to stderr on exit")

	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewBuildCommand(opts))
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

// configureLogging installs a text slog handler on w: debug when verbose,
// info otherwise.
func configureLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// idGenerator returns the configured request id generator.
func (o *RootOptions) idGenerator() query.IDGenerator {
	if o.IDs != nil {
		return o.IDs
	}
	return query.UUIDv7Generator{}
}

// newFormatter builds the output formatter for cmd, tagged with a fresh trace id.
func (o *RootOptions) newFormatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		TraceID:   o.idGenerator().Generate(),
	}
}

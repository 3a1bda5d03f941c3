// Package cli provides the command-line interface for pssraw.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pssraw/internal/cli/commands"
	"github.com/ccollicutt/pssraw/internal/ctxlog"
)

// LogOptions selects the slog handler written to stderr.
type LogOptions struct {
	Level  string
	Format string
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or I/O error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	logOpts := &LogOptions{}

	rootCmd := &cobra.Command{
		Use:   "pssraw",
		Short: "Decode PSS/E RAW power system cases",
		Long: `pssraw decodes PSS/E RAW network cases (revisions up to 33 and 34+) into
typed records and reports what it found.

It locates every data section, groups multi-line records such as transformers
and DC lines, and decodes each record with revision-aware column layouts.
Damaged input never aborts a run: bad records are skipped and counted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := NewLogger(cmd.ErrOrStderr(), logOpts)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(ctxlog.WithLogger(ctx, logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logOpts.Level, "log-level", "warn", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logOpts.Format, "log-format", "text", "Log format (text|json)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

// NewLogger builds the slog logger selected by the log flags.
func NewLogger(w io.Writer, opts *LogOptions) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(opts.Level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", opts.Level)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch opts.Format {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (use text or json)", opts.Format)
	}
}

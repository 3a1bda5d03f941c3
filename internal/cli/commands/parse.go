package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pssraw/internal/ctxlog"
	"github.com/ccollicutt/pssraw/pkg/config"
	"github.com/ccollicutt/pssraw/pkg/engine"
	"github.com/ccollicutt/pssraw/pkg/output"
	"github.com/ccollicutt/pssraw/pkg/source"
	"github.com/ccollicutt/pssraw/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	ConfigFile      string
	Output          string
	Verbose         bool
	Quiet           bool
	Workers         int
	Kinds           []string
	DefaultRevision int
	Encoding        string
	NoMmap          bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <raw-file|dir|glob>...",
		Short: "Decode RAW case files and report what was found",
		Long: `Decode one or more PSS/E RAW case files.

Each file is scanned for its sections, grouped into logical records and
decoded with the column layout of its revision. A report per file lists the
records found in every section together with skipped records, malformed
fields and discarded lines.

Directories expand to the .raw files directly inside them.

Exit codes:
  0 - Every record decoded
  1 - At least one record was skipped
  2 - Configuration or I/O error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json|yaml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show every section, including empty ones")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "One summary line per file")
	cmd.Flags().IntVar(&opts.Workers, "workers", config.DefaultWorkers, "Concurrent decode tasks (0 = GOMAXPROCS)")
	cmd.Flags().StringSliceVar(&opts.Kinds, "kind", nil, "Decode only the given section kind(s) (can be repeated)")
	cmd.Flags().IntVar(&opts.DefaultRevision, "default-revision", 0, "Revision assumed when the header has none")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "Input text encoding (utf-8|windows-1252|iso-8859-1)")
	cmd.Flags().BoolVar(&opts.NoMmap, "no-mmap", false, "Read files into memory instead of mapping them")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(webhook.TriggerOnSkipped), "When to fire webhook (on_skipped|always|never)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := ctxlog.FromContext(ctx)

	cfg, err := resolveConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	trigger, err := webhook.ParseTrigger(opts.WebhookTrigger)
	if err != nil {
		return err
	}

	files, err := source.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding inputs: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no RAW files matched: %v", args)
	}

	formatter, err := output.NewFormatter(cfg.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	eng := engine.New(
		engine.WithWorkers(cfg.Workers),
		engine.WithDefaultRevision(cfg.DefaultRevision),
		engine.WithKinds(cfg.SectionKinds()...),
	)

	runID := output.NewRunID()
	log.Debug("starting run", "run", runID, "files", len(files), "workers", eng.Workers())

	reports := make([]*output.Report, 0, len(files))
	for _, path := range files {
		report, err := parseFile(ctx, eng, cfg, path, output.Metadata{
			RunID:      runID,
			Source:     path,
			ConfigFile: opts.ConfigFile,
			Workers:    eng.Workers(),
		})
		if err != nil {
			return err
		}
		if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}
		reports = append(reports, report)
	}

	// Webhook errors are logged but don't fail the run
	if opts.WebhookURL != "" {
		sendWebhook(ctx, cmd.ErrOrStderr(), trigger, opts, webhook.NewPayload(reports))
	}

	for _, r := range reports {
		if r.HasIssues() {
			ExitCode = 1
			break
		}
	}

	return nil
}

// resolveConfig loads the configuration file, if any, and applies flags the
// user set explicitly on top of it.
func resolveConfig(ctx context.Context, cmd *cobra.Command, opts *ParseOptions) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(ctx, opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.Workers
	}
	if flags.Changed("kind") {
		cfg.Kinds = opts.Kinds
	}
	if flags.Changed("default-revision") {
		cfg.DefaultRevision = opts.DefaultRevision
	}
	if flags.Changed("encoding") {
		cfg.Encoding = opts.Encoding
	}
	if opts.NoMmap {
		cfg.Mmap = false
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// parseFile decodes one file. The file is released before the report is
// built; decoded records own their strings.
func parseFile(ctx context.Context, eng *engine.Engine, cfg *config.Config, path string, meta output.Metadata) (*output.Report, error) {
	log := ctxlog.FromContext(ctx)

	f, err := source.Open(path, source.WithEncoding(cfg.Encoding), source.WithMmap(cfg.Mmap))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c := eng.Parse(f.Bytes())
	meta.Duration = time.Since(start)
	meta.ParsedAt = time.Now()

	if err := f.Close(); err != nil {
		log.Warn("closing case file", "file", path, "error", err)
	}

	report := output.NewReport(c, meta)
	log.Debug("parsed case",
		"file", path,
		"mapped", f.Mapped,
		"revision", report.Header.Revision,
		"records", report.Summary.Records,
		"skipped", report.Summary.Skipped,
		"duration", meta.Duration,
	)
	return report, nil
}

func sendWebhook(ctx context.Context, w io.Writer, trigger webhook.Trigger, opts *ParseOptions, payload *webhook.Payload) {
	if !webhook.ShouldSend(trigger, payload) {
		return
	}

	resp := webhook.NewClient().Send(ctx, payload, webhook.SendOptions{
		URL:     opts.WebhookURL,
		Token:   opts.WebhookToken,
		Timeout: webhook.DefaultTimeout,
	})

	if resp.Success() {
		_, _ = fmt.Fprintf(w, "Webhook %s: sent (%d, %s)\n", opts.WebhookURL, resp.StatusCode, resp.Duration)
	} else {
		_, _ = fmt.Fprintf(w, "Webhook %s: failed (%v)\n", opts.WebhookURL, resp.Error)
	}
}

// Package cmd contains the generate-report command line interface.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"csvreport/internal/config"
	"csvreport/internal/logger"
	"csvreport/internal/reports"
	"csvreport/internal/storage"
)

// rootOptions holds the parsed command line flags
type rootOptions struct {
	csvFile      string
	outputFile   string
	topItems     int
	templatesDir string
	outputDir    string
	configPath   string
	verbose      bool
}

// NewRootCommand builds the generate-report command
func NewRootCommand() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "generate-report -f <csv_file_input> -o <output_filename> [-t <top_items>]",
		Short: "Generate an HTML report from CSV data",
		Long: `generate-report reads a CSV file with id, Value, code and month columns and
writes a single HTML report containing the data table, the ids with the highest
Value, a bar chart of the maximum Value per code and a line chart of the summed
Value per month.

The report is written to the output directory (default: reports next to the
executable) and its path is printed on success.

Examples:
  generate-report -f data.csv -o report.html
  generate-report -f data.csv -o report.html -t 10
  generate-report -f data.csv -o report.html --output-dir /tmp/reports`,
		Version:       config.GetVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.csvFile, "csv_file_input", "f", "", "Path to input CSV file")
	flags.StringVarP(&o.outputFile, "output_filename", "o", "", "Name of the output HTML file")
	flags.IntVarP(&o.topItems, "top_items", "t", 5, "Number of top items to highlight")
	flags.StringVar(&o.templatesDir, "templates-dir", "", "Directory holding report.html and logo.png (default: built-in templates)")
	flags.StringVar(&o.outputDir, "output-dir", "", "Directory the report is written to (default: reports)")
	flags.StringVar(&o.configPath, "config", "", "Path to a YAML config file")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("csv_file_input")
	_ = cmd.MarkFlagRequired("output_filename")

	return cmd
}

// Execute runs the command and exits with status 1 on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, o *rootOptions) error {
	ctx := cmd.Context()

	cfg, err := config.LoadWithFile(ctx, o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	applyFlags(cmd.Flags(), o, cfg)

	configureLogging(cfg, o.verbose, cmd.ErrOrStderr())
	defer logger.GetGlobalLogger().Sync()

	logger.Info("Starting generate-report", map[string]interface{}{"version": cmd.Version})

	if cfg.TemplatesDir, err = config.ResolveDir(cfg.TemplatesDir); err != nil {
		return err
	}
	outputDir, err := config.ResolveDir(cfg.OutputDir)
	if err != nil {
		return err
	}
	logger.Debug("Resolved configuration", map[string]interface{}{
		"templates_dir":   cfg.TemplatesDir,
		"output_dir":      outputDir,
		"static_fallback": cfg.StaticFallback,
	})

	store, err := storage.NewLocalStorageClient(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	generator, err := reports.NewReportGenerator(cfg, store)
	if err != nil {
		return err
	}

	path, err := generator.Generate(ctx, reports.Options{
		CSVPath:        o.csvFile,
		OutputFilename: o.outputFile,
		TopN:           cfg.TopItems,
	})
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report save to: %s\n", path)
	return nil
}

// applyFlags overlays the flags the user set explicitly on cfg
func applyFlags(flags *pflag.FlagSet, o *rootOptions, cfg *config.Config) {
	if flags.Changed("templates-dir") {
		cfg.TemplatesDir = o.templatesDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = o.outputDir
	}
	if flags.Changed("top_items") {
		cfg.TopItems = o.topItems
	}
}

// configureLogging installs the global logger for this run. Logs go to w so
// stdout only carries the result line.
func configureLogging(cfg *config.Config, verbose bool, w io.Writer) {
	level := logger.ParseLevel(cfg.LogLevel)
	if verbose {
		level = logger.DEBUG
	}

	l := logger.New(logger.Config{
		Level:     level,
		Format:    logger.ParseFormat(cfg.LogFormat),
		Output:    w,
		Component: "generate-report",
	})
	logger.SetGlobalLogger(l)
}

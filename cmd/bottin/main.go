package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bottin/internal/app"
	"bottin/internal/config"
	"bottin/internal/infrastructure/watcher"
	"bottin/internal/logging"
	"bottin/internal/report"
)

var (
	// Global flags
	logLevel  string
	sheetName string

	cfg         config.Config
	logger      *slog.Logger
	application *app.Application
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bottin",
	Short: "Consent-aware member directory pipeline",
	Long: `bottin rebuilds the public member directory dataset from the member
workbook in two batch transforms:

  extract   workbook sheet -> complete CSV (hyperlinks resolved to URLs)
  publish   complete CSV   -> public CSV  (per-member consent policy applied)

The public CSV feeds the static directory page; the complete CSV stays
private. Every run is a wholesale rebuild of its output file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		logger = logging.New(cfg.Logging.Level)
		application = app.New(cfg, logger)
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <workbook.xlsx> [output.csv] [sheet]",
	Short: "Export the member sheet to CSV, resolving hyperlink cells to URLs",
	Args:  cobra.RangeArgs(1, 3),
	RunE:  runExtract,
}

var publishCmd = &cobra.Command{
	Use:   "publish <all_members.csv> [public.csv]",
	Short: "Derive the public CSV by applying the per-member consent policy",
	Long: `Applies the consent policy row by row:

  Oui    member published with all fields
  (none) member listed by name, personal fields masked
  Non    member excluded, counted in the aggregate stats row`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPublish,
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild <workbook.xlsx>",
	Short: "Run extract and publish back to back",
	Args:  cobra.ExactArgs(1),
	RunE:  runRebuild,
}

var watchCmd = &cobra.Command{
	Use:   "watch <workbook.xlsx>",
	Short: "Rebuild the directory whenever the workbook changes on disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

var checkCmd = &cobra.Command{
	Use:   "check <page.html|URL>",
	Short: "Verify the directory page references the public CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runExtract(cmd *cobra.Command, args []string) error {
	out := cfg.Output.AllMembersCSV
	if len(args) > 1 {
		out = args[1]
	}

	rows, err := application.Pipeline.Extract(cmd.Context(), args[0], out, resolveSheet(args, sheetName, cfg.Workbook.Sheet))
	if err != nil {
		return err
	}

	fmt.Printf("%d rows exported to %s\n", rows, out)
	return nil
}

func runPublish(cmd *cobra.Command, args []string) error {
	out := cfg.Output.PublicMembersCSV
	if len(args) > 1 {
		out = args[1]
	}

	summary, err := application.Pipeline.Publish(cmd.Context(), args[0], out)
	if err != nil {
		return err
	}

	fmt.Print(report.Render(summary, out))
	return nil
}

func runRebuild(cmd *cobra.Command, args []string) error {
	result, err := application.Pipeline.Rebuild(cmd.Context(), args[0], resolveSheet(args, sheetName, cfg.Workbook.Sheet),
		cfg.Output.AllMembersCSV, cfg.Output.PublicMembersCSV)
	if err != nil {
		return err
	}

	fmt.Print(report.Render(result.Summary, cfg.Output.PublicMembersCSV))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workbookPath := args[0]
	worksheet := resolveSheet(args, sheetName, cfg.Workbook.Sheet)
	w := watcher.New(workbookPath, logger.With("component", "watcher"))

	return w.Run(ctx, func(ctx context.Context) error {
		_, err := application.Pipeline.Rebuild(ctx, workbookPath, worksheet,
			cfg.Output.AllMembersCSV, cfg.Output.PublicMembersCSV)
		return err
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := application.Checker.Check(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("%s is wired to %s\n", args[0], cfg.SiteCheck.CSVFilename)
	return nil
}

// resolveSheet picks the worksheet to extract: the optional positional
// argument wins, then the --sheet flag, then the configured default.
func resolveSheet(args []string, flagValue, configDefault string) string {
	if len(args) > 2 && args[2] != "" {
		return args[2]
	}
	if flagValue != "" {
		return flagValue
	}
	return configDefault
}

func main() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	extractCmd.Flags().StringVar(&sheetName, "sheet", "", "worksheet name (default from config)")
	rebuildCmd.Flags().StringVar(&sheetName, "sheet", "", "worksheet name (default from config)")
	watchCmd.Flags().StringVar(&sheetName, "sheet", "", "worksheet name (default from config)")

	rootCmd.AddCommand(extractCmd, publishCmd, rebuildCmd, watchCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bjaus/dbintro"
)

var (
	// Global flags
	verbose bool
	dsn     string
	timeout time.Duration

	// Report flags
	format       string
	layoutPath   string
	snapshotPath string
	outputPath   string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dbintro",
	Short: "Print a SQLite introspection report",
	Long: `dbintro queries a SQLite engine for its version, database identifiers,
modules, pragmas, compile options and functions, and prints one boxed table
per category.

The database defaults to $DATABASE_URL, or an in-memory database when unset.
Use --snapshot to render a previously saved snapshot instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runReport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the engine version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Print the loaded modules as one comma-separated line",
	Args:  cobra.NoArgs,
	RunE:  runModules,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write the engine metadata as a YAML snapshot",
	Long: `Reads every metadata category once and writes it as YAML. Render it later
with: dbintro --snapshot FILE`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", defaultDSN(), "SQLite data source name")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Time limit for metadata queries")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Write to file instead of stdout")

	formats := make([]string, 0, len(dbintro.Formats()))
	for _, f := range dbintro.Formats() {
		formats = append(formats, f.String())
	}
	rootCmd.Flags().StringVarP(&format, "format", "f", dbintro.Box.String(), "Output format ("+strings.Join(formats, ", ")+")")
	rootCmd.Flags().StringVar(&layoutPath, "layout", "", "YAML file overriding border characters and widths")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Render from a YAML snapshot instead of a database")

	rootCmd.AddCommand(versionCmd, modulesCmd, snapshotCmd)
}

func defaultDSN() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return strings.TrimPrefix(v, "sqlite://")
	}
	return ":memory:"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

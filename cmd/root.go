package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

// logger is rebuilt once flags are parsed; see PersistentPreRun.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

var rootCmd = &cobra.Command{
	Use:   "stackblur",
	Short: "Stack Blur for directories of images",
	Long: `stackblur blurs every image in a directory with the Stack Blur
algorithm: a two-pass triangular kernel whose cost per pixel does not
depend on the radius.

Profiles blur at a reduced resolution for backdrops and frosted glass,
or at full resolution for soft focus. Outputs are content-addressed and
described by a JSON report.`,
	Version: version,
	PersistentPreRun: func(*cobra.Command, []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
	SilenceUsage: true,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"stackblur %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose logs a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	logger.Debug(fmt.Sprintf(format, args...))
}

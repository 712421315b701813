package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/AnyUserName/stackblur-cli/internal/pipeline"
	"github.com/AnyUserName/stackblur-cli/internal/profile"
	"github.com/AnyUserName/stackblur-cli/internal/report"
	"github.com/spf13/cobra"
)

const (
	envProfile = "STACKBLUR_PROFILE"
	envWorkers = "STACKBLUR_WORKERS"
)

var (
	blurOutDir   string
	blurProfile  string
	blurWorkers  int
	blurRadius   int
	blurAlpha    bool
	blurFormat   string
	blurQuality  int
	blurMaxWidth int
	blurStraight bool
)

var blurCmd = &cobra.Command{
	Use:   "blur <input_dir>",
	Short: "Blur every image in a directory and write a report",
	Long: `Scans input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
blurs each one with the selected profile, and writes the results plus a
report file.

Output filenames are content-addressed: <key>.<hash>.ext

Defaults for --profile and --workers can come from STACKBLUR_PROFILE and
STACKBLUR_WORKERS, also read from a .env file in the working directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlur,
}

func init() {
	blurCmd.Flags().StringVarP(&blurOutDir, "out", "o", "./stackblur_out", "output directory")
	blurCmd.Flags().StringVarP(&blurProfile, "profile", "p", "backdrop", "blur profile")
	blurCmd.Flags().IntVarP(&blurWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	blurCmd.Flags().IntVarP(&blurRadius, "radius", "r", 0, "radius in pixels (0 = profile default)")
	blurCmd.Flags().BoolVar(&blurAlpha, "alpha", false, "blur the alpha channel too")
	blurCmd.Flags().StringVarP(&blurFormat, "format", "f", "", "output format png|jpeg (empty = profile default)")
	blurCmd.Flags().IntVarP(&blurQuality, "quality", "q", 0, "quality 1-100 (0 = profile default)")
	blurCmd.Flags().IntVar(&blurMaxWidth, "max-width", 0, "resize wider images first (0 = no limit)")
	blurCmd.Flags().BoolVar(&blurStraight, "straight", false, "blur straight alpha at full resolution; fails with --alpha")
	rootCmd.AddCommand(blurCmd)
}

// applyEnv fills flags the user did not set from the environment.
func applyEnv(cmd *cobra.Command) error {
	if v := os.Getenv(envProfile); v != "" && !cmd.Flags().Changed("profile") {
		blurProfile = v
	}
	if v := os.Getenv(envWorkers); v != "" && !cmd.Flags().Changed("workers") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envWorkers, err)
		}
		blurWorkers = n
	}
	return nil
}

func runBlur(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	if err := applyEnv(cmd); err != nil {
		return err
	}

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(blurOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile.
	prof := profile.Get(blurProfile)
	if blurRadius > 0 {
		prof.Radius = blurRadius
	}
	if cmd.Flags().Changed("alpha") {
		prof.Alpha = blurAlpha
	}
	if blurFormat != "" {
		prof.Format = blurFormat
	}
	if blurQuality > 0 {
		prof.Quality = blurQuality
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (radius=%d, downscale=%d, scaled radius=%d, alpha=%t, format=%s)",
		prof.Name, prof.Radius, prof.Downscale, prof.ScaledRadius(), prof.Alpha, prof.Format)

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Run pipeline.
	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   blurWorkers,
		MaxWidth:  blurMaxWidth,
		Straight:  blurStraight,
		Logger:    logger,
	})

	r, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Write report.
	reportPath := filepath.Join(absOutput, report.FileName)
	if err := report.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printBlurReport(r, time.Since(start))
	return nil
}

func printBlurReport(r *report.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("  stackblur complete")
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Images:      %d\n", s.TotalEntries)
	if s.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", s.Failed)
	}
	fmt.Printf("  Profile:     %s (r=%d, 1/%d scale)\n", r.Profile, r.Radius, max(r.Downscale, 1))
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Printf("  Blur time:   %s\n", (time.Duration(s.TotalBlurMicros) * time.Microsecond).Round(time.Millisecond))
	fmt.Printf("  Wall time:   %s\n", elapsed.Round(time.Millisecond))
	if r.BuildInfo != nil {
		fmt.Printf("  Workers:     %d  (peak scratch %d KB each)\n", r.BuildInfo.Workers, r.BuildInfo.PeakScratchKB)
	}
	fmt.Println()

	// Slowest 10 blurs.
	if len(r.Entries) > 0 {
		type timing struct {
			key    string
			micros int64
			w, h   int
		}
		var items []timing
		for key, e := range r.Entries {
			items = append(items, timing{key, e.BlurMicros, e.Width, e.Height})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].micros != items[j].micros {
				return items[i].micros > items[j].micros
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		fmt.Printf("  Slowest %d:\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %5dx%-5d %8s\n",
				truncKey(it.key, 40), it.w, it.h,
				(time.Duration(it.micros) * time.Microsecond).Round(time.Microsecond))
		}
		fmt.Println()
	}

	data, _ := json.Marshal(r)
	fmt.Printf("  Report:      %s (%s)\n", report.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}

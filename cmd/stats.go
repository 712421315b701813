package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/stackblur-cli/internal/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for a blurred output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path, err := reportPath(args[0])
	if err != nil {
		return err
	}

	r, err := report.ReadJSON(path)
	if err != nil {
		return err
	}

	printStats(r)
	return nil
}

// reportPath resolves a directory to the report inside it.
func reportPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, report.FileName)
	}
	return path, nil
}

func printStats(r *report.Report) {
	fmt.Println()
	fmt.Printf("  Report version:   %d\n", r.Version)
	fmt.Printf("  Generated:        %s\n", r.GeneratedAt)
	fmt.Printf("  Profile:          %s (r=%d, 1/%d scale, alpha=%t)\n", r.Profile, r.Radius, max(r.Downscale, 1), r.Alpha)
	if r.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", r.BuildInfo.Workers)
		fmt.Printf("  Scratch peak:     %d × %d KB ≈ %.1f MB\n",
			r.BuildInfo.Workers, r.BuildInfo.PeakScratchKB,
			float64(r.BuildInfo.Workers*r.BuildInfo.PeakScratchKB)/1024)
	}
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Total images:     %d\n", s.TotalEntries)
	if s.Failed > 0 {
		fmt.Printf("  Failed:           %d\n", s.Failed)
	}
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Size ratio:       %.1f%% of original\n", ratio)
	}

	// Throughput in megapixels per second of blur time.
	var pixels int64
	for _, e := range r.Entries {
		pixels += int64(e.Width) * int64(e.Height)
	}
	if s.TotalBlurMicros > 0 {
		fmt.Printf("  Throughput:       %.1f MP/s\n", float64(pixels)/float64(s.TotalBlurMicros))
	}
	fmt.Println()

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, e := range r.Entries {
		fs := formatStats[e.Format]
		fs.count++
		fs.bytes += e.Size
		formatStats[e.Format] = fs
	}
	fmt.Println("  Format breakdown:")
	for _, f := range []string{"jpeg", "png"} {
		if fs, ok := formatStats[f]; ok {
			fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Println()

	// Size breakdown by longest side.
	buckets := map[int]int{}
	for _, e := range r.Entries {
		buckets[sizeBucket(max(e.Width, e.Height))]++
	}
	var sides []int
	for b := range buckets {
		sides = append(sides, b)
	}
	sort.Ints(sides)
	fmt.Println("  Size breakdown (longest side):")
	for _, b := range sides {
		fmt.Printf("    ≤%5dpx  %4d images\n", b, buckets[b])
	}
	fmt.Println()
}

// sizeBucket rounds n up to the next power of two, at least 64.
func sizeBucket(n int) int {
	b := 64
	for b < n {
		b <<= 1
	}
	return b
}

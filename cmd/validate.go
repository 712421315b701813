package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/stackblur-cli/internal/hasher"
	"github.com/AnyUserName/stackblur-cli/internal/report"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report_path>",
	Short: "Validate a stackblur report and check referenced files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path, err := reportPath(args[0])
	if err != nil {
		return err
	}

	r, err := report.ReadJSON(path)
	if err != nil {
		return err
	}

	errors := validateReport(r, filepath.Dir(path))

	if len(errors) == 0 {
		fmt.Println("  ✓ Report is valid")
		fmt.Printf("  ✓ %d images, all files present and matching\n", r.Stats.TotalEntries)
		return nil
	}

	fmt.Printf("  ✗ Report has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateReport(r *report.Report, baseDir string) []string {
	var errs []string

	// Check version.
	if r.Version != report.SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}
	if r.Radius < 1 {
		errs = append(errs, fmt.Sprintf("invalid radius: %d", r.Radius))
	}

	seenPaths := map[string]string{}
	for key, e := range r.Entries {
		if e.Width <= 0 || e.Height <= 0 {
			errs = append(errs, fmt.Sprintf("entry %q: invalid dimensions %dx%d", key, e.Width, e.Height))
		}
		if e.Format == "" {
			errs = append(errs, fmt.Sprintf("entry %q: empty format", key))
		}
		if e.Hash == "" {
			errs = append(errs, fmt.Sprintf("entry %q: missing hash", key))
		}
		if e.Path == "" {
			errs = append(errs, fmt.Sprintf("entry %q: missing path", key))
			continue
		}

		// Check duplicate paths.
		if other, ok := seenPaths[e.Path]; ok {
			errs = append(errs, fmt.Sprintf("entry %q: path %q also used by %q", key, e.Path, other))
		}
		seenPaths[e.Path] = key

		// Check the file exists and still has the recorded content.
		fullPath := filepath.Join(baseDir, e.Path)
		f, err := os.Open(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("entry %q: file not found: %s", key, e.Path))
			continue
		}
		info, err := f.Stat()
		if err == nil && e.Size > 0 && info.Size() != e.Size {
			errs = append(errs, fmt.Sprintf("entry %q: size mismatch: report=%d, disk=%d", key, e.Size, info.Size()))
		}
		if e.Hash != "" {
			h, err := hasher.ContentHashReader(f, len(e.Hash))
			if err != nil {
				errs = append(errs, fmt.Sprintf("entry %q: read %s: %v", key, e.Path, err))
			} else if h != e.Hash {
				errs = append(errs, fmt.Sprintf("entry %q: hash mismatch: report=%s, disk=%s", key, e.Hash, h))
			}
		}
		f.Close()
	}

	// Verify stats consistency.
	if r.Stats.TotalEntries != len(r.Entries) {
		errs = append(errs, fmt.Sprintf("stats.total_entries mismatch: %d != %d", r.Stats.TotalEntries, len(r.Entries)))
	}

	return errs
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/AnyUserName/stackblur-cli/internal/encoder"
	"github.com/AnyUserName/stackblur-cli/internal/profile"
	"github.com/AnyUserName/stackblur-cli/internal/report"
	"github.com/AnyUserName/stackblur-cli/internal/stackblur"
)

// queueDepth is the number of images waiting on each worker looper.
const queueDepth = 4

// Config holds all parameters for a blur pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Workers   int
	MaxWidth  int  // resize wider inputs before blurring, 0 = no limit
	Straight  bool // blur straight alpha (NRGBA) instead of premultiplied
	Logger    *slog.Logger
}

// Pipeline orchestrates image processing.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	log      *slog.Logger
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = newNopLogger()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
		log:      log,
	}
}

// Run executes the full pipeline and returns the report. Each worker is a
// looper owning one shared engine, so scratch buffers are reused across all
// images that worker blurs.
func (p *Pipeline) Run(ctx context.Context) (*report.Report, error) {
	p.log.Debug("encoders", "registry", p.registry.String())

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir, excludeDir(p.cfg.InputDir, p.cfg.OutputDir))
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.log.Info("found images", "count", len(sources), "workers", p.cfg.Workers)

	// Step 2: Start worker loopers. They outlive ctx cancellation so queued
	// tasks can drain; the tasks themselves check ctx.
	loopers := make([]*stackblur.Looper, p.cfg.Workers)
	for i := range loopers {
		l := stackblur.NewLooper(queueDepth)
		loopers[i] = l
		go func() { _ = l.Run(context.WithoutCancel(ctx)) }()
	}

	// Step 3: Fan images out round-robin.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		l := loopers[i%len(loopers)]
		idx, s := i, src
		wg.Add(1)
		err := l.Post(func(lctx context.Context) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				results[idx] = processResult{key: s.Key, err: fmt.Errorf("%s: %w", s.RelPath, err)}
				return
			}
			p.log.Debug("processing", "key", s.Key)
			results[idx] = processImage(l.Instance(lctx), s, p.cfg, p.registry)
			if results[idx].err == nil {
				p.log.Debug("done", "key", s.Key, "blur_us", results[idx].entry.BlurMicros)
			}
		})
		if err != nil {
			wg.Done()
			results[idx] = processResult{key: s.Key, err: fmt.Errorf("queue %s: %w", s.RelPath, err)}
		}
	}
	wg.Wait()

	// Step 4: Drop shared scratch buffers and stop the loopers. ReleaseShared
	// from here is queued onto each looper.
	for _, l := range loopers {
		if err := l.ReleaseShared(ctx); err != nil {
			p.log.Warn("release shared buffers", "err", err)
		}
		l.Close()
	}
	for _, l := range loopers {
		<-l.Done()
	}

	// Step 5: Collect results into the report.
	r := report.New(p.cfg.Profile.Name)
	r.Radius = p.cfg.Profile.Radius
	r.Downscale = p.cfg.Profile.Downscale
	r.Alpha = p.cfg.Profile.Alpha

	var errs []error
	var peak int
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		r.Entries[res.key] = res.entry
		peak = max(peak, res.scratch)
	}

	// Report errors but don't fail the entire run for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			p.log.Error("image failed", "err", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process: %w", len(errs), errs[0])
		}
		p.log.Warn("partial failure", "failed", len(errs), "total", len(sources))
	}

	r.BuildInfo = &report.BuildInfo{
		Workers:       p.cfg.Workers,
		PeakScratchKB: (peak + 1023) / 1024,
	}
	r.Stats.Failed = len(errs)
	r.ComputeStats()
	return r, nil
}

// excludeDir returns out when it lies inside in, so a rerun does not blur
// its own outputs.
func excludeDir(in, out string) string {
	if out == "" {
		return ""
	}
	rel, err := filepath.Rel(in, out)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.Join(in, rel)
}

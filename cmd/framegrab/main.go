// Command framegrab extracts still frames at a fixed interval from every
// video in a directory, tone-mapping HDR sources to SDR and dropping Dolby
// audio tracks as needed.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the extraction batch (optionally followed by
// watch mode).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/framegrab/internal/check"
	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/ffmpeg"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/metrics"
	"github.com/backmassage/framegrab/internal/naming"
	"github.com/backmassage/framegrab/internal/pipeline"
	"github.com/backmassage/framegrab/internal/probe"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "framegrab: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "framegrab: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "framegrab: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner(os.Stdout, log.Color())

	// Cancel on SIGINT/SIGTERM; the batch stops between videos.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ffmpegPath := check.ResolveFFmpeg(cfg.FFmpegPath)
	ffprobePath := check.ResolveFFprobe(cfg.FFprobePath, ffmpegPath)

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, ffmpegPath, ffprobePath, log) {
			return 1
		}
		return 0
	}

	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputDir)
		return 1
	}
	outputAbs, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputDir)
		return 1
	}

	// Phase 3: Discover and name jobs.
	videos, err := pipeline.Discover(inputAbs)
	if err != nil {
		log.Error("Cannot read input directory: %v", err)
		return 1
	}
	resolver := naming.NewCollisionResolver()
	jobs, err := pipeline.BuildJobs(videos, outputAbs, resolver)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("=== framegrab v%s (%s) ===", version, commit)
	log.Info("In:  %s", inputAbs)
	log.Info("Out: %s", outputAbs)
	if cfg.DryRun {
		log.Warn("DRY RUN: no frames will be written")
	}
	if len(jobs) == 0 && !cfg.Watch {
		log.Warn("No videos found in %s", inputAbs)
		return 0
	}

	// Phase 4: Wire the coordinator.
	executor := &ffmpeg.Executor{Timeout: cfg.ExecTimeout}
	if cfg.Verbose {
		executor.Tee = os.Stderr
	}
	a := &app{
		cfg:      &cfg,
		log:      log,
		inputDir: inputAbs,
		outRoot:  outputAbs,
		resolver: resolver,
		metrics:  metrics.NewRecorder(),
	}
	a.coord = &pipeline.Coordinator{
		FFmpegPath:   ffmpegPath,
		Prober:       probe.Select(cfg.ProbeMode, ffmpegPath, ffprobePath, cfg.ProbeTimeout, log),
		Exec:         executor,
		CheckTool:    check.CheckTool,
		Log:          log,
		Metrics:      a.metrics,
		SkipExisting: cfg.SkipExisting,
		DryRun:       cfg.DryRun,
	}
	bar := display.NewProgress(os.Stderr, logging.IsTerminal(os.Stderr) && !cfg.Verbose)

	// Phase 5: Run.
	if err := a.run(ctx, jobs, bar); err != nil {
		var pe *pipeline.PreflightError
		if !errors.As(err, &pe) {
			log.Error("%v", err)
		}
		return 1
	}
	if a.failed {
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

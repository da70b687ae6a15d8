package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/ffmpeg"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/metrics"
	"github.com/backmassage/framegrab/internal/naming"
	"github.com/backmassage/framegrab/internal/planner"
	"github.com/backmassage/framegrab/internal/probe"
)

// Executor runs one assembled command. *ffmpeg.Executor satisfies it.
type Executor interface {
	Execute(ctx context.Context, cmd ffmpeg.Command) ffmpeg.ExecResult
}

// ToolCheck verifies the external tool before a batch and returns its
// version. check.CheckTool satisfies it.
type ToolCheck func(ctx context.Context, path string) (string, error)

// PreflightError is returned by Run when the batch is aborted before any
// job is attempted.
type PreflightError struct {
	Stage string // "config" or "tool".
	Err   error
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("preflight %s: %v", e.Stage, e.Err)
}

func (e *PreflightError) Unwrap() error { return e.Err }

// Coordinator drives the per-video pipeline over a list of jobs. It owns
// the only worker of execution: one Run processes one job at a time, and
// callers must not call Run concurrently on the same Coordinator.
type Coordinator struct {
	FFmpegPath string
	Prober     probe.Prober
	Exec       Executor
	CheckTool  ToolCheck         // Nil skips the tool check.
	Log        *logging.Logger   // Nil discards logs.
	Metrics    *metrics.Recorder // Nil disables metrics.

	SkipExisting bool
	DryRun       bool

	// Now is the clock for summary timestamps. Nil means time.Now.
	Now func() time.Time
}

// Run validates proc and the external tool, then processes jobs in order.
// Preflight failures return a *PreflightError and attempt no job. Otherwise
// the returned error is nil, every job has an outcome in the summary, and
// obs has seen one Progress per job followed by OnComplete.
//
// ctx is checked between jobs; once it is done the remaining jobs are
// recorded as cancelled without running.
func (c *Coordinator) Run(ctx context.Context, jobs []naming.Job, proc config.Processing, obs Observer) (Summary, error) {
	if obs == nil {
		obs = ObserverFuncs{}
	}
	runID := uuid.NewString()
	log := c.logger().With("run", runID)

	if err := proc.Validate(); err != nil {
		log.Error("Invalid settings: %v", err)
		return Summary{}, &PreflightError{Stage: "config", Err: err}
	}
	if c.CheckTool != nil {
		version, err := c.CheckTool(ctx, c.FFmpegPath)
		if err != nil {
			log.Error("ffmpeg unavailable: %v", err)
			return Summary{}, &PreflightError{Stage: "tool", Err: err}
		}
		log.Debug("ffmpeg %s at %s", version, c.FFmpegPath)
	}

	summary := Summary{RunID: runID, Started: c.now(), Total: len(jobs)}
	log.Info("Batch of %d videos: every %ss, %s, hdr=%s, dolby=%s, tag=%s",
		len(jobs), trimFloat(proc.IntervalSeconds), proc.OutputFormat, proc.HDRMode, proc.DolbyMode, proc.DateTag)

	for i, job := range jobs {
		var outcome JobOutcome
		if err := ctx.Err(); err != nil {
			outcome = JobOutcome{Job: job, ErrorKind: ffmpeg.KindCancelled, RawMessage: err.Error()}
		} else {
			log.Info("[%d/%d] %s", i+1, len(jobs), job.InputPath)
			outcome = c.processJob(ctx, log.With("video", job.BaseName), job, proc)
		}

		summary.record(outcome)
		c.observeJob(outcome)
		obs.OnProgress(Progress{Processed: i + 1, Total: len(jobs), Outcome: outcome})
	}

	summary.Finished = c.now()
	logSummary(log, &summary)
	obs.OnComplete(summary)
	return summary, nil
}

// processJob runs probe → plan → assemble → execute for one job. Every
// failure is folded into the returned outcome.
func (c *Coordinator) processJob(ctx context.Context, log *logging.Logger, job naming.Job, proc config.Processing) JobOutcome {
	start := time.Now()
	outcome := JobOutcome{Job: job, ErrorKind: ffmpeg.KindNone}
	done := func() JobOutcome {
		outcome.Duration = time.Since(start)
		return outcome
	}

	// --- Skip-existing check ---
	if c.SkipExisting {
		if n, size, err := countFrames(job, proc); err == nil && n > 0 {
			log.Warn("Skip (%d frames exist): %s", n, job.OutputDir)
			outcome.Success, outcome.Skipped = true, true
			outcome.Frames, outcome.FrameBytes = n, size
			return done()
		}
	}

	// --- Probe ---
	res := c.probe(ctx, log, job, proc)

	// --- Plan ---
	plan := planner.BuildPlan(res, proc)
	outcome.ToneMapped = plan.ToneMapApplied
	outcome.AudioRemoved = plan.AudioRemoved
	if c.Metrics != nil {
		c.Metrics.ObservePlan(plan.ToneMapApplied, plan.AudioRemoved)
	}
	logPlan(log, res, plan)

	// --- Assemble ---
	cmd := ffmpeg.Build(c.FFmpegPath, job, plan, proc)
	log.Debug("Command: %s", cmd)

	// --- Dry-run ---
	if c.DryRun {
		log.Success("[DRY] Would extract to %s", naming.FramePattern(job, proc.DateTag, string(proc.OutputFormat)))
		outcome.Success, outcome.DryRun = true, true
		return done()
	}

	// --- Create output directory ---
	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		outcome.ErrorKind = ffmpeg.ClassifyError(err)
		outcome.RawMessage = err.Error()
		return done()
	}

	// --- Execute ---
	result := c.Exec.Execute(ctx, cmd)
	if !result.Success() {
		outcome.ErrorKind = result.Kind
		outcome.RawMessage = result.Message()
		log.Error("Extraction failed (%s, exit %d): %s", result.Kind, result.ExitCode, lastLine(outcome.RawMessage))
		return done()
	}

	// --- Count frames ---
	n, size, err := countFrames(job, proc)
	if err != nil {
		log.Warn("Could not count frames: %v", err)
	}
	outcome.Success = true
	outcome.Frames, outcome.FrameBytes = n, size
	log.Success("Extracted %d frames in %s", n, result.Duration.Round(time.Millisecond))
	return done()
}

// probe issues at most one inspection for the capabilities that can change
// the plan. Failures are logged and yield the zero Result.
func (c *Coordinator) probe(ctx context.Context, log *logging.Logger, job naming.Job, proc config.Processing) probe.Result {
	req := planner.ProbeRequest(proc)
	if !req.Any() {
		log.Debug("Probe skipped: hdr=%s dolby=%s", proc.HDRMode, proc.DolbyMode)
		c.observeProbe(metrics.ProbeSkipped)
		return probe.Result{}
	}

	res, err := c.Prober.Probe(ctx, job.InputPath, req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Warn("Probe failed, assuming SDR without Dolby audio: %v", err)
		}
		c.observeProbe(metrics.ProbeFailed)
		return probe.Result{}
	}
	c.observeProbe(metrics.ProbeOK)
	return res
}

func (c *Coordinator) observeProbe(outcome string) {
	if c.Metrics != nil {
		c.Metrics.ObserveProbe(outcome)
	}
}

func (c *Coordinator) observeJob(o JobOutcome) {
	if c.Metrics == nil {
		return
	}
	c.Metrics.ObserveJob(o.Success, string(o.ErrorKind), o.Duration)
	if o.Success && !o.Skipped {
		c.Metrics.ObserveFrames(o.Frames, o.FrameBytes)
	}
}

func (c *Coordinator) logger() *logging.Logger {
	if c.Log == nil {
		return logging.Nop()
	}
	return c.Log
}

func (c *Coordinator) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

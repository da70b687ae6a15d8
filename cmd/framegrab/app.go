package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/metrics"
	"github.com/backmassage/framegrab/internal/naming"
	"github.com/backmassage/framegrab/internal/pipeline"
)

// now is the clock used to freeze per-batch settings.
var now = time.Now

// app holds the wired components for one invocation.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	coord    *pipeline.Coordinator
	metrics  *metrics.Recorder
	resolver *naming.CollisionResolver
	inputDir string
	outRoot  string

	failed bool             // Set by the worker when any batch had a failure.
	report pipeline.Summary // All batches so far; written to ReportPath.
}

// run drives two goroutines: the worker runs batches through the
// coordinator, and the UI goroutine renders their events. The worker owns
// the observer and closes it when it is done.
func (a *app) run(ctx context.Context, jobs []naming.Job, bar *display.Progress) error {
	obs := pipeline.NewChannelObserver(16)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer obs.Close()
		return a.work(gctx, jobs, obs)
	})

	g.Go(func() error {
		for ev := range obs.Events() {
			switch {
			case ev.Progress != nil:
				bar.Update(ev.Progress.Processed, ev.Progress.Total, ev.Progress.Outcome.Job.BaseName)
			case ev.Summary != nil:
				bar.Finish()
			}
		}
		return nil
	})

	return g.Wait()
}

// work runs the initial batch, then in watch mode one single-video batch
// per settled new file until ctx is done.
func (a *app) work(ctx context.Context, jobs []naming.Job, obs pipeline.Observer) error {
	if err := a.batch(ctx, jobs, obs); err != nil {
		return err
	}
	if !a.cfg.Watch || ctx.Err() != nil {
		return nil
	}

	return pipeline.Watch(ctx, a.inputDir, pipeline.DefaultSettle, a.log, func(path string) {
		more, err := pipeline.BuildJobs([]string{path}, a.outRoot, a.resolver)
		if err != nil {
			a.log.Error("%v", err)
			return
		}
		if err := a.batch(ctx, more, obs); err != nil {
			a.log.Error("%v", err)
		}
	})
}

// batch runs jobs with settings frozen now, then writes the report (covering
// every batch so far) and the metrics file when configured.
func (a *app) batch(ctx context.Context, jobs []naming.Job, obs pipeline.Observer) error {
	summary, err := a.coord.Run(ctx, jobs, a.cfg.Processing(now()), obs)
	if err != nil {
		return err
	}
	if !summary.OK() {
		a.failed = true
	}
	a.report.Merge(summary)

	if a.cfg.ReportPath != "" {
		if err := pipeline.WriteReport(a.cfg.ReportPath, a.report); err != nil {
			a.log.Warn("Could not write report: %v", err)
		} else {
			a.log.Debug("Report written to %s", a.cfg.ReportPath)
		}
	}
	if a.cfg.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			a.log.Warn("Could not write metrics: %v", err)
		}
	}
	return nil
}

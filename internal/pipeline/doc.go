// Package pipeline drives the per-video decision-and-execution pipeline
// across a batch.
//
// Files:
//   - discover.go: Discover and BuildJobs turn an input directory into
//     ordered, collision-free jobs.
//   - runner.go: Coordinator.Run validates preflight conditions, then for
//     each job probes, plans, assembles, executes and records an outcome.
//     Jobs run strictly one at a time; a failed job never stops the batch.
//   - observer.go: Observer, ObserverFuncs and ChannelObserver deliver
//     progress and completion events to the presentation layer.
//   - summary.go: JobOutcome and Summary.
//   - frames.go: counting frames a job produced.
//   - report.go: WriteReport persists a Summary as YAML atomically.
//   - watch.go: Watch feeds newly settled videos to a handler.
package pipeline

package pipeline

import (
	"time"

	"github.com/backmassage/framegrab/internal/ffmpeg"
	"github.com/backmassage/framegrab/internal/naming"
)

// JobOutcome is the recorded result of one job.
type JobOutcome struct {
	Job        naming.Job       `yaml:"job"`
	Success    bool             `yaml:"success"`
	ErrorKind  ffmpeg.ErrorKind `yaml:"error_kind"`
	RawMessage string           `yaml:"message,omitempty"`

	Skipped      bool          `yaml:"skipped,omitempty"` // Frames already present (skip-existing).
	DryRun       bool          `yaml:"dry_run,omitempty"`
	ToneMapped   bool          `yaml:"tone_mapped"`
	AudioRemoved bool          `yaml:"audio_removed"`
	Frames       int           `yaml:"frames"`
	FrameBytes   int64         `yaml:"frame_bytes"`
	Duration     time.Duration `yaml:"duration"`
}

// Summary aggregates a batch. Succeeded + len(Failures) == Total once the
// batch has finished.
type Summary struct {
	RunID     string       `yaml:"run_id"`
	Started   time.Time    `yaml:"started"`
	Finished  time.Time    `yaml:"finished"`
	Total     int          `yaml:"total"`
	Succeeded int          `yaml:"succeeded"`
	Failures  []JobOutcome `yaml:"failures"`
	Outcomes  []JobOutcome `yaml:"outcomes"`

	TotalFrames     int   `yaml:"total_frames"`
	TotalFrameBytes int64 `yaml:"total_frame_bytes"`
}

// Processed returns the number of outcomes recorded so far.
func (s *Summary) Processed() int { return len(s.Outcomes) }

// record adds o to the summary.
func (s *Summary) record(o JobOutcome) {
	s.Outcomes = append(s.Outcomes, o)
	if o.Success {
		s.Succeeded++
		s.TotalFrames += o.Frames
		s.TotalFrameBytes += o.FrameBytes
		return
	}
	s.Failures = append(s.Failures, o)
}

// Merge folds a later batch into s, for watch mode where one report covers
// every batch of the invocation. The first batch's run ID and start time
// are kept.
func (s *Summary) Merge(o Summary) {
	if s.RunID == "" {
		s.RunID, s.Started = o.RunID, o.Started
	}
	s.Finished = o.Finished
	s.Total += o.Total
	for _, outcome := range o.Outcomes {
		s.record(outcome)
	}
}

// OK reports whether every job succeeded.
func (s *Summary) OK() bool { return len(s.Failures) == 0 }

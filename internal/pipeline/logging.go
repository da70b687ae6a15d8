package pipeline

import (
	"strconv"
	"strings"

	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/planner"
	"github.com/backmassage/framegrab/internal/probe"
)

// --- Logging helpers ---

func logPlan(log *logging.Logger, res probe.Result, plan planner.FilterPlan) {
	var notes []string
	if res.IsHDR {
		notes = append(notes, "HDR detected")
	}
	if res.HasDolbyAudio {
		notes = append(notes, "Dolby audio detected")
	}
	if plan.ToneMapApplied {
		notes = append(notes, "tone-mapping to SDR")
	}
	if plan.AudioRemoved {
		notes = append(notes, "video stream only")
	}
	if len(notes) == 0 {
		log.Debug("  Plain extraction: %s", plan.VideoFilterGraph)
		return
	}
	log.Info("  %s", strings.Join(notes, ", "))
}

func logSummary(log *logging.Logger, s *Summary) {
	log.Info("==============================")
	log.Info("Done: %d succeeded, %d failed (of %d)", s.Succeeded, len(s.Failures), s.Total)
	if s.TotalFrames > 0 {
		log.Info("  Frames written: %d (%s)", s.TotalFrames, display.FormatBytes(s.TotalFrameBytes))
	}
	log.Info("  Elapsed: %s", display.FormatDuration(s.Finished.Sub(s.Started)))

	if s.OK() {
		if s.Total > 0 {
			log.Success("All videos processed")
		}
		return
	}
	log.Warn("Failures:")
	for _, f := range s.Failures {
		log.Warn("  %s: %s %s", f.Job.InputPath, f.ErrorKind, lastLine(f.RawMessage))
	}
}

// lastLine returns the last line of msg, which for ffmpeg
// output is the fatal error.
func lastLine(msg string) string {
	lines := strings.Split(strings.TrimSpace(msg), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

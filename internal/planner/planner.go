package planner

import (
	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/probe"
)

// ProbeRequest reports which capabilities to detect under proc. HDR is
// detected unless the mode is none, which guarantees no HDR inspection; under
// force the result is only logged. Dolby audio is detected unless the mode is
// keep. Only none+keep requests nothing, and the caller then skips the
// inspection subprocess.
func ProbeRequest(proc config.Processing) probe.Request {
	return probe.Request{
		DetectHDR:   proc.HDRMode != config.HDRNone,
		DetectDolby: proc.DolbyMode != config.DolbyKeep,
	}
}

// BuildPlan produces the FilterPlan for one video. It is a pure function of
// the probe result and the batch settings.
func BuildPlan(res probe.Result, proc config.Processing) FilterPlan {
	toneMap := ShouldToneMap(proc.HDRMode, res)
	removeAudio := ShouldRemoveAudio(proc.DolbyMode, res)

	plan := FilterPlan{
		VideoFilterGraph: BuildVideoFilter(proc.IntervalSeconds, toneMap),
		ToneMapApplied:   toneMap,
		AudioRemoved:     removeAudio,
	}
	if removeAudio {
		plan.StreamMap = StreamMapVideoOnly
	}
	return plan
}

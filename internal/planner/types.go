package planner

// StreamMap is the optional stream-selection directive of a plan.
type StreamMap string

const (
	StreamMapAll       StreamMap = ""           // No directive; ffmpeg picks streams.
	StreamMapVideoOnly StreamMap = "video-only" // First video stream, no audio.
)

// Args returns the ffmpeg arguments for the directive, or nil.
func (m StreamMap) Args() []string {
	if m == StreamMapVideoOnly {
		return []string{"-map", "0:v:0", "-an"}
	}
	return nil
}

// FilterPlan holds the per-file extraction decisions. It is produced by
// BuildPlan and consumed by the ffmpeg package to construct command
// arguments.
type FilterPlan struct {
	StreamMap        StreamMap
	VideoFilterGraph string // Comma-joined, never empty.
	ToneMapApplied   bool
	AudioRemoved     bool
}

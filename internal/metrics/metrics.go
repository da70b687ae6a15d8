// Package metrics records batch counters in a per-run Prometheus registry
// and dumps them in the textfile-collector format at batch end.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Probe outcomes.
const (
	ProbeOK      = "ok"
	ProbeFailed  = "failed"
	ProbeSkipped = "skipped"
)

// Recorder owns one registry. A fresh Recorder per process keeps tests
// independent of global state.
type Recorder struct {
	reg *prometheus.Registry

	jobs         *prometheus.CounterVec
	probes       *prometheus.CounterVec
	toneMapped   prometheus.Counter
	audioRemoved prometheus.Counter
	frames       prometheus.Counter
	frameBytes   prometheus.Counter
	duration     prometheus.Histogram
}

// NewRecorder registers the framegrab metrics in a new registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		jobs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "framegrab_jobs_total",
			Help: "Videos processed, by result and error kind",
		}, []string{"result", "kind"}),
		probes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "framegrab_probes_total",
			Help: "Capability probes, by outcome",
		}, []string{"outcome"}),
		toneMapped: f.NewCounter(prometheus.CounterOpts{
			Name: "framegrab_tonemap_total",
			Help: "Videos extracted through the HDR tone-map chain",
		}),
		audioRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "framegrab_audio_removed_total",
			Help: "Videos extracted with audio streams dropped",
		}),
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: "framegrab_frames_total",
			Help: "Still frames written",
		}),
		frameBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "framegrab_frame_bytes_total",
			Help: "Bytes of still frames written",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "framegrab_job_duration_seconds",
			Help:    "Wall time per video including probing",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800},
		}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// ObserveProbe counts one probe outcome.
func (r *Recorder) ObserveProbe(outcome string) {
	r.probes.WithLabelValues(outcome).Inc()
}

// ObservePlan counts the adaptations chosen for one video.
func (r *Recorder) ObservePlan(toneMapped, audioRemoved bool) {
	if toneMapped {
		r.toneMapped.Inc()
	}
	if audioRemoved {
		r.audioRemoved.Inc()
	}
}

// ObserveJob counts one finished job. kind is "none" on success.
func (r *Recorder) ObserveJob(success bool, kind string, d time.Duration) {
	result := "failed"
	if success {
		result = "succeeded"
	}
	r.jobs.WithLabelValues(result, kind).Inc()
	r.duration.Observe(d.Seconds())
}

// ObserveFrames adds produced frames and their total size.
func (r *Recorder) ObserveFrames(n int, bytes int64) {
	r.frames.Add(float64(n))
	r.frameBytes.Add(float64(bytes))
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The write goes through a temporary file and rename.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}

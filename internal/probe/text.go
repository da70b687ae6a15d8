package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// HDRIndicators are the lower-case fragments of ffmpeg's stream description
// that mark an HDR colour space.
var HDRIndicators = []string{
	"bt.2020",
	"rec.2020",
	"pq",
	"smpte st 2084",
	"hlg",
	"arib-std-b67",
	"hdr10",
	"hdr10+",
	"dolby vision",
}

// DolbyIndicators are the lower-case fragments that mark a Dolby-family
// audio track.
var DolbyIndicators = []string{
	"truehd",
	"dolby atmos",
	"dolby truehd",
	"e-ac-3",
	"atmos",
}

// ScanText classifies diagnostic text. Matching is case-insensitive
// substring search; only requested capabilities are evaluated.
func ScanText(text string, req Request) Result {
	lower := strings.ToLower(text)
	var r Result
	if req.DetectHDR {
		r.IsHDR = containsAny(lower, HDRIndicators)
	}
	if req.DetectDolby {
		r.HasDolbyAudio = containsAny(lower, DolbyIndicators)
	}
	return r
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// TextProber runs "ffmpeg -hide_banner -i <path>" and scans the stream
// description ffmpeg prints to stderr. ffmpeg exits non-zero here because
// no output is named; that exit is expected and the text is still scanned.
type TextProber struct {
	FFmpegPath string
	Timeout    time.Duration // Zero disables the timeout.
	Run        RunFunc       // Nil means ExecRun.
}

// NewTextProber returns a TextProber using os/exec.
func NewTextProber(ffmpegPath string, timeout time.Duration) *TextProber {
	return &TextProber{FFmpegPath: ffmpegPath, Timeout: timeout, Run: ExecRun}
}

// Probe implements [Prober].
func (p *TextProber) Probe(ctx context.Context, path string, req Request) (Result, error) {
	if !req.Any() {
		return Result{}, nil
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	run := p.Run
	if run == nil {
		run = ExecRun
	}

	_, stderr, err := run(ctx, p.FFmpegPath, "-hide_banner", "-i", path)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, fmt.Errorf("inspect %q: %w", path, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("inspect %q: %w", path, err)
		}
	}
	return ScanText(string(stderr), req), nil
}

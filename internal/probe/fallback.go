package probe

import (
	"context"
	"time"

	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/logging"
)

// FallbackProber tries Primary and, when it fails, Secondary.
type FallbackProber struct {
	Primary   Prober
	Secondary Prober
	Log       *logging.Logger
}

// Probe implements [Prober].
func (f *FallbackProber) Probe(ctx context.Context, path string, req Request) (Result, error) {
	res, err := f.Primary.Probe(ctx, path, req)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return Result{}, err
	}
	if f.Log != nil {
		f.Log.Debug("structured probe failed for %s, scanning diagnostic text: %v", path, err)
	}
	return f.Secondary.Probe(ctx, path, req)
}

// Select builds the prober for mode. An empty ffprobePath means ffprobe did
// not resolve; auto then degrades to the text prober.
func Select(mode config.ProbeMode, ffmpegPath, ffprobePath string, timeout time.Duration, log *logging.Logger) Prober {
	text := NewTextProber(ffmpegPath, timeout)
	switch mode {
	case config.ProbeText:
		return text
	case config.ProbeFFprobe:
		if ffprobePath == "" {
			ffprobePath = "ffprobe"
		}
	default:
		if ffprobePath == "" {
			return text
		}
	}
	return &FallbackProber{
		Primary:   NewStreamProber(ffprobePath, timeout),
		Secondary: text,
		Log:       log,
	}
}

package display

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress draws a batch progress bar. A disabled Progress does nothing,
// leaving the per-video log lines as the only progress output.
type Progress struct {
	w       io.Writer
	enabled bool
	bar     *progressbar.ProgressBar
}

// NewProgress returns a Progress writing to w. Pass enabled=false when w is
// not a terminal.
func NewProgress(w io.Writer, enabled bool) *Progress {
	return &Progress{w: w, enabled: enabled}
}

// Update moves the bar to processed of total and labels it with the video
// just finished. The bar is created on the first call; a larger total (new
// videos in watch mode) grows it.
func (p *Progress) Update(processed, total int, label string) {
	if p == nil || !p.enabled || total <= 0 {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription("Extracting"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "▐",
				BarEnd:        "▌",
			}),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.w) }),
		)
	} else if int64(total) != p.bar.GetMax64() {
		p.bar.ChangeMax(total)
	}
	if label != "" {
		p.bar.Describe(label)
	}
	_ = p.bar.Set(processed)
}

// Finish completes the bar and resets it so the next batch starts a new one.
func (p *Progress) Finish() {
	if p == nil || p.bar == nil {
		return
	}
	if !p.bar.IsFinished() {
		_ = p.bar.Finish()
	}
	p.bar = nil
}

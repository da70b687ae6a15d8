package planner

import (
	"strconv"

	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/probe"
)

// Stages of the HDR to SDR conversion that follow the rate filter:
// linearise at 100 nits, float RGB, BT.709 primaries, hable tone-map,
// BT.709 matrix/transfer with limited range, 4:2:0 output.
const toneMapStages = "zscale=t=linear:npl=100," +
	"format=gbrpf32le," +
	"zscale=p=bt709," +
	"tonemap=hable:param=1.0," +
	"zscale=t=bt709:m=bt709:r=tv," +
	"format=yuv420p"

// RateFilter returns the fps filter emitting one frame per interval seconds.
// The interval is printed with the shortest representation that parses back
// to the same float64, so ffmpeg evaluates exactly 1/interval.
func RateFilter(intervalSeconds float64) string {
	return "fps=1/" + strconv.FormatFloat(intervalSeconds, 'f', -1, 64)
}

// ToneMapChain returns the full seven-stage chain for intervalSeconds.
func ToneMapChain(intervalSeconds float64) string {
	return RateFilter(intervalSeconds) + "," + toneMapStages
}

// ShouldToneMap applies the HDR decision table. Under force and none the
// probe result is ignored.
func ShouldToneMap(mode config.HDRMode, res probe.Result) bool {
	switch mode {
	case config.HDRForce:
		return true
	case config.HDRAuto:
		return res.IsHDR
	default:
		return false
	}
}

// BuildVideoFilter returns the filter graph for the extraction.
func BuildVideoFilter(intervalSeconds float64, toneMap bool) string {
	if toneMap {
		return ToneMapChain(intervalSeconds)
	}
	return RateFilter(intervalSeconds)
}

package planner

import (
	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/probe"
)

// ShouldRemoveAudio applies the Dolby decision table. Under keep and remove
// the probe result is ignored.
func ShouldRemoveAudio(mode config.DolbyMode, res probe.Result) bool {
	switch mode {
	case config.DolbyRemove:
		return true
	case config.DolbyAuto:
		return res.HasDolbyAudio
	default:
		return false
	}
}

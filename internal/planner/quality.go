package planner

import "github.com/backmassage/framegrab/internal/config"

// qualityArgs holds the fixed encoder settings per still-image format:
// JPEG at near-best quality, PNG at mid-level zlib compression.
var qualityArgs = map[config.OutputFormat][]string{
	config.FormatJPG: {"-q:v", "2"},
	config.FormatPNG: {"-compression_level", "6"},
}

// QualityArgs returns a copy of the quality directive for format, or nil
// for an unknown format.
func QualityArgs(format config.OutputFormat) []string {
	args, ok := qualityArgs[format]
	if !ok {
		return nil
	}
	return append([]string(nil), args...)
}

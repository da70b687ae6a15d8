package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FramePattern returns the ffmpeg image2 output pattern for job:
//
//	<OutputDir>/<BaseName>_%04d_<dateTag>.<ext>
//
// A literal '%' in the base name is doubled so ffmpeg does not read it as a
// format verb.
func FramePattern(job Job, dateTag, ext string) string {
	base := strings.ReplaceAll(job.BaseName, "%", "%%")
	return filepath.Join(job.OutputDir, base+"_%04d_"+dateTag+"."+ext)
}

// FrameName returns the file name ffmpeg writes for frame index n (1-based).
func FrameName(job Job, dateTag, ext string, n int) string {
	return fmt.Sprintf("%s_%04d_%s.%s", job.BaseName, n, dateTag, ext)
}

// MatchFrame reports whether name is a frame file written for job under
// dateTag: <BaseName>_<4+ digits>_<dateTag>.<ext>.
func MatchFrame(job Job, dateTag, ext, name string) bool {
	rest, ok := strings.CutPrefix(name, job.BaseName+"_")
	if !ok {
		return false
	}
	idx, ok := strings.CutSuffix(rest, "_"+dateTag+"."+ext)
	if !ok || len(idx) < 4 {
		return false
	}
	for _, c := range idx {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

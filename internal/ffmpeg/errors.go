package ffmpeg

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
)

// ErrorKind classifies why a job failed.
type ErrorKind string

const (
	KindNone                   ErrorKind = "none"
	KindCorruptedOrUnsupported ErrorKind = "corrupted_or_unsupported"
	KindPermissionDenied       ErrorKind = "permission_denied"
	KindMissingFile            ErrorKind = "missing_file"
	KindUnknown                ErrorKind = "unknown"
	KindTimeout                ErrorKind = "timeout"   // Killed by the per-job timeout.
	KindCancelled              ErrorKind = "cancelled" // Batch cancelled before or during the job.
)

// stderrRules are checked in order; the first substring found wins.
var stderrRules = []struct {
	substr string
	kind   ErrorKind
}{
	{"Invalid data found", KindCorruptedOrUnsupported},
	{"Permission denied", KindPermissionDenied},
	{"No such file or directory", KindMissingFile},
}

// ClassifyStderr maps ffmpeg's diagnostic text to an ErrorKind. Matching is
// case-sensitive, as ffmpeg prints these messages verbatim from strerror
// and its own error table. Text matching no rule is KindUnknown.
func ClassifyStderr(stderr string) ErrorKind {
	for _, r := range stderrRules {
		if strings.Contains(stderr, r.substr) {
			return r.kind
		}
	}
	return KindUnknown
}

// ClassifyError maps a Go error from outside ffmpeg (process start,
// directory creation) to an ErrorKind.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, exec.ErrNotFound):
		return KindMissingFile
	default:
		return KindUnknown
	}
}

package pipeline

import (
	"errors"
	"io/fs"
	"os"

	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/naming"
)

// countFrames returns how many frame files job has for the batch's date tag
// and format, and their total size. A missing directory counts as zero.
func countFrames(job naming.Job, proc config.Processing) (int, int64, error) {
	entries, err := os.ReadDir(job.OutputDir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	var n int
	var size int64
	ext := string(proc.OutputFormat)
	for _, e := range entries {
		if !e.Type().IsRegular() || !naming.MatchFrame(job, proc.DateTag, ext, e.Name()) {
			continue
		}
		n++
		if fi, err := e.Info(); err == nil {
			size += fi.Size()
		}
	}
	return n, size, nil
}

package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/framegrab/internal/naming"
)

// Supported video file extensions (lowercase, with leading dot).
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".3gp":  true,
}

// IsVideo reports whether path has a supported extension (case-insensitive).
func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover lists the regular files (or symlinks to them) directly inside
// inputDir that have a video extension, sorted lexicographically for deterministic processing
// order. Subdirectories are not descended into, so per-video output folders
// under the input directory are never picked up.
func Discover(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !IsVideo(e.Name()) {
			continue
		}
		p := filepath.Join(inputDir, e.Name())
		if !isRegularFile(e, p) {
			continue
		}
		files = append(files, p)
	}
	sort.Strings(files)
	return files, nil
}

// isRegularFile reports whether e is a regular file, following a symlink to
// its target. Dangling links and links to directories are not.
func isRegularFile(e fs.DirEntry, path string) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// BuildJobs creates one job per path, in order, with output directories
// under outputRoot. Paths whose names sanitize to the same directory get
// "_dupN" suffixes. Pass the same resolver across calls (watch mode) to keep
// later videos from claiming earlier directories; nil starts a fresh one.
func BuildJobs(paths []string, outputRoot string, resolver *naming.CollisionResolver) ([]naming.Job, error) {
	if resolver == nil {
		resolver = naming.NewCollisionResolver()
	}
	jobs := make([]naming.Job, 0, len(paths))
	for _, p := range paths {
		job, err := naming.NewJob(p, outputRoot)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, resolver.ResolveJob(job))
	}
	return jobs, nil
}

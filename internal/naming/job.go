package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Job is one video to extract. It is created once per discovered file and
// never modified afterwards.
type Job struct {
	InputPath string `yaml:"input"`      // Absolute path of the source video.
	BaseName  string `yaml:"base_name"`  // Sanitized file stem.
	OutputDir string `yaml:"output_dir"` // Absolute directory receiving the frames.
}

// NewJob builds a Job for inputPath whose frames go to
// <outputRoot>/<sanitized stem>. Both paths are made absolute.
func NewJob(inputPath, outputRoot string) (Job, error) {
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return Job{}, fmt.Errorf("resolve %q: %w", inputPath, err)
	}
	root, err := filepath.Abs(outputRoot)
	if err != nil {
		return Job{}, fmt.Errorf("resolve %q: %w", outputRoot, err)
	}

	name := filepath.Base(abs)
	base := SanitizeBaseName(strings.TrimSuffix(name, filepath.Ext(name)))
	return Job{
		InputPath: abs,
		BaseName:  base,
		OutputDir: filepath.Join(root, base),
	}, nil
}

// WithOutputDir returns a copy of j writing to dir. BaseName is unchanged
// so frame filenames stay tied to the source.
func (j Job) WithOutputDir(dir string) Job {
	j.OutputDir = dir
	return j
}

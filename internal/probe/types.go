package probe

import (
	"bytes"
	"context"
	"os/exec"
)

// Request selects which capabilities a probe must detect. A capability
// that is not requested is always reported false.
type Request struct {
	DetectHDR   bool
	DetectDolby bool
}

// Any reports whether at least one capability is requested.
func (r Request) Any() bool { return r.DetectHDR || r.DetectDolby }

// Result is the outcome of probing one video.
type Result struct {
	IsHDR         bool
	HasDolbyAudio bool
}

// Prober inspects one video. On error the returned Result is the zero value.
type Prober interface {
	Probe(ctx context.Context, path string, req Request) (Result, error)
}

// RunFunc runs an external command to completion and returns what it wrote
// to stdout and stderr. err is an *exec.ExitError for a non-zero exit.
type RunFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// ExecRun is the default RunFunc backed by os/exec.
func ExecRun(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

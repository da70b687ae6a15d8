package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"
)

// waitDelay bounds how long Wait blocks on pipes after the process is
// killed by a timeout or cancellation.
const waitDelay = 5 * time.Second

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	ExitCode int // -1 when the process did not start or was killed.
	Stdout   string
	Stderr   string
	Duration time.Duration
	Err      error // nil iff ExitCode == 0.
	Kind     ErrorKind
}

// Success reports whether the process exited with status 0.
func (r ExecResult) Success() bool { return r.Err == nil }

// Message returns the diagnostic text worth showing for a failure:
// ffmpeg's stderr when there is any, otherwise the Go error.
func (r ExecResult) Message() string {
	if r.Err == nil {
		return ""
	}
	if s := trimTail(r.Stderr, maxMessage); s != "" {
		return s
	}
	return r.Err.Error()
}

// maxMessage bounds Message to the tail of stderr, where ffmpeg puts the
// fatal error.
const maxMessage = 4096

// trimTail keeps at most the last n bytes of s, starting on a rune
// boundary so the result stays valid UTF-8.
func trimTail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	i := len(s) - n
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return "..." + s[i:]
}

// Executor runs commands one at a time.
type Executor struct {
	// Timeout kills the process after this long. Zero disables it.
	Timeout time.Duration
	// Tee receives a live copy of stderr (verbose mode). Nil disables it.
	Tee io.Writer
}

// Execute runs cmd synchronously to completion and classifies the result.
// Exit code 0 is the only success signal.
func (e *Executor) Execute(ctx context.Context, cmd Command) ExecResult {
	runCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(runCtx, cmd.Path, cmd.Args...)
	c.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	if e.Tee != nil {
		c.Stderr = io.MultiWriter(&stderr, e.Tee)
	} else {
		c.Stderr = &stderr
	}

	start := time.Now()
	err := c.Run()
	res := ExecResult{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	switch {
	case err == nil:
		res.ExitCode = 0
		res.Kind = KindNone
		return res
	case ctx.Err() != nil:
		res.Err = fmt.Errorf("%s: %w", cmd.Path, ctx.Err())
		res.Kind = KindCancelled
		return res
	case runCtx.Err() != nil:
		res.Err = fmt.Errorf("%s: timed out after %s: %w", cmd.Path, e.Timeout, runCtx.Err())
		res.Kind = KindTimeout
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		res.Err = fmt.Errorf("%s exited with status %d", cmd.Path, res.ExitCode)
		res.Kind = ClassifyStderr(res.Stderr)
		return res
	}

	res.Err = fmt.Errorf("start %s: %w", cmd.Path, err)
	res.Kind = ClassifyError(err)
	return res
}

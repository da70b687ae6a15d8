// Package check locates ffmpeg and ffprobe, verifies they run, and provides
// the --check diagnostics for the filters the tone-map chain needs.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"
)

// Sentinel errors returned by CheckTool.
var (
	ErrToolNotFound = errors.New("tool not found")
	ErrToolUnusable = errors.New("tool found but -version failed")
)

// VersionTimeout bounds the -version availability check.
const VersionTimeout = 5 * time.Second

// RequiredFilters are the ffmpeg filters used by the tone-map chain.
var RequiredFilters = []string{"zscale", "tonemap"}

var reVersion = regexp.MustCompile(`(?:ffmpeg|ffprobe) version (\S+)`)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...any)
	Success(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
}

// ResolveFFmpeg returns the ffmpeg to use: the configured path, else a
// bundled ffmpeg/bin/ffmpeg[.exe] under the working directory, else the
// PATH entry, else the bare name (which CheckTool will then reject).
func ResolveFFmpeg(configured string) string {
	if configured != "" {
		return configured
	}
	if wd, err := os.Getwd(); err == nil {
		bundled := filepath.Join(wd, "ffmpeg", "bin", exeName("ffmpeg"))
		if isFile(bundled) {
			return bundled
		}
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p
	}
	return "ffmpeg"
}

// ResolveFFprobe returns the ffprobe to use: the configured path, else a
// sibling of ffmpegPath, else the PATH entry. It returns "" when none is
// found.
func ResolveFFprobe(configured, ffmpegPath string) string {
	if configured != "" {
		return configured
	}
	if dir := filepath.Dir(ffmpegPath); dir != "." {
		sibling := filepath.Join(dir, exeName("ffprobe"))
		if isFile(sibling) {
			return sibling
		}
	}
	if p, err := exec.LookPath("ffprobe"); err == nil {
		return p
	}
	return ""
}

// CheckTool runs "<path> -version" with VersionTimeout and returns the
// reported version ("unknown" when the banner does not parse).
func CheckTool(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, VersionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) || ctx.Err() != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrToolUnusable, path, err)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrToolNotFound, path, err)
	}
	if m := reVersion.FindSubmatch(out); m != nil {
		return string(m[1]), nil
	}
	return "unknown", nil
}

// HasFilters reports which of names appear in "<ffmpeg> -filters".
func HasFilters(ctx context.Context, ffmpegPath string, names ...string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, VersionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, ffmpegPath, "-hide_banner", "-filters").Output()
	if err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}
	return parseFilters(string(out), names), nil
}

// parseFilters scans ffmpeg's filter table. Rows look like
// " ... zscale            V->V       Apply resizing, colorspace and bit depth conversion."
func parseFilters(out string, names []string) map[string]bool {
	found := make(map[string]bool, len(names))
	for _, n := range names {
		found[n] = false
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if _, ok := found[fields[1]]; ok {
			found[fields[1]] = true
		}
	}
	return found
}

// RunCheck runs the interactive --check flow: ffmpeg and ffprobe versions
// and the tone-map filters. It reports whether ffmpeg is usable; the rest
// is informational.
func RunCheck(ctx context.Context, ffmpegPath, ffprobePath string, log Logger) bool {
	log.Info("=== System Check ===")

	version, err := CheckTool(ctx, ffmpegPath)
	if err != nil {
		log.Error("ffmpeg: %v", err)
		return false
	}
	log.Success("ffmpeg %s (%s)", version, ffmpegPath)

	if ffprobePath == "" {
		log.Warn("ffprobe not found; capability probing will scan ffmpeg's diagnostic text")
	} else if v, err := CheckTool(ctx, ffprobePath); err != nil {
		log.Warn("ffprobe: %v", err)
	} else {
		log.Success("ffprobe %s (%s)", v, ffprobePath)
	}

	filters, err := HasFilters(ctx, ffmpegPath, RequiredFilters...)
	if err != nil {
		log.Warn("Could not list filters: %v", err)
		return true
	}
	for _, name := range RequiredFilters {
		if filters[name] {
			log.Success("filter %s available", name)
		} else {
			log.Warn("filter %s missing; HDR tone-mapping will fail", name)
		}
	}
	return true
}

// --- internal helpers ---

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

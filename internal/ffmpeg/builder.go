package ffmpeg

import (
	"strings"

	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/naming"
	"github.com/backmassage/framegrab/internal/planner"
)

// Command is a fully assembled ffmpeg invocation. Args excludes Path.
type Command struct {
	Path string
	Args []string
}

// Argv returns Path followed by Args.
func (c Command) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}

// String renders the command for logs. Arguments containing spaces or
// shell metacharacters are single-quoted.
func (c Command) String() string {
	argv := c.Argv()
	parts := make([]string, len(argv))
	for i, a := range argv {
		parts[i] = shellQuote(a)
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Build constructs the extraction command for one job. Argument order:
//
//	<ffmpeg> -hide_banner -nostdin -y -loglevel error
//	-i <input> [-map 0:v:0 -an] -vf <graph> <quality> <pattern>
//
// It performs no I/O.
func Build(ffmpegPath string, job naming.Job, plan planner.FilterPlan, proc config.Processing) Command {
	args := make([]string, 0, 16)

	// --- Preamble ---
	// -loglevel error keeps captured stderr down to diagnostics.
	args = append(args, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")

	// --- Input ---
	args = append(args, "-i", job.InputPath)

	// --- Stream selection ---
	args = append(args, plan.StreamMap.Args()...)

	// --- Video filter graph ---
	args = append(args, "-vf", plan.VideoFilterGraph)

	// --- Quality ---
	args = append(args, planner.QualityArgs(proc.OutputFormat)...)

	// --- Output ---
	args = append(args, naming.FramePattern(job, proc.DateTag, string(proc.OutputFormat)))

	return Command{Path: ffmpegPath, Args: args}
}

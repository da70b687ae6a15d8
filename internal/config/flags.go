package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into extraction, probing, behavior, display, and utility.
// The YAML file and environment are applied before Parse so that the flag
// defaults already carry those values and only explicit flags override them.

import (
	"encoding"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseFlags resolves cfg from the config file named by --config (if any),
// FRAMEGRAB_* environment variables, and finally args. On --help or
// --version it prints and exits. On error it returns non-nil.
func ParseFlags(cfg *Config, args []string, version string) error {
	if path := scanConfigFlag(args); path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return err
	}

	fs := flag.NewFlagSet("framegrab", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	var u utilityFlags
	defineExtractionFlags(fs, cfg)
	defineProbeFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &u)
	defineUtilityFlags(fs, cfg, &u)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyUtilityFlags(cfg, &u)

	if u.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if u.showVersion {
		fmt.Fprintln(os.Stdout, "framegrab v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// utilityFlags holds boolean flags that are applied after Parse or trigger
// an exit (showHelp, showVersion).
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
	configPath  string
}

// defineExtractionFlags registers --interval, --format, --hdr, --dolby, --date-tag.
func defineExtractionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&intervalValue{&cfg.Interval}, "interval", "Seconds between extracted frames")
	fs.Var(&intervalValue{&cfg.Interval}, "i", "Same as --interval")
	fs.Var(&textValue{&cfg.OutputFormat, string(cfg.OutputFormat)}, "format", "Output format: jpg | png")
	fs.Var(&textValue{&cfg.HDRMode, string(cfg.HDRMode)}, "hdr", "HDR handling: auto | force | none")
	fs.Var(&textValue{&cfg.DolbyMode, string(cfg.DolbyMode)}, "dolby", "Dolby audio handling: auto | keep | remove")
	fs.StringVar(&cfg.DateTag, "date-tag", cfg.DateTag, "Tag embedded in frame filenames (default: today's MMDD)")
}

// defineProbeFlags registers --probe, tool paths, and subprocess timeouts.
func defineProbeFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&probeModeValue{&cfg.ProbeMode}, "probe", "Capability probe: auto | ffprobe | text")
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "Path to ffmpeg (default: bundled, then PATH)")
	fs.StringVar(&cfg.FFprobePath, "ffprobe", cfg.FFprobePath, "Path to ffprobe (default: next to ffmpeg, then PATH)")
	fs.DurationVar(&cfg.ProbeTimeout, "probe-timeout", cfg.ProbeTimeout, "Timeout per probe (0 disables)")
	fs.DurationVar(&cfg.ExecTimeout, "exec-timeout", cfg.ExecTimeout, "Timeout per extraction (0 disables)")
}

// defineBehaviorFlags registers output dir, dry-run, skip-existing, watch, report, metrics.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directory that receives one folder per video")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --out")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Preview only; do not run ffmpeg")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.BoolVar(&cfg.SkipExisting, "skip-existing", cfg.SkipExisting, "Skip videos that already have frames for this date tag")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "Keep watching the input directory after the first batch")
	fs.BoolVar(&cfg.Watch, "w", cfg.Watch, "Same as --watch")
	fs.StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "Write a YAML batch report to this path")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this path at batch end")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&u.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append JSON logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
// --config is consumed by scanConfigFlag before Parse; it is registered here
// so Parse accepts it.
func defineUtilityFlags(fs *flag.FlagSet, _ *Config, u *utilityFlags) {
	fs.StringVar(&u.configPath, "config", "", "YAML config file")
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

// applyUtilityFlags copies override flag values into cfg.
func applyUtilityFlags(cfg *Config, u *utilityFlags) {
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir from the optional positional argument.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	switch len(args) {
	case 0:
	case 1:
		cfg.InputDir = NormalizeDirArg(args[0])
	default:
		return fmt.Errorf("expected at most one input directory, got %d arguments", len(args))
	}
	return nil
}

// scanConfigFlag finds the value of --config/-config without parsing the
// rest of args. Parsing stops at "--" like the flag package does.
func scanConfigFlag(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return ""
		}
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "framegrab v" + version + " - periodic still-frame extraction with HDR/Dolby adaptation"},
		{"", ""},
		{"  framegrab [OPTIONS] [input_dir]", ""},
		{"", ""},
		{"Extraction", ""},
		{"  -i, --interval <seconds>", "Seconds between frames (default: 0.5)"},
		{"  --format <jpg|png>", "Output format (default: jpg)"},
		{"  --hdr <auto|force|none>", "Tone-map HDR to SDR (default: auto)"},
		{"  --dolby <auto|keep|remove>", "Drop audio for Dolby tracks (default: auto)"},
		{"  --date-tag <tag>", "Filename tag (default: today's MMDD)"},
		{"", ""},
		{"Probing", ""},
		{"  --probe <auto|ffprobe|text>", "Capability detection backend (default: auto)"},
		{"  --ffmpeg <path>", "ffmpeg binary (default: ffmpeg/bin/ffmpeg, then PATH)"},
		{"  --ffprobe <path>", "ffprobe binary (default: next to ffmpeg, then PATH)"},
		{"  --probe-timeout <dur>", "Timeout per probe (default: 30s)"},
		{"  --exec-timeout <dur>", "Timeout per extraction (default: none)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -o, --out <dir>", "Root for per-video folders (default: .)"},
		{"  -d, --dry-run", "Preview only; do not run ffmpeg"},
		{"  --skip-existing", "Skip videos already extracted for this date tag"},
		{"  -w, --watch", "Process new videos as they appear"},
		{"  --report <path>", "Write YAML batch report"},
		{"  --metrics-file <path>", "Write Prometheus text metrics"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output (tee ffmpeg stderr)"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "YAML config file (FRAMEGRAB_* env overrides it)"},
		{"  -l, --log <path>", "Append JSON logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, zscale, tonemap)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so enum and validated types work with flag.Var.

// textValue adapts any enum implementing encoding.TextUnmarshaler.
type textValue struct {
	p   encoding.TextUnmarshaler
	cur string
}

func (t *textValue) String() string { return t.cur }
func (t *textValue) Set(s string) error {
	if err := t.p.UnmarshalText([]byte(s)); err != nil {
		return err
	}
	t.cur = s
	return nil
}

type intervalValue struct{ p *float64 }

func (v *intervalValue) String() string {
	if v.p == nil {
		return ""
	}
	return strconv.FormatFloat(*v.p, 'f', -1, 64)
}
func (v *intervalValue) Set(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("interval must be a number (got %q)", s)
	}
	if err := ValidateInterval(f); err != nil {
		return err
	}
	*v.p = f
	return nil
}

type probeModeValue struct{ p *ProbeMode }

func (m *probeModeValue) String() string {
	if m.p == nil {
		return ""
	}
	return string(*m.p)
}
func (m *probeModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*m.p = ProbeAuto
	case "ffprobe":
		*m.p = ProbeFFprobe
	case "text":
		*m.p = ProbeText
	default:
		return fmt.Errorf("invalid probe mode %q (use 'auto', 'ffprobe' or 'text')", s)
	}
	return nil
}

// Package config holds runtime configuration: defaults, YAML file and
// environment overlays, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// OutputFormat is the still-image format written for each extracted frame.
type OutputFormat string

const (
	FormatJPG OutputFormat = "jpg" // JPEG, fixed high quality (default).
	FormatPNG OutputFormat = "png" // PNG, fixed mid-level compression.
)

// HDRMode controls whether the tone-map chain is applied.
type HDRMode string

const (
	HDRAuto  HDRMode = "auto"  // Probe the file; tone-map only when HDR is detected (default).
	HDRForce HDRMode = "force" // Always tone-map, never probe.
	HDRNone  HDRMode = "none"  // Never tone-map, never probe.
)

// DolbyMode controls whether audio streams are dropped from the extraction.
type DolbyMode string

const (
	DolbyAuto   DolbyMode = "auto"   // Probe the file; drop audio only when Dolby audio is detected (default).
	DolbyKeep   DolbyMode = "keep"   // Never drop audio, never probe.
	DolbyRemove DolbyMode = "remove" // Always drop audio.
)

// ProbeMode selects the capability detection backend.
type ProbeMode string

const (
	ProbeAuto    ProbeMode = "auto"    // ffprobe when it resolves, diagnostic text otherwise (default).
	ProbeFFprobe ProbeMode = "ffprobe" // Structured ffprobe query with text fallback.
	ProbeText    ProbeMode = "text"    // Substring scan of ffmpeg's diagnostic text only.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ErrInvalidInterval is returned when the extraction interval is not a
// positive finite number.
var ErrInvalidInterval = errors.New("interval must be a positive number of seconds")

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [LoadFile] and [ApplyEnv], and finally by [ParseFlags].
// Packages below cmd consume the frozen [Processing] value instead of Config
// wherever a batch is running.
type Config struct {
	// Paths.
	InputDir    string `yaml:"input" env:"FRAMEGRAB_INPUT"`
	OutputDir   string `yaml:"out" env:"FRAMEGRAB_OUT"`
	FFmpegPath  string `yaml:"ffmpeg" env:"FRAMEGRAB_FFMPEG"`
	FFprobePath string `yaml:"ffprobe" env:"FRAMEGRAB_FFPROBE"`

	// Extraction settings.
	Interval     float64      `yaml:"interval" env:"FRAMEGRAB_INTERVAL"` // Default: 0.5 seconds.
	OutputFormat OutputFormat `yaml:"format" env:"FRAMEGRAB_FORMAT"`     // Default: "jpg".
	HDRMode      HDRMode      `yaml:"hdr" env:"FRAMEGRAB_HDR"`           // Default: "auto".
	DolbyMode    DolbyMode    `yaml:"dolby" env:"FRAMEGRAB_DOLBY"`       // Default: "auto".
	ProbeMode    ProbeMode    `yaml:"probe" env:"FRAMEGRAB_PROBE"`       // Default: "auto".
	DateTag      string       `yaml:"date_tag" env:"FRAMEGRAB_DATE_TAG"` // Empty means today's MMDD.

	// Subprocess limits. Zero disables the timeout.
	ProbeTimeout time.Duration `yaml:"probe_timeout" env:"FRAMEGRAB_PROBE_TIMEOUT"` // Default: 30s.
	ExecTimeout  time.Duration `yaml:"exec_timeout" env:"FRAMEGRAB_EXEC_TIMEOUT"`   // Default: none.

	// Behavior flags.
	SkipExisting bool `yaml:"skip_existing" env:"FRAMEGRAB_SKIP_EXISTING"`
	DryRun       bool `yaml:"dry_run" env:"FRAMEGRAB_DRY_RUN"`
	Watch        bool `yaml:"watch" env:"FRAMEGRAB_WATCH"`

	// Outputs besides frames.
	ReportPath  string `yaml:"report" env:"FRAMEGRAB_REPORT"`
	MetricsFile string `yaml:"metrics_file" env:"FRAMEGRAB_METRICS_FILE"`

	// Display and logging.
	Verbose   bool      `yaml:"verbose" env:"FRAMEGRAB_VERBOSE"`
	ColorMode ColorMode `yaml:"color" env:"FRAMEGRAB_COLOR"`
	LogFile   string    `yaml:"log" env:"FRAMEGRAB_LOG"`
	CheckOnly bool      `yaml:"-"`

	// ConfigFile is the YAML file the settings were loaded from, if any.
	ConfigFile string `yaml:"-"`
}

// DefaultConfig returns a Config with the built-in defaults. Used as the
// base before the file, environment, and flag overlays.
func DefaultConfig() Config {
	return Config{
		InputDir:     ".",
		OutputDir:    ".",
		Interval:     0.5,
		OutputFormat: FormatJPG,
		HDRMode:      HDRAuto,
		DolbyMode:    DolbyAuto,
		ProbeMode:    ProbeAuto,
		ProbeTimeout: 30 * time.Second,
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks the extraction interval and that enum fields hold valid
// values. The interval check is skipped in CheckOnly mode.
func (c *Config) Validate() error {
	if !c.CheckOnly {
		if err := ValidateInterval(c.Interval); err != nil {
			return err
		}
	}
	if !c.OutputFormat.Valid() {
		return fmt.Errorf("invalid format %q (use 'jpg' or 'png')", c.OutputFormat)
	}
	if !c.HDRMode.Valid() {
		return fmt.Errorf("invalid HDR mode %q (use 'auto', 'force' or 'none')", c.HDRMode)
	}
	if !c.DolbyMode.Valid() {
		return fmt.Errorf("invalid Dolby mode %q (use 'auto', 'keep' or 'remove')", c.DolbyMode)
	}
	switch c.ProbeMode {
	case ProbeAuto, ProbeFFprobe, ProbeText:
	default:
		return fmt.Errorf("invalid probe mode %q (use 'auto', 'ffprobe' or 'text')", c.ProbeMode)
	}
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}
	if c.ProbeTimeout < 0 || c.ExecTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if strings.ContainsAny(c.DateTag, `<>:"/\|?*%`) {
		return fmt.Errorf("invalid date tag %q", c.DateTag)
	}
	return nil
}

// ValidateInterval reports ErrInvalidInterval unless v is finite and > 0.
func ValidateInterval(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w (got %v)", ErrInvalidInterval, v)
	}
	return nil
}

// Valid reports whether f is a supported output format.
func (f OutputFormat) Valid() bool { return f == FormatJPG || f == FormatPNG }

// Valid reports whether m is a supported HDR mode.
func (m HDRMode) Valid() bool { return m == HDRAuto || m == HDRForce || m == HDRNone }

// Valid reports whether m is a supported Dolby mode.
func (m DolbyMode) Valid() bool { return m == DolbyAuto || m == DolbyKeep || m == DolbyRemove }

// UnmarshalText lets YAML and environment values be case-insensitive.
func (f *OutputFormat) UnmarshalText(b []byte) error {
	v := OutputFormat(strings.ToLower(strings.TrimSpace(string(b))))
	if v == "jpeg" {
		v = FormatJPG
	}
	if !v.Valid() {
		return fmt.Errorf("invalid format %q (use 'jpg' or 'png')", string(b))
	}
	*f = v
	return nil
}

func (m *HDRMode) UnmarshalText(b []byte) error {
	v := HDRMode(strings.ToLower(strings.TrimSpace(string(b))))
	if !v.Valid() {
		return fmt.Errorf("invalid HDR mode %q (use 'auto', 'force' or 'none')", string(b))
	}
	*m = v
	return nil
}

func (m *DolbyMode) UnmarshalText(b []byte) error {
	v := DolbyMode(strings.ToLower(strings.TrimSpace(string(b))))
	if !v.Valid() {
		return fmt.Errorf("invalid Dolby mode %q (use 'auto', 'keep' or 'remove')", string(b))
	}
	*m = v
	return nil
}

// Processing is the immutable per-batch view of the extraction settings.
// It is built once before a batch starts and passed by value to every
// stage; nothing mutates it mid-run.
type Processing struct {
	IntervalSeconds float64
	OutputFormat    OutputFormat
	HDRMode         HDRMode
	DolbyMode       DolbyMode
	DateTag         string
}

// DateTagLayout formats the per-batch date tag as month-day (e.g. "0719").
const DateTagLayout = "0102"

// Processing freezes the extraction settings for one batch. When no date
// tag was configured, now is formatted with [DateTagLayout].
func (c *Config) Processing(now time.Time) Processing {
	tag := c.DateTag
	if tag == "" {
		tag = now.Format(DateTagLayout)
	}
	return Processing{
		IntervalSeconds: c.Interval,
		OutputFormat:    c.OutputFormat,
		HDRMode:         c.HDRMode,
		DolbyMode:       c.DolbyMode,
		DateTag:         tag,
	}
}

// Validate checks the fields the batch coordinator relies on.
func (p Processing) Validate() error {
	if err := ValidateInterval(p.IntervalSeconds); err != nil {
		return err
	}
	if !p.OutputFormat.Valid() {
		return fmt.Errorf("invalid format %q", p.OutputFormat)
	}
	if !p.HDRMode.Valid() {
		return fmt.Errorf("invalid HDR mode %q", p.HDRMode)
	}
	if !p.DolbyMode.Valid() {
		return fmt.Errorf("invalid Dolby mode %q", p.DolbyMode)
	}
	return nil
}

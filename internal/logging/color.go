package logging

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/framegrab/internal/config"
)

// ANSI sequences used outside the zerolog console writer.
const (
	Magenta = "\033[1;95m"
	reset   = "\033[0m"
)

// ColorEnabled resolves mode for output written to out. always and never
// are absolute; auto colors only a terminal, and NO_COLOR (https://no-color.org)
// or TERM=dumb turn it off.
func ColorEnabled(mode config.ColorMode, out *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(out)
}

// IsTerminal reports whether f is attached to a TTY, including Cygwin and
// MSYS pseudo terminals on Windows.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Paint wraps s in the ANSI sequence seq when on is true.
func Paint(on bool, seq, s string) string {
	if !on {
		return s
	}
	return seq + s + reset
}

package naming

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// illegalChars are rejected in file names on at least one supported
// filesystem.
const illegalChars = `<>:"/\|?*`

// SanitizeBaseName NFC-normalizes name and replaces every illegal filename
// character and control character with '_'. Decomposed (macOS) and composed
// spellings of the same name therefore map to the same directory. An empty
// or dot-only result becomes "_".
func SanitizeBaseName(name string) string {
	name = norm.NFC.String(name)
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(illegalChars, r) {
			return '_'
		}
		return r
	}, name)
	if strings.Trim(clean, ". ") == "" {
		return "_"
	}
	return clean
}

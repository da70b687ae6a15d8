package display

import (
	"fmt"
	"io"

	"github.com/backmassage/framegrab/internal/logging"
)

const banner = ` _____                         ____           _
|  ___| __ __ _ _ __ ___   ___ / ___|_ __ __ _| |__
| |_ | '__/ _` + "`" + ` | '_ ` + "`" + ` _ \ / _ \ |  _| '__/ _` + "`" + ` | '_ \
|  _|| | | (_| | | | | | |  __/ |_| | | | (_| | |_) |
|_|  |_|  \__,_|_| |_| |_|\___|\____|_|  \__,_|_.__/
`

// PrintBanner prints the ASCII art banner, in magenta when color is set.
func PrintBanner(w io.Writer, color bool) {
	fmt.Fprintln(w, logging.Paint(color, logging.Magenta, banner))
}

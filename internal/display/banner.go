package display

import (
	"fmt"
	"os"

	"github.com/backmassage/resmerge/internal/term"
)

// PrintBanner prints the ASCII art banner; magenta when colors are enabled.
func PrintBanner() {
	fmt.Fprint(os.Stdout, term.Magenta.Sprint(` ____           __  __
|  _ \ ___  ___|  \/  | ___ _ __ __ _  ___
| |_) / _ \/ __| |\/| |/ _ \ '__/ _`+"`"+` |/ _ \
|  _ <  __/\__ \ |  | |  __/ | | (_| |  __/
|_| \_\___||___/_|  |_|\___|_|  \__, |\___|
                                |___/
`))
}

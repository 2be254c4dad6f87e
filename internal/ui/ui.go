package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	// ANSI Colors
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
)

// Output receives status lines. Standard output carries generated commands,
// so status goes to stderr.
var Output io.Writer = os.Stderr

func PrintSuccess(label, detail string) {
	fmt.Fprintf(Output, "  %s✔%s %-15s %s%s\n", ColorGreen, ColorReset, label, ColorGreen, detail+ColorReset)
}

func PrintError(label, detail string) {
	fmt.Fprintf(Output, "  %s✘%s %-15s %s%s\n", ColorRed, ColorReset, label, ColorRed, detail+ColorReset)
}

func PrintWarning(label, detail string) {
	fmt.Fprintf(Output, "  %s!%s %-15s %s%s\n", ColorYellow, ColorReset, label, ColorYellow, detail+ColorReset)
}

// DisableColor strips ANSI sequences from subsequent output.
func DisableColor() {
	ColorReset, ColorRed, ColorGreen, ColorYellow = "", "", "", ""
}

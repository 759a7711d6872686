package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiReset  = "\033[0m"
)

func colorize(color, s string) string {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return s
	}
	return color + s + ansiReset
}

// Successf prints a green status line to the error stream.
func Successf(format string, v ...interface{}) {
	fmt.Fprintln(os.Stderr, colorize(ansiGreen, fmt.Sprintf(format, v...)))
}

// Warnf prints a yellow advisory line to the error stream. Advisories
// never abort the run.
func Warnf(format string, v ...interface{}) {
	fmt.Fprintln(os.Stderr, colorize(ansiYellow, fmt.Sprintf(format, v...)))
}

// Errorf prints a red status line to the error stream.
func Errorf(format string, v ...interface{}) {
	fmt.Fprintln(os.Stderr, colorize(ansiRed, fmt.Sprintf(format, v...)))
}

package report

import (
	"io"

	"github.com/fatih/color"
)

// Success writes a green status line.
func Success(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen, color.Bold).Fprintf(w, "✔ "+format+"\n", args...)
}

// Failure writes a red status line.
func Failure(w io.Writer, format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(w, "✘ "+format+"\n", args...)
}

// Warn writes a yellow status line.
func Warn(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, "! "+format+"\n", args...)
}

// Package cli holds the terminal presentation for the wavstego command.
package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#5F5FD7")
	successColor = lipgloss.Color("#00AA00")
	errorColor   = lipgloss.Color("#D70000")
	warningColor = lipgloss.Color("#FFAF00")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

var (
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 2)
)

// Output is where the Print helpers write; tests may swap it.
var Output io.Writer = os.Stdout

func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

func PrintWarning(message string) {
	fmt.Fprintf(Output, "%s %s\n", WarningStyle.Render("Warning:"), message)
}

func PrintSuccess(message string) {
	fmt.Fprintf(Output, "%s %s\n", SuccessStyle.Render("✓"), message)
}

// Field is one key/value line of a report.
type Field struct {
	Key   string
	Value string
}

// RenderReport lays out fields with aligned keys inside a box.
func RenderReport(title string, fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Key))
	}

	var b strings.Builder
	b.WriteString(SuccessStyle.Render(title))
	for _, f := range fields {
		b.WriteString("\n")
		b.WriteString(KeyStyle.Render(fmt.Sprintf("%-*s ", width+1, f.Key+":")))
		b.WriteString(ValueStyle.Render(f.Value))
	}
	return BoxStyle.Render(b.String())
}

func PrintReport(title string, fields []Field) {
	fmt.Fprintln(Output, RenderReport(title, fields))
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatPSNR renders +Inf as "lossless".
func FormatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "lossless"
	}
	return fmt.Sprintf("%.2f dB", psnr)
}

package errors

import (
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string    { return color(colorRed, text) }
func yellow(text string) string { return color(colorYellow, text) }
func cyan(text string) string   { return color(colorCyan, text) }
func gray(text string) string   { return color(colorGray, text) }
func bold(text string) string   { return color(colorBold, text) }

// Format returns the error laid out for terminal display.
func (e *ReconcileError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(red(bold("ERROR ")))
		b.WriteString(bold(e.Code + ": "))
	} else {
		b.WriteString(red(bold("ERROR: ")))
	}
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Node != "" {
		b.WriteString("  ")
		b.WriteString(cyan("at " + e.Node))
		b.WriteString("\n\n")
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(gray("caused by: " + e.Wrapped.Error()))
		b.WriteString("\n\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(yellow("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n")
	}

	return b.String()
}

// wrapText splits text into lines of at most width runes, breaking on spaces.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

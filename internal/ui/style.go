package ui

import "github.com/pterm/pterm"

// CheckResult selects the mark shown in front of a summary line.
type CheckResult int

const (
	CheckResultPass CheckResult = iota
	CheckResultFail
	CheckResultWarn
	CheckResultSkip
)

var marks = map[CheckResult]struct {
	symbol string
	color  pterm.Color
}{
	CheckResultPass: {"✓", pterm.FgGreen},
	CheckResultFail: {"✗", pterm.FgRed},
	CheckResultWarn: {"!", pterm.FgYellow},
	CheckResultSkip: {"-", pterm.FgGray},
}

// Mark returns the plain symbol for a result.
func Mark(result CheckResult) string {
	return marks[result].symbol
}

// FormatCheck prefixes message with the colored mark for result.
// Skipped lines are dimmed entirely.
func FormatCheck(result CheckResult, message string) string {
	m, ok := marks[result]
	if !ok {
		return message
	}
	if result == CheckResultSkip {
		message = Dim(message)
	}
	return m.color.Sprint(m.symbol) + " " + message
}

// FormatLabel renders "label: value" with a colored label.
func FormatLabel(label, value string) string {
	return pterm.FgBlue.Sprint(label+":") + " " + value
}

// Bold returns bold text.
func Bold(text string) string { return pterm.Bold.Sprint(text) }

// Dim returns dimmed text.
func Dim(text string) string { return pterm.FgGray.Sprint(text) }

// Code returns text styled as a literal.
func Code(text string) string { return pterm.FgCyan.Sprint(text) }

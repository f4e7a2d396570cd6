package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	rcerrors "github.com/griffithind/runcompose/internal/errors"
)

// FormatError renders err for the terminal. A ConvError is shown with its
// category badge, cause, context and hint; any other error on one line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var convErr *rcerrors.ConvError
	if !errors.As(err, &convErr) {
		return fmt.Sprintf("%s %s\n", pterm.FgRed.Sprint(Mark(CheckResultFail)), err.Error())
	}

	var sb strings.Builder

	badge := pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold).
		Sprintf(" %s ", strings.ToUpper(string(convErr.Category)))
	fmt.Fprintf(&sb, "%s %s\n", badge, pterm.FgRed.Sprint(convErr.Message))

	if convErr.Cause != nil {
		fmt.Fprintf(&sb, "\n%s: %s\n", pterm.FgBlue.Sprint("Cause"), convErr.Cause.Error())
	}

	if len(convErr.Context) > 0 {
		fmt.Fprintf(&sb, "\n%s:\n", pterm.FgBlue.Sprint("Context"))
		keys := make([]string, 0, len(convErr.Context))
		for k := range convErr.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", pterm.FgGray.Sprint(k), convErr.Context[k])
		}
	}

	if convErr.Hint != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", pterm.FgCyan.Sprint("ℹ"), pterm.FgGray.Sprint(convErr.Hint))
	}

	return sb.String()
}

// PrintError writes the formatted error to the error writer.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprint(ErrWriter(), FormatError(err))
}

// FormatErrorBrief returns a one-line form suitable for logs.
func FormatErrorBrief(err error) string {
	if err == nil {
		return ""
	}

	var convErr *rcerrors.ConvError
	if errors.As(err, &convErr) {
		return fmt.Sprintf("[%s/%s] %s", convErr.Category, convErr.Code, convErr.Message)
	}

	return err.Error()
}

// Package ui writes runcompose's terminal output through pterm.
//
// Output comes in two kinds. Results, such as a converted document or a
// completion script, go through Output and are never suppressed. Chatter,
// such as status lines, tables and warnings, is dropped in quiet mode.
// Verbose lines go to the error writer so a piped result stays clean.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"
)

// Verbosity represents the output verbosity level.
type Verbosity int

const (
	VerbosityQuiet   Verbosity = -1
	VerbosityNormal  Verbosity = 0
	VerbosityVerbose Verbosity = 1
)

// Config holds UI configuration.
type Config struct {
	Verbosity Verbosity
	NoColor   bool
	Writer    io.Writer
	ErrWriter io.Writer
}

var (
	mu      sync.RWMutex
	current = Config{Writer: os.Stdout, ErrWriter: os.Stderr}
)

// Configure replaces the UI configuration. Nil writers default to the
// process's stdout and stderr.
func Configure(cfg Config) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = os.Stderr
	}

	mu.Lock()
	defer mu.Unlock()
	current = cfg

	if cfg.NoColor {
		pterm.DisableColor()
	} else {
		pterm.EnableColor()
	}
	pterm.SetDefaultOutput(cfg.Writer)
}

func snapshot() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// IsQuiet returns true if quiet mode is enabled.
func IsQuiet() bool { return snapshot().Verbosity <= VerbosityQuiet }

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool { return snapshot().Verbosity >= VerbosityVerbose }

// Writer returns the configured output writer.
func Writer() io.Writer { return snapshot().Writer }

// ErrWriter returns the configured error writer.
func ErrWriter() io.Writer { return snapshot().ErrWriter }

// Output writes a result verbatim, even in quiet mode.
func Output(data []byte) error {
	_, err := Writer().Write(data)
	return err
}

// Success prints a success line unless quiet.
func Success(format string, args ...interface{}) {
	if IsQuiet() {
		return
	}
	pterm.Success.WithWriter(Writer()).Printfln(format, args...)
}

// Info prints an informational line unless quiet.
func Info(format string, args ...interface{}) {
	if IsQuiet() {
		return
	}
	pterm.Info.WithWriter(Writer()).Printfln(format, args...)
}

// Warning prints a warning to the error writer unless quiet.
func Warning(format string, args ...interface{}) {
	if IsQuiet() {
		return
	}
	pterm.Warning.WithWriter(ErrWriter()).Printfln(format, args...)
}

// Verbose prints a dimmed line to the error writer in verbose mode only.
func Verbose(format string, args ...interface{}) {
	if !IsVerbose() {
		return
	}
	fmt.Fprintln(ErrWriter(), pterm.FgGray.Sprintf(format, args...))
}

// Print writes formatted text unless quiet.
func Print(format string, args ...interface{}) {
	if IsQuiet() {
		return
	}
	fmt.Fprintf(Writer(), format, args...)
}

// Println writes a line unless quiet.
func Println(args ...interface{}) {
	if IsQuiet() {
		return
	}
	fmt.Fprintln(Writer(), args...)
}

// RenderTable renders a table with a header row unless quiet.
func RenderTable(headers []string, rows [][]string) error {
	if IsQuiet() {
		return nil
	}
	data := append(pterm.TableData{headers}, rows...)
	return pterm.DefaultTable.WithHasHeader().WithWriter(Writer()).WithData(data).Render()
}

// Spinner is a progress indicator that is a no-op in quiet mode.
type Spinner struct {
	printer *pterm.SpinnerPrinter
}

// StartSpinner starts a spinner with the given message.
func StartSpinner(message string) *Spinner {
	if IsQuiet() {
		return &Spinner{}
	}
	s, _ := pterm.DefaultSpinner.WithWriter(ErrWriter()).Start(message)
	return &Spinner{printer: s}
}

// Success stops the spinner with a success message.
func (s *Spinner) Success(message string) {
	if s.printer != nil {
		s.printer.Success(message)
	}
}

// Fail stops the spinner with a failure message.
func (s *Spinner) Fail(message string) {
	if s.printer != nil {
		s.printer.Fail(message)
	}
}

// Stream is an io.Writer that resolves the configured writer on every
// write, so cobra output follows later Configure calls. The output stream
// is silenced in quiet mode; the error stream never is.
type Stream struct {
	errors bool
}

// OutStream returns a Stream over the output writer.
func OutStream() *Stream { return &Stream{} }

// ErrStream returns a Stream over the error writer.
func ErrStream() *Stream { return &Stream{errors: true} }

func (s *Stream) Write(p []byte) (int, error) {
	if s.errors {
		return ErrWriter().Write(p)
	}
	if IsQuiet() {
		return len(p), nil
	}
	return Writer().Write(p)
}

package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	rcerrors "github.com/griffithind/runcompose/internal/errors"
)

func TestFormatError_ConvError(t *testing.T) {
	Configure(Config{NoColor: true})

	out := FormatError(rcerrors.FormatError("ls -la"))

	assert.Contains(t, out, "INPUT")
	assert.Contains(t, out, "This doesn't appear to be a docker run command")
	assert.Contains(t, out, "input")
	assert.Contains(t, out, "ls -la")
	assert.Contains(t, out, `The command must start with "docker run"`)
}

func TestFormatError_WithCause(t *testing.T) {
	Configure(Config{NoColor: true})

	out := FormatError(rcerrors.ConversionError(errors.New("unexpected token")))

	assert.Contains(t, out, "Failed to parse command")
	assert.Contains(t, out, "Cause")
	assert.Contains(t, out, "unexpected token")
}

func TestPrintError(t *testing.T) {
	var errOut bytes.Buffer
	Configure(Config{NoColor: true, ErrWriter: &errOut})
	t.Cleanup(func() { Configure(Config{}) })

	PrintError(errors.New("plain failure"))
	assert.Equal(t, "✗ plain failure\n", errOut.String())

	errOut.Reset()
	PrintError(nil)
	assert.Empty(t, errOut.String())
	assert.Empty(t, FormatError(nil))
}

func TestFormatErrorBrief(t *testing.T) {
	assert.Equal(t, "[conversion/CONVERSION_NO_IMAGE] no image found in command", FormatErrorBrief(rcerrors.MissingImage()))
	assert.Equal(t, "plain", FormatErrorBrief(errors.New("plain")))
	assert.Empty(t, FormatErrorBrief(nil))
}

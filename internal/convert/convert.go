// Package convert is the entry point for turning pasted docker run text into
// a compose document. It owns input cleanup, the "docker run" prefix check,
// and the mapping of failures onto the error taxonomy.
package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/griffithind/runcompose/internal/compose"
	rcerrors "github.com/griffithind/runcompose/internal/errors"
	"github.com/griffithind/runcompose/internal/parse"
	"github.com/griffithind/runcompose/internal/util"
)

// Prefix is the literal text every accepted command starts with.
const Prefix = "docker run"

// Options controls a conversion.
type Options struct {
	// StripQuotes tokenizes with conventional shell quoting instead of the
	// quote-retaining tokenizer.
	StripQuotes bool

	// Strict rejects value flags that have no following token.
	Strict bool

	// RequireImage rejects commands in which no image was found.
	RequireImage bool
}

// Result is the outcome of a successful conversion.
type Result struct {
	Tokens   []string
	Command  *parse.RunCommand
	Document *compose.Document
}

// Clean removes shell prompt markers and line continuations and trims the
// surrounding whitespace. Every "$" and "\" is dropped, wherever it occurs.
func Clean(raw string) string {
	cleaned := strings.NewReplacer("$", "", "\\", "").Replace(raw)
	return strings.TrimSpace(cleaned)
}

// Tokens cleans raw text, checks the docker run prefix and tokenizes it.
func Tokens(raw string, opts Options) ([]string, error) {
	text := Clean(raw)
	if text == "" {
		return nil, rcerrors.EmptyInput()
	}
	if !strings.HasPrefix(text, Prefix) {
		return nil, rcerrors.FormatError(text)
	}

	if opts.StripQuotes {
		tokens, err := parse.TokenizeShell(text)
		if err != nil {
			return nil, rcerrors.ConversionError(err)
		}
		return tokens, nil
	}
	return parse.Tokenize(text), nil
}

// Run converts raw command text into a compose document.
func Run(raw string, opts Options) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = rcerrors.ConversionError(fmt.Errorf("%v", r))
		}
	}()

	tokens, err := Tokens(raw, opts)
	if err != nil {
		return nil, err
	}
	cmd := parse.ParseRunCommand(tokens)

	util.With("component", "convert").Debug("interpreted command",
		"tokens", len(tokens),
		"service", cmd.ServiceName,
		"image", cmd.Image,
		"ignored", cmd.Ignored(),
		"dangling", cmd.Dangling,
	)

	if opts.Strict && len(cmd.Dangling) > 0 {
		return nil, rcerrors.DanglingFlag(cmd.Dangling[0])
	}
	if opts.RequireImage && cmd.Image == "" {
		return nil, rcerrors.MissingImage()
	}

	return &Result{
		Tokens:   tokens,
		Command:  cmd,
		Document: cmd.Document(),
	}, nil
}

// Convert converts raw command text into a compose document.
func Convert(raw string, opts Options) (*compose.Document, error) {
	res, err := Run(raw, opts)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// Render converts raw command text and serializes the resulting document.
func Render(raw string, opts Options, renderOpts compose.RenderOptions) ([]byte, error) {
	doc, err := Convert(raw, opts)
	if err != nil {
		return nil, err
	}

	data, err := compose.Render(doc, renderOpts)
	if err != nil {
		format := string(renderOpts.Format)
		if format == "" {
			format = string(compose.FormatYAML)
		}
		return nil, rcerrors.RenderFailed(format, err)
	}
	return data, nil
}

// Check loads the document through compose to confirm it is a valid project.
func Check(ctx context.Context, doc *compose.Document) error {
	if _, err := compose.Check(ctx, doc); err != nil {
		return rcerrors.CheckFailed(err)
	}
	return nil
}

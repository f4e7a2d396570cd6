package compose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding for a rendered document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultIndent is the indentation width used when none is configured.
const DefaultIndent = 2

// RenderOptions controls how a document is serialized.
type RenderOptions struct {
	Format Format
	// SortKeys renders mapping keys alphabetically instead of in
	// insertion order.
	SortKeys bool
	Indent   int
}

// ParseFormat converts a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected yaml or json)", s)
	}
}

// Render serializes the document.
func Render(doc *Document, opts RenderOptions) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	indent := opts.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	var v interface{} = doc
	if opts.SortKeys {
		v = doc.Map()
	}

	switch opts.Format {
	case "", FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(indent)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to marshal yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

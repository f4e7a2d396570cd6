package parse

import (
	"strings"
	"unicode"

	"github.com/google/shlex"
)

// Tokenize splits command text into shell words.
//
// Single and double quotes group whitespace into one word, but the quote
// characters themselves are kept in the word: `-e "A=b c"` yields
// `-e` and `"A=b c"`. A quote character of the other kind inside a quoted
// section is literal. An unterminated quote swallows the rest of the input
// into the final word. Tokenize never fails.
func Tokenize(text string) []string {
	var (
		tokens    []string
		current   strings.Builder
		inQuotes  bool
		quoteChar rune
	)

	for _, r := range text {
		switch {
		case r == '"' || r == '\'':
			if !inQuotes {
				inQuotes = true
				quoteChar = r
			} else if r == quoteChar {
				inQuotes = false
				quoteChar = 0
			}
			current.WriteRune(r)
		case unicode.IsSpace(r) && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// TokenizeShell splits command text using conventional shell quoting rules:
// quotes are removed and only group words. Unlike Tokenize it reports an
// error for unterminated quotes.
func TokenizeShell(text string) ([]string, error) {
	return shlex.Split(text)
}

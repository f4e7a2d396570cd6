package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	rcerrors "github.com/griffithind/runcompose/internal/errors"
	"github.com/griffithind/runcompose/internal/util"
)

// readInput returns the command text from args, a file or stdin, in that
// order of preference.
func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) > 0 {
		if file != "" {
			return "", rcerrors.ConfigValidation("cannot use --file together with a command argument").
				WithHint("Pass the docker run command either as arguments or in a file, not both")
		}
		return joinArgs(args), nil
	}

	if file != "" && file != "-" {
		path := util.ExpandHome(file)
		data, err := os.ReadFile(path)
		if err != nil {
			return "", rcerrors.FileRead(path, err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", rcerrors.EmptyInput().
			WithHint("Pass a docker run command as arguments, with --file, or on stdin")
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", rcerrors.FileRead("stdin", err)
	}
	return string(data), nil
}

// joinArgs rebuilds command text from shell-split arguments. Arguments
// containing whitespace get their double quotes back so the tokenizer
// keeps them whole.
func joinArgs(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if strings.ContainsAny(arg, " \t\n") && !strings.ContainsAny(arg, `"'`) {
			arg = `"` + arg + `"`
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}

package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/griffithind/runcompose/internal/compose"
	"github.com/griffithind/runcompose/internal/config"
	"github.com/griffithind/runcompose/internal/convert"
	rcerrors "github.com/griffithind/runcompose/internal/errors"
	"github.com/griffithind/runcompose/internal/ui"
	"github.com/griffithind/runcompose/internal/util"
)

// convertOptions holds the flags shared by convert, explain and example.
type convertOptions struct {
	file        string
	output      string
	format      string
	indent      int
	sortKeys    bool
	stripQuotes bool
	strict      bool
	check       bool
}

var convertOpts convertOptions

// settings are the effective options after merging flags over config.
type settings struct {
	convert convert.Options
	render  compose.RenderOptions
	check   bool
}

var convertCmd = &cobra.Command{
	Use:   "convert [docker run command...]",
	Short: "Convert a docker run command to a compose file",
	Long: `Convert a docker run command to a docker-compose file.

The command can be given as arguments, read from a file with --file, or
piped on stdin. Shell prompt markers ($) and line continuations (\) are
removed, so commands copied from documentation can be pasted as-is.

Examples:
  runcompose convert docker run -d --name web -p 80:80 nginx
  pbpaste | runcompose convert
  runcompose convert --file run.sh --format json -o compose.json
  runcompose convert --check docker run -v data:/data redis`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args, convertOpts.file)
	if err != nil {
		return err
	}

	s, err := convertOpts.resolve(cmd.Flags(), cfg)
	if err != nil {
		return err
	}

	res, err := convert.Run(raw, s.convert)
	if err != nil {
		return err
	}

	if ignored := res.Command.Ignored(); len(ignored) > 0 {
		ui.Verbose("Ignored tokens: %v", ignored)
	}
	if res.Document.Service().Image == "" {
		ui.Warning("No image found; the image must be the last word of the command")
	}

	if s.check {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := convert.Check(ctx, res.Document); err != nil {
			return err
		}
		ui.Verbose("Compose accepted the generated document")
	}

	data, err := compose.Render(res.Document, s.render)
	if err != nil {
		return rcerrors.RenderFailed(string(s.render.Format), err)
	}

	return writeOutput(data, convertOpts.output)
}

// resolve merges command-line flags over the loaded config.
func (o convertOptions) resolve(flags *pflag.FlagSet, c *config.Config) (settings, error) {
	if c == nil {
		c = config.Default()
	}

	format := c.Format
	if flags.Changed("format") {
		format = o.format
	}
	f, err := compose.ParseFormat(format)
	if err != nil {
		return settings{}, rcerrors.ConfigValidation(err.Error()).WithContext("flag", "--format")
	}

	indent := c.Indent
	if flags.Changed("indent") {
		indent = o.indent
	}

	pick := func(name string, flagValue, configValue bool) bool {
		if flags.Changed(name) {
			return flagValue
		}
		return configValue
	}

	strict := pick("strict", o.strict, c.Strict)
	return settings{
		convert: convert.Options{
			StripQuotes:  pick("strip-quotes", o.stripQuotes, c.StripQuotes),
			Strict:       strict,
			RequireImage: strict,
		},
		render: compose.RenderOptions{
			Format:   f,
			SortKeys: pick("sort-keys", o.sortKeys, c.SortKeys),
			Indent:   indent,
		},
		check: pick("check", o.check, c.Check),
	}, nil
}

// writeOutput writes the rendered document to path, or to stdout when
// path is empty or "-".
func writeOutput(data []byte, path string) error {
	if path == "" || path == "-" {
		return ui.Output(data)
	}

	path = util.ExpandHome(path)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return rcerrors.FileWrite(path, err)
	}
	ui.Success("Wrote %s", path)
	return nil
}

// addConversionFlags registers the flags that control tokenizing and
// interpretation.
func addConversionFlags(cmd *cobra.Command, o *convertOptions) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", `read the command from a file ("-" for stdin)`)
	cmd.Flags().BoolVar(&o.stripQuotes, "strip-quotes", false, "use shell quoting rules and remove quote characters")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail on flags without values and commands without an image")
}

func init() {
	addConversionFlags(convertCmd, &convertOpts)
	convertCmd.Flags().StringVarP(&convertOpts.output, "output", "o", "", "write the result to a file instead of stdout")
	convertCmd.Flags().StringVar(&convertOpts.format, "format", "yaml", "output format: yaml or json")
	convertCmd.Flags().IntVar(&convertOpts.indent, "indent", compose.DefaultIndent, "indentation width")
	convertCmd.Flags().BoolVar(&convertOpts.sortKeys, "sort-keys", false, "sort keys alphabetically instead of keeping compose order")
	convertCmd.Flags().BoolVar(&convertOpts.check, "check", false, "load the result with compose to confirm it is valid")

	// Everything after the first argument belongs to the docker command.
	convertCmd.Flags().SetInterspersed(false)
}

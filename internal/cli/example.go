package cli

import (
	"github.com/spf13/cobra"

	"github.com/griffithind/runcompose/internal/compose"
	"github.com/griffithind/runcompose/internal/convert"
	rcerrors "github.com/griffithind/runcompose/internal/errors"
	"github.com/griffithind/runcompose/internal/ui"
)

// ExampleCommand is a docker run command as it is typically pasted from
// documentation, prompt marker and line continuations included.
const ExampleCommand = `$ docker run -d \
  --name lodestone \
  --restart unless-stopped \
  -p 16662:16662 \
  -v lodestone:/home/user/.lodestone \
  ghcr.io/lodestone-team/lodestone_core
`

var exampleConvert bool

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example docker run command",
	Long: `Print an example docker run command that runcompose understands.

With --convert the example is converted as well, using the configured
output format.`,
	Args: cobra.NoArgs,
	RunE: runExample,
}

func runExample(cmd *cobra.Command, args []string) error {
	if !exampleConvert {
		return ui.Output([]byte(ExampleCommand))
	}

	ui.Print("%s\n", ui.Dim(ExampleCommand))

	renderOpts := compose.RenderOptions{
		Format:   cfg.RenderFormat(),
		SortKeys: cfg.SortKeys,
		Indent:   cfg.Indent,
	}

	data, err := convert.Render(ExampleCommand, convert.Options{}, renderOpts)
	if err != nil {
		return err
	}
	if err := ui.Output(data); err != nil {
		return rcerrors.Internal("writing example output", err)
	}
	return nil
}

func init() {
	exampleCmd.Flags().BoolVar(&exampleConvert, "convert", false, "also print the converted compose file")
}

package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/griffithind/runcompose/internal/ui"
	"github.com/griffithind/runcompose/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ui.IsQuiet() {
			return ui.Output([]byte(version.Version + "\n"))
		}
		ui.Println(ui.FormatLabel("Version", version.Version))
		ui.Println(ui.FormatLabel("Commit", version.Commit))
		ui.Println(ui.FormatLabel("Go", runtime.Version()))
		ui.Println(ui.FormatLabel("Platform", runtime.GOOS+"/"+runtime.GOARCH))
		return nil
	},
}

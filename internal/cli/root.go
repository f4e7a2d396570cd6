// Package cli implements the command-line interface for runcompose.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/griffithind/runcompose/internal/config"
	"github.com/griffithind/runcompose/internal/ui"
	"github.com/griffithind/runcompose/internal/util"
	"github.com/griffithind/runcompose/internal/version"
)

// Global flags
var (
	configPath string
	noColor    bool
	quiet      bool
	verbose    bool
)

// Output streams; replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// cfg holds the loaded user defaults. It is set before any command runs.
var cfg = config.Default()

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "runcompose",
	Short: "Convert docker run commands to compose files",
	Long: `runcompose converts a docker run command into an equivalent
docker-compose service definition.

It understands --name, --restart, -p/--publish, -v/--volume, -e/--env,
--network and -d/--detach. Other flags are ignored. Named volumes used by
the command are declared at the top level of the generated file.`,
	Version:      version.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags after the subcommand are only known now.
		initUI()

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Parse flags early to configure UI before command execution.
	// This ensures --no-color and --quiet affect output even for invalid commands.
	// Only the flags before the subcommand are considered; anything later may
	// belong to the docker run command being converted.
	_ = rootCmd.ParseFlags(leadingFlags(os.Args[1:]))
	initUI()

	err := rootCmd.Execute()
	if err != nil {
		util.Debug("command failed: %s", ui.FormatErrorBrief(err))
		ui.PrintError(err)
	}
	return err
}

// leadingFlags returns the arguments up to the first non-flag argument.
func leadingFlags(args []string) []string {
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return args[:i]
		}
	}
	return args
}

// initUI configures the UI and logging based on parsed flags.
func initUI() {
	verbosity := ui.VerbosityNormal
	if quiet {
		verbosity = ui.VerbosityQuiet
	} else if verbose {
		verbosity = ui.VerbosityVerbose
	}

	ui.Configure(ui.Config{
		Verbosity: verbosity,
		NoColor:   noColor || util.GetEnvBool("NO_COLOR", false),
		Writer:    stdout,
		ErrWriter: stderr,
	})

	util.SetQuiet(quiet)
	if verbose {
		util.SetVerbose(true)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: $RUNCOMPOSE_CONFIG or ~/.config/runcompose/config.jsonc)")

	// Output flags
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output (errors and results only)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Configure Cobra to use UI-aware writers
	rootCmd.SetOut(ui.OutStream())
	rootCmd.SetErr(ui.ErrStream())
	rootCmd.SilenceErrors = true // We handle errors ourselves in Execute()

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{ID: "convert", Title: "Conversion Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "utilities", Title: "Utilities:"})

	convertCmd.GroupID = "convert"
	explainCmd.GroupID = "convert"
	exampleCmd.GroupID = "convert"
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(exampleCmd)

	versionCmd.GroupID = "utilities"
	completionCmd.GroupID = "utilities"
	upgradeCmd.GroupID = "utilities"
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(upgradeCmd)
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/griffithind/runcompose/internal/config"
	rcerrors "github.com/griffithind/runcompose/internal/errors"
	"github.com/griffithind/runcompose/internal/ui"
)

const lodestoneCommand = "docker run -d --name lodestone --restart unless-stopped -p 16662:16662 -v lodestone:/home/user/.lodestone ghcr.io/lodestone-team/lodestone_core"

// resetFlags restores every flag to its default so commands can be
// executed more than once in a test binary.
func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range []*cobra.Command{convertCmd, explainCmd, exampleCmd} {
		reset(c.Flags())
	}
	cfg = config.Default()
}

// executeCLI runs the root command with args and returns stdout and stderr.
func executeCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "missing.jsonc"))

	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	resetFlags()
	t.Cleanup(func() {
		stdout, stderr = os.Stdout, os.Stderr
		resetFlags()
		ui.Configure(ui.Config{})
		rootCmd.SetIn(nil)
	})

	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestConvertCommandFlags(t *testing.T) {
	flags := convertCmd.Flags()

	formatFlag := flags.Lookup("format")
	require.NotNil(t, formatFlag, "format flag should exist")
	assert.Equal(t, "yaml", formatFlag.DefValue)

	indentFlag := flags.Lookup("indent")
	require.NotNil(t, indentFlag, "indent flag should exist")
	assert.Equal(t, "2", indentFlag.DefValue)

	outputFlag := flags.Lookup("output")
	require.NotNil(t, outputFlag, "output flag should exist")
	assert.Equal(t, "o", outputFlag.Shorthand)

	fileFlag := flags.Lookup("file")
	require.NotNil(t, fileFlag, "file flag should exist")
	assert.Equal(t, "f", fileFlag.Shorthand)

	for _, name := range []string{"sort-keys", "strip-quotes", "strict", "check"} {
		f := flags.Lookup(name)
		require.NotNil(t, f, "%s flag should exist", name)
		assert.Equal(t, "false", f.DefValue)
	}
}

func TestConvertCommandMetadata(t *testing.T) {
	assert.Equal(t, "convert", convertCmd.Name())
	assert.NotEmpty(t, convertCmd.Short)
	assert.NotEmpty(t, convertCmd.Long)
	assert.NotNil(t, convertCmd.RunE)
	assert.Equal(t, "convert", convertCmd.GroupID)
}

func TestExplainCommandFlags(t *testing.T) {
	flags := explainCmd.Flags()
	assert.NotNil(t, flags.Lookup("file"))
	assert.NotNil(t, flags.Lookup("strip-quotes"))
	assert.NotNil(t, flags.Lookup("strict"))
	assert.Nil(t, flags.Lookup("output"), "explain does not write files")
}

func TestExampleCommandMetadata(t *testing.T) {
	assert.Equal(t, "example", exampleCmd.Use)
	assert.NotEmpty(t, exampleCmd.Short)
	assert.NotNil(t, exampleCmd.Flags().Lookup("convert"))
}

func TestUtilityCommands(t *testing.T) {
	for _, c := range []*cobra.Command{versionCmd, completionCmd, upgradeCmd} {
		assert.Equal(t, "utilities", c.GroupID, c.Name())
		assert.NotEmpty(t, c.Short, c.Name())
	}
}

func TestLeadingFlags(t *testing.T) {
	tests := []struct {
		args     []string
		expected []string
	}{
		{args: []string{"--no-color", "convert", "docker", "run", "-v", "a:/a", "x"}, expected: []string{"--no-color"}},
		{args: []string{"-q", "-v"}, expected: []string{"-q", "-v"}},
		{args: []string{"convert", "-q"}, expected: []string{}},
		{args: nil, expected: nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, leadingFlags(tt.args), "%v", tt.args)
	}
}

func TestConvert_Args(t *testing.T) {
	out, _, err := executeCLI(t, "", append([]string{"convert"}, strings.Fields(lodestoneCommand)...)...)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "3", doc["version"])

	services := doc["services"].(map[string]interface{})
	svc := services["lodestone"].(map[string]interface{})
	assert.Equal(t, "ghcr.io/lodestone-team/lodestone_core", svc["image"])
	assert.Equal(t, "lodestone", svc["container_name"])
	assert.Equal(t, "unless-stopped", svc["restart"])
	assert.Equal(t, []interface{}{"16662:16662"}, svc["ports"])
	assert.Equal(t, []interface{}{"lodestone:/home/user/.lodestone"}, svc["volumes"])

	volumes := doc["volumes"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"external": false}, volumes["lodestone"])
}

func TestConvert_Stdin(t *testing.T) {
	out, _, err := executeCLI(t, "$ docker run \\\n  -p 80:80 \\\n  nginx\n", "convert")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "version: \"3\"\nservices:\n  nginx:\n"), "got:\n%s", out)
	assert.NotContains(t, out, "volumes:")
}

func TestConvert_JSON(t *testing.T) {
	out, _, err := executeCLI(t, "", "convert", "--format", "json", "docker", "run", "redis")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"version\": \"3\",\n  \"services\": {\n    \"redis\": {\n      \"image\": \"redis\"\n    }\n  }\n}\n", out)
}

func TestConvert_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compose.yaml")

	_, _, err := executeCLI(t, "", "convert", "-o", path, "docker", "run", "alpine")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: \"3\"\nservices:\n  alpine:\n    image: alpine\n", string(data))
}

func TestConvert_DockerFlagsAreNotParsed(t *testing.T) {
	// -v and -d belong to docker run, not to runcompose.
	out, _, err := executeCLI(t, "", "convert", "docker", "run", "-d", "-v", "data:/data", "redis")
	require.NoError(t, err)
	assert.Contains(t, out, "data:/data")
	assert.Contains(t, out, "external: false")
}

func TestConvert_Errors(t *testing.T) {
	t.Run("not docker run", func(t *testing.T) {
		_, _, err := executeCLI(t, "", "convert", "podman", "run", "alpine")
		require.Error(t, err)
		assert.Equal(t, rcerrors.CodeInputFormat, rcerrors.GetCode(err))
	})

	t.Run("empty stdin", func(t *testing.T) {
		_, _, err := executeCLI(t, "  \n", "convert")
		require.Error(t, err)
		assert.Equal(t, rcerrors.CodeInputEmpty, rcerrors.GetCode(err))
	})

	t.Run("strict dangling flag", func(t *testing.T) {
		_, _, err := executeCLI(t, "", "convert", "--strict", "docker", "run", "alpine", "--name")
		require.Error(t, err)
		assert.Equal(t, rcerrors.CodeInputDangling, rcerrors.GetCode(err))
	})

	t.Run("bad format", func(t *testing.T) {
		_, _, err := executeCLI(t, "", "convert", "--format", "toml", "docker", "run", "alpine")
		require.Error(t, err)
		assert.Equal(t, rcerrors.CodeConfigValidation, rcerrors.GetCode(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := executeCLI(t, "", "convert", "--file", filepath.Join(t.TempDir(), "nope.sh"))
		require.Error(t, err)
		assert.Equal(t, rcerrors.CodeFileRead, rcerrors.GetCode(err))
	})
}

func TestConvert_ConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.jsonc")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{
		// always emit JSON
		"format": "json",
	}`), 0644))

	out, _, err := executeCLI(t, "", "--config", cfgPath, "convert", "docker", "run", "alpine")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"), "got:\n%s", out)

	// A flag overrides the config file.
	out, _, err = executeCLI(t, "", "--config", cfgPath, "convert", "--format", "yaml", "docker", "run", "alpine")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "version:"), "got:\n%s", out)
}

func TestExplain(t *testing.T) {
	out, _, err := executeCLI(t, "", append([]string{"explain"}, strings.Fields(lodestoneCommand)...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Service: lodestone")
	assert.Contains(t, out, "unless-stopped")
	assert.Contains(t, out, "16662 -> 16662/tcp")
	assert.Contains(t, out, "/home/user/.lodestone")
	assert.Contains(t, out, "detach")
}

func TestExample(t *testing.T) {
	out, _, err := executeCLI(t, "", "example")
	require.NoError(t, err)
	assert.Equal(t, ExampleCommand, out)

	out, _, err = executeCLI(t, "", "example", "--convert")
	require.NoError(t, err)
	assert.Contains(t, out, "container_name: lodestone")
}

func TestVersionQuiet(t *testing.T) {
	out, _, err := executeCLI(t, "", "-q", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestCompletion(t *testing.T) {
	out, _, err := executeCLI(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "runcompose")

	_, _, err = executeCLI(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

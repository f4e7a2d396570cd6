// Package helpers provides shared test utilities for runcompose E2E tests.
package helpers

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

var (
	binaryPath string
	binaryOnce sync.Once
)

// RunCLI runs the runcompose binary with the given arguments.
// It returns stdout, stderr, and any error.
func RunCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return RunCLIWithInput(t, "", args...)
}

// RunCLIWithInput runs runcompose with stdin set to input.
func RunCLIWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()

	bin := GetBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = strings.NewReader(input)
	// Keep user config and terminal colors out of the results.
	cmd.Env = append(os.Environ(),
		"RUNCOMPOSE_CONFIG="+filepath.Join(t.TempDir(), "none.jsonc"),
		"NO_COLOR=1",
	)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String(), stderr.String(), err
}

// RunCLISuccess runs runcompose and expects success.
func RunCLISuccess(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := RunCLI(t, args...)
	if err != nil {
		t.Fatalf("runcompose %v failed: %v\nstdout: %s\nstderr: %s", args, err, stdout, stderr)
	}
	return stdout
}

// GetBinary returns the path to the runcompose binary, building it if needed.
func GetBinary(t *testing.T) string {
	t.Helper()

	binaryOnce.Do(func() {
		root := GetProjectRoot(t)
		path := filepath.Join(root, "bin", "runcompose")

		// Check if binary exists
		if _, err := os.Stat(path); err == nil {
			// Verify it works
			cmd := exec.Command(path, "--version")
			if err := cmd.Run(); err == nil {
				binaryPath = path
				return
			}
		}

		// Binary doesn't exist or doesn't work, build it
		t.Logf("Building runcompose binary...")
		buildCmd := exec.Command("go", "build", "-o", path, "./cmd/runcompose")
		buildCmd.Dir = root
		output, err := buildCmd.CombinedOutput()
		if err != nil {
			t.Fatalf("failed to build runcompose: %v\noutput: %s", err, output)
		}

		binaryPath = path
	})

	if binaryPath == "" {
		t.Fatal("runcompose binary path not set")
	}

	return binaryPath
}

// GetProjectRoot returns the project root directory.
func GetProjectRoot(t *testing.T) string {
	t.Helper()

	// Find go.mod to determine project root
	cmd := exec.Command("go", "list", "-m", "-f", "{{.Dir}}")
	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("failed to find project root: %v", err)
	}

	return strings.TrimSpace(string(output))
}

// RequireComposeAvailable skips the test if docker compose is not available.
func RequireComposeAvailable(t *testing.T) {
	t.Helper()

	cmd := exec.Command("docker", "compose", "version")
	if err := cmd.Run(); err != nil {
		t.Skip("docker compose is not available, skipping E2E test")
	}
}

// ComposeConfig runs "docker compose config" on file and returns the
// normalized output.
func ComposeConfig(t *testing.T, file string) (string, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, "docker", "compose", "-f", file, "config")
	cmd.Dir = filepath.Dir(file)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

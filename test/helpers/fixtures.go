package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sanitizeNameRegexp matches characters not allowed in compose project names.
var sanitizeNameRegexp = regexp.MustCompile(`[^a-z0-9_-]`)

// UniqueTestName generates a unique name for a test suitable for compose
// project and volume names.
func UniqueTestName(t *testing.T) string {
	t.Helper()

	name := sanitizeNameRegexp.ReplaceAllString(strings.ToLower(t.Name()), "_")
	// Limit length to leave room for random suffix (8 chars + underscore)
	if len(name) > 40 {
		name = name[:40]
	}

	return name + "_" + randomSuffix(8)
}

// randomSuffix generates a random hex string of the specified length.
func randomSuffix(length int) string {
	bytes := make([]byte, (length+1)/2)
	_, err := rand.Read(bytes)
	if err != nil {
		// Fallback to pid-based if crypto/rand fails
		return fmt.Sprintf("%x", os.Getpid())
	}
	return hex.EncodeToString(bytes)[:length]
}

// WriteCommandFile writes a docker run command to a file in a temp directory
// and returns its path.
func WriteCommandFile(t *testing.T, command string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "run.sh")
	err := os.WriteFile(path, []byte(command), 0644)
	require.NoError(t, err)

	return path
}

// TempComposePath returns a path for a compose file inside a fresh temp directory.
func TempComposePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "docker-compose.yml")
}

// Package util provides shared utilities for runcompose.
package util

import (
	"os"
	"strings"
)

// GetEnv returns an environment variable value with a default fallback.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool returns an environment variable as a boolean.
func GetEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// SplitEnvEntry splits a KEY=VALUE entry. An entry without "=" has an empty
// value and ok set to false.
func SplitEnvEntry(entry string) (key, value string, ok bool) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) != 2 {
		return parts[0], "", false
	}
	return parts[0], parts[1], true
}

package testutil

import (
	"os"
	"testing"
)

// GetEnvOrSkip skips tests that need live credentials or services when the
// variable is unset or empty.
func GetEnvOrSkip(t *testing.T, key string) string {
	t.Helper()
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	t.Skipf("%s is not set", key)
	return ""
}

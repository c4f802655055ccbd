package ui

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Keep tests away from the user's real config and state.
	dir, err := os.MkdirTemp("", "farewell-ui-test")
	if err == nil {
		os.Setenv("XDG_CONFIG_HOME", dir)
		os.Setenv("XDG_STATE_HOME", dir)
	}
	os.Unsetenv("FAREWELL_DEBUG")

	code := m.Run()

	if dir != "" {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

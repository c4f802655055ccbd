package main

import (
	"os"
)

// TestModeEnv marks scripted runs that must not query the terminal.
const TestModeEnv = "FAREWELL_TEST_MODE"

// init runs before lipgloss detects the background colour. Machine-read
// output (schedule JSON, version, help) must not be interleaved with the
// OSC/DSR queries that detection writes, so those invocations set CI=1,
// which termenv treats as "do not query".
func init() {
	if os.Getenv("CI") != "" {
		return
	}
	if !shouldSuppressTTYQueries(os.Args[1:], os.Getenv(TestModeEnv) != "") {
		return
	}
	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}
	for _, arg := range args {
		switch arg {
		case "schedule", "version", "--version", "-v", "--help", "-h", "help":
			return true
		}
	}
	return false
}

package export

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Keep glamour from probing the terminal.
	os.Setenv("GLAMOUR_STYLE", "notty")

	os.Exit(m.Run())
}

// Package debug provides conditional debug logging for farewell.
//
// Debug logging is enabled by setting the FAREWELL_DEBUG environment
// variable. A value of 1 or true logs to debug.log in the farewell state
// directory; any other value is taken as the log file path:
//
//	FAREWELL_DEBUG=1 farewell
//	FAREWELL_DEBUG=/tmp/farewell.log farewell --watch
//
// The TUI owns the terminal, so debug output always goes to a file. When
// disabled (default), all debug functions are no-ops.
//
// Usage:
//
//	import "github.com/vanderheijden86/farewell/pkg/debug"
//
//	func myFunc() {
//	    debug.Log("mounted %s", section)
//	    // ...
//	    debug.LogTiming("myFunc", elapsed)
//	}
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vanderheijden86/farewell/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvVar names the environment variable that turns debug logging on.
const EnvVar = "FAREWELL_DEBUG"

var (
	enabled atomic.Bool
	logger  atomic.Pointer[zap.SugaredLogger]

	// mu serializes output swaps and guards closer.
	mu     sync.Mutex
	closer io.Closer
)

func init() {
	if v := os.Getenv(EnvVar); v != "" {
		if err := Open(PathFor(v)); err != nil {
			fmt.Fprintf(os.Stderr, "farewell: debug log disabled: %v\n", err)
		}
	}
}

// PathFor maps an FAREWELL_DEBUG value to a log file path.
func PathFor(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		dir := config.StateDir()
		if dir == "" {
			dir = os.TempDir()
		}
		return filepath.Join(dir, "debug.log")
	}
	return v
}

// Open starts logging to path, appending to an existing file.
func Open(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating debug log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	setOutputLocked(f)
	closer = f
	return nil
}

// SetOutput routes debug output to w and enables logging. A nil writer
// disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	setOutputLocked(w)
}

func setOutputLocked(w io.Writer) {
	closeLocked()
	if w == nil {
		enabled.Store(false)
		logger.Store(nil)
		return
	}
	logger.Store(newLogger(zapcore.AddSync(w)))
	enabled.Store(true)
}

// Close flushes and closes the debug log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if l := logger.Load(); l != nil {
		_ = l.Sync()
	}
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
}

func newLogger(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), ws, zap.NewAtomicLevelAt(zapcore.DebugLevel))
	return zap.New(core).Sugar().Named("farewell")
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled allows programmatic control of debug logging.
// Enabling without an output opens the default log file.
func SetEnabled(e bool) {
	if e && logger.Load() == nil {
		if err := Open(PathFor("1")); err != nil {
			return
		}
	}
	enabled.Store(e)
}

func active() *zap.SugaredLogger {
	if !enabled.Load() {
		return nil
	}
	return logger.Load()
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if l := active(); l != nil {
		l.Debugf(format, args...)
	}
}

// Logw writes a message with structured key/value pairs.
func Logw(msg string, keysAndValues ...any) {
	if l := active(); l != nil {
		l.Debugw(msg, keysAndValues...)
	}
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if l := active(); l != nil {
		l.Debugw(name, "took", d)
	}
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogEnterExit logs function entry and exit with timing.
// Usage:
//
//	func myFunc() {
//	    defer debug.LogEnterExit("myFunc")()
//	    // ...
//	}
func LogEnterExit(name string) func() {
	l := active()
	if l == nil {
		return func() {}
	}
	l.Debugf("-> %s", name)
	start := time.Now()
	return func() {
		l.Debugf("<- %s (%v)", name, time.Since(start))
	}
}

// Dump logs a value with its type for debugging complex structures.
func Dump(name string, v any) {
	if l := active(); l != nil {
		l.Debugf("%s: %T = %+v", name, v, v)
	}
}

// Error logs err with context when it is non-nil.
func Error(context string, err error) {
	if err == nil {
		return
	}
	if l := active(); l != nil {
		l.Errorw(context, "error", err)
	}
}

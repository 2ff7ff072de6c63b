package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/config"
)

// stderrLogger is used by commands that do not take over the terminal.
func stderrLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// fileLogger writes to ~/.pinball/<name> so logging never draws over the
// alternate screen. Without a data dir the log is dropped.
func fileLogger(name string) (*log.Logger, func()) {
	var w io.Writer = io.Discard
	closer := func() {}

	if dir := config.DataDir(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err == nil {
				w = f
				closer = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pinball",
		Level:           log.DebugLevel,
	})
	return logger, closer
}

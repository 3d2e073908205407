// internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"time"

	CharmLog "github.com/charmbracelet/log"
)

// New returns a timestamped logger whose lines start with prefix.
func New(prefix string) *CharmLog.Logger {
	logger := CharmLog.NewWithOptions(os.Stderr, CharmLog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(CharmLog.DebugLevel)
	}
	return logger
}

// Discard is for tests and for components constructed without a logger.
func Discard() *CharmLog.Logger {
	return CharmLog.New(io.Discard)
}

package ui

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the process-wide leveled logger. It writes to stderr.
var Logger *log.Logger

func init() {
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.WarnLevel,
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// SetupLogging configures the logger based on verbosity. Without verbose only
// warnings and errors are shown; with it, debug output and timestamps.
func SetupLogging(verbose bool) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05",
		Prefix:          "dsdm",
	})
}

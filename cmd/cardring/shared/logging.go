package shared

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// LogOptions selects the level and output format of a logger
type LogOptions struct {
	Level  string // debug, info, warn, error
	Format string // text, json, logfmt
	Debug  bool   // overrides Level
	JSON   bool   // overrides Format
}

// SetupLogger configures charmbracelet/log writing to stderr
func SetupLogger(opts LogOptions) (*log.Logger, error) {
	return NewLogger(os.Stderr, opts)
}

// NewLogger configures charmbracelet/log writing to w
func NewLogger(w io.Writer, opts LogOptions) (*log.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %s", opts.Level)
		}
		level = parsed
	}
	if opts.Debug {
		level = log.DebugLevel
	}

	formatter := log.TextFormatter
	switch opts.Format {
	case "", "text":
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("invalid log format: %s", opts.Format)
	}
	if opts.JSON {
		formatter = log.JSONFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
	}), nil
}

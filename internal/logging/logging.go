// Package logging configures the global zerolog logger for a run.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger. Unknown levels fall back to info.
// format "json" writes one JSON object per line; anything else writes a
// human-readable console format.
func Setup(w io.Writer, level, format, runID string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if w == nil {
		w = os.Stderr
	}
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(w).With().Timestamp()
	if runID != "" {
		ctx = ctx.Str("run_id", runID)
	}
	log.Logger = ctx.Logger()
}

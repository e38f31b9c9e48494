// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// Levels lists the accepted level names.
var Levels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// ParseLevel accepts one of Levels, case-insensitively. An empty string
// yields DefaultLevel.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = DefaultLevel
	}
	for _, l := range Levels {
		if l == s {
			return zerolog.ParseLevel(s)
		}
	}
	return zerolog.NoLevel, fmt.Errorf("invalid log level %q (valid: %s)", s, strings.Join(Levels, ", "))
}

// New builds a logger writing to w. Terminals get the human console format,
// everything else gets one JSON object per line.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := w
	if isTTY(w) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Setup installs a stderr logger at the given level as the global logger.
func Setup(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	log.Logger = New(os.Stderr, lvl)
	return nil
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

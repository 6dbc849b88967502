package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// New creates the engine logger. It always writes to stderr (or w when
// given) because stdout belongs to the GUI protocol. A terminal gets the
// human readable console format, anything else gets JSON lines.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if w == nil {
		w = os.Stderr
		if term.IsTerminal(int(os.Stderr.Fd())) {
			w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

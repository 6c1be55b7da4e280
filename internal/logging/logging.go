package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var output io.Writer = os.Stdout

// New builds the process logger: JSON lines in production, a console
// writer in development. An unknown level falls back to info.
func New(env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	w := output
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

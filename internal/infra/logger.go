// README: zerolog setup shared by the binary and services.
package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

func NewLogger(pretty bool) zerolog.Logger {
	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

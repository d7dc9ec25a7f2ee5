// Package observability wires up structured logging for the aperctl
// tool and any long-running caller. Grounded on
// danmuck-edgectl/internal/observability/logger.go.
package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures a console-writer zerolog.Logger tagged with
// app, and installs it as the package-level default so library code
// that calls log.Logger picks it up.
func InitLogger(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}

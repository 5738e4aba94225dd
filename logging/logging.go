package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger.
// level: trace|debug|info|warn|error (default: info)
// format: json|console (default: json)
func Init(level, format string) {
	InitWithWriter(os.Stdout, level, format)
}

func InitWithWriter(out io.Writer, level, format string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	zerolog.SetGlobalLevel(ParseLevel(level))

	var logger zerolog.Logger
	if strings.EqualFold(format, "console") {
		cw := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = out
			w.TimeFormat = time.RFC3339
			w.NoColor = true
		})
		logger = zerolog.New(cw)
	} else {
		logger = zerolog.New(out)
	}
	log.Logger = logger.With().Timestamp().Str("service", "backup-vault").Logger()
}

// ParseLevel maps a level name to a zerolog level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

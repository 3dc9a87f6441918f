// Package logger provides the global logger for the augmentation
// tooling.
package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/zap"
)

var (
	zapOnce sync.Once
	zapLog  *zap.Logger
)

// Init configures the global zerolog logger with console output and a
// level taken from the ENVIRONMENT variable ("dev" and "test" enable
// trace logging, anything else stays at info).
//
// Example usage:
//
//	logger.Init() <- inside whichever main() function in your entrypoint
func Init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	switch environment {
	case "dev", "test":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		log.Info().Str("environment", environment).Msg("enabling all log levels")
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Sugar returns a sugared logger for structured key-value logging in
// the numeric pipeline.
func Sugar() *zap.SugaredLogger {
	zapOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
		var err error
		if zapLog, err = cfg.Build(); err != nil {
			zapLog = zap.NewNop()
		}
	})
	return zapLog.Sugar()
}

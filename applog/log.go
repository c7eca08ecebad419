// Package applog builds the process-wide zerolog logger from config.
package applog

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"matchbook/config"
)

type Logger = zerolog.Logger

func New(cfg config.Config) Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	var l zerolog.Logger
	if cfg.Logging.Pretty {
		l = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		l = log.Logger
	}
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return l.With().Str("instrument", cfg.Instrument).Logger()
}

package logger

import (
	"io"
	"os"
	"sitterhub/config"
	"sitterhub/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console writer at trace level until the configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// Configure switches to structured JSON output outside development and applies the configured level.
func Configure(cfg *config.Config) {
	log.Logger = zerolog.New(writer(cfg.Server.Env)).With().Timestamp().Str("app", cfg.App.Name).Logger()

	SetLogLevel(cfg)
}

func writer(env string) io.Writer {
	if env == constant.ServerEnvDevelopment || env == "" {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return os.Stdout
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.InfoLevel
		log.Debug().Str("loglevel", level.String()).Msg("No valid log level configured, using default.")
	}

	zerolog.SetGlobalLevel(level)
}

package lifecycle

import "github.com/rs/zerolog"

// Logger is a simple logger interface accepting key-value pair
// parameters.
type Logger interface {
	// Logs an info message.
	Info(msg string, keysAndValues ...interface{})
	// Logs an error.
	Error(err error, msg string, keysAndValues ...interface{})
}

// NewZerologLogger wraps a zerolog.Logger as a Logger.
func NewZerologLogger(zl zerolog.Logger) Logger {
	return zerologLogger{zl: zl}
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (z zerologLogger) Info(msg string, keysAndValues ...interface{}) {
	z.zl.Info().Fields(keysAndValues).Msg(msg)
}

func (z zerologLogger) Error(err error, msg string,
	keysAndValues ...interface{}) {
	z.zl.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

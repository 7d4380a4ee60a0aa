// package log is the module's thin zerolog front. Level defaults to
// warn so library consumers see nothing unless they opt in.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)

var (
	Trace = logger.Trace
	Debug = logger.Debug
	Info  = logger.Info
	Warn  = logger.Warn
	Error = logger.Error
	Err   = logger.Err
)

// SetOutput swaps the log sink, e.g. for a console writer or a test
// capture buffer.
func SetOutput(w io.Writer) {
	set(logger.Output(w))
}

func SetLevelString(level string) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	set(logger.Level(l))
	return nil
}

func set(l zerolog.Logger) {
	logger = l
	Trace, Debug, Info = logger.Trace, logger.Debug, logger.Info
	Warn, Error, Err = logger.Warn, logger.Error, logger.Err
}

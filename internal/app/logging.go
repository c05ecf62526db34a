package app

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions selects where log events go.
type LogOptions struct {
	Path    string // rotated JSON log file; empty disables the file
	Debug   bool
	Pretty  bool // human-readable console output
	Console bool // also write to stderr; off while the TUI owns the terminal
}

// SetupLogging builds the process logger. The returned closer flushes the
// rotated file and must be called on exit.
func SetupLogging(opts LogOptions) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return zerolog.Nop(), closer, err
		}
		file := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxAge:     14,
			MaxBackups: 10,
		}
		writers = append(writers, file)
		closer = file
	}

	if opts.Console {
		var console io.Writer = os.Stderr
		if opts.Pretty {
			console = zerolog.ConsoleWriter{Out: os.Stderr}
		}
		writers = append(writers, console)
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

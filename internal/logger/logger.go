package logger

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type Config struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// New builds the process logger. Unknown levels fall back to info.
func New(cfg Config) *charmlog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level, err := charmlog.ParseLevel(cfg.Level)
	if err != nil {
		level = charmlog.InfoLevel
	}

	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return l
}

// Discard returns a logger that drops everything, for tests.
func Discard() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

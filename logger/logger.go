// Package logger provides the prefixed, colored, leveled logger shared by the
// maze CLI and service.
package logger

import (
	"errors"
	"io"
	"log"

	"github.com/beka-birhanu/amazeing/config"
)

var (
	ErrNilWriter   = errors.New("logger writer is nil")
	ErrEmptyPrefix = errors.New("logger prefix is empty")
)

// Logger writes lines of the form "[PREFIX] [LEVEL] message", with the prefix
// painted in the logger's color and the level in the level's color.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
}

// New creates a logger writing to w.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}

	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write(config.LogInfoColor, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write(config.LogWarningColor, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write(config.LogErrorColor, "ERROR", msg)
}

func (l *Logger) write(levelColor, level, msg string) {
	l.out.Printf("%s[%s]%s %s[%s]%s %s",
		l.color, l.prefix, config.ColorReset,
		levelColor, level, config.LogColorReset,
		msg)
}

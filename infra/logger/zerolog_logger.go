package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls the process-wide log output.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Defaults to info.
	Level string `json:"level"`
	// Format is "json" or "console". When empty, APP_ENV=dev selects console.
	Format string `json:"format"`
	// Output overrides the destination, stdout by default.
	Output io.Writer `json:"-"`
}

// SetDefaults fills empty fields.
func (o *Options) SetDefaults() {
	if o.Level == "" {
		o.Level = "info"
	}
	if o.Format == "" {
		if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
			o.Format = "console"
		} else {
			o.Format = "json"
		}
	}
}

// Validate checks the level and format values.
func (o Options) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(o.Level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if o.Format != "json" && o.Format != "console" {
		return fmt.Errorf("unknown log format %s", o.Format)
	}
	return nil
}

var (
	optsMu sync.RWMutex
	opts   = Options{}
)

// Configure installs the options used by New. Invalid levels fall back to
// info.
func Configure(o Options) {
	o.SetDefaults()
	optsMu.Lock()
	opts = o
	optsMu.Unlock()
}

func current() Options {
	optsMu.RLock()
	o := opts
	optsMu.RUnlock()
	o.SetDefaults()
	return o
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger. All logs include the provided
// component field.
func NewZerologLogger(component string, o Options) Logger {
	o.SetDefaults()
	out := o.Output
	if out == nil {
		out = os.Stdout
	}
	if o.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(o.Level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	z := zerolog.New(out).Level(lvl).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Infow(msg string, fields map[string]any) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

// Package logger configures zerolog and carries request scoped loggers in
// contexts.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures the global logger.
type Options struct {
	// Level is a zerolog level name. Empty means info.
	Level string
	// Pretty writes human readable console lines instead of JSON.
	Pretty  bool
	Service string
	// Out defaults to stderr.
	Out io.Writer
}

// Init replaces the global logger. An unknown level leaves the logger at
// info and is returned as an error.
func Init(opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	var err error
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, perr := zerolog.ParseLevel(opts.Level)
		if perr != nil || parsed == zerolog.NoLevel {
			err = fmt.Errorf("unknown log level %q", opts.Level)
		} else {
			level = parsed
		}
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	ctx := zerolog.New(out).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	log.Logger = ctx.Logger()
	return err
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return log.Logger
}

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

// WithRequestID returns a copy of ctx carrying a logger tagged with the
// request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := FromContext(ctx).With().Str("request_id", requestID).Logger()
	return l.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or the global logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return log.Logger
}

// ForPicking returns a logger tagged with a transfer id, used by the
// scanning session of that transfer.
func ForPicking(pickingID int64) zerolog.Logger {
	return log.Logger.With().Int64("picking_id", pickingID).Logger()
}

// WithOperator returns a copy of ctx whose logger is tagged with the
// authenticated operator.
func WithOperator(ctx context.Context, operatorID string) context.Context {
	l := FromContext(ctx).With().Str("operator_id", operatorID).Logger()
	return l.WithContext(ctx)
}

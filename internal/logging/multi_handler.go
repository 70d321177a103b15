package logging

import (
	"context"
	"errors"
	"log/slog"
)

// Fanout sends every record to each of its sinks. A sink that fails does
// not stop delivery to the others; their errors are joined.
type Fanout struct {
	sinks []slog.Handler
}

// NewFanout ignores nil sinks, so optional handlers can be passed as is.
func NewFanout(sinks ...slog.Handler) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range f.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *Fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, s := range f.sinks {
		if !s.Enabled(ctx, record.Level) {
			continue
		}
		// Sinks may add attrs to the record they get.
		if err := s.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return f
	}
	return f.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	if name == "" {
		return f
	}
	return f.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (f *Fanout) derive(fn func(slog.Handler) slog.Handler) *Fanout {
	sinks := make([]slog.Handler, len(f.sinks))
	for i, s := range f.sinks {
		sinks[i] = fn(s)
	}
	return &Fanout{sinks: sinks}
}

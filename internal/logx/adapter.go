package logx

import "log/slog"

// SlogAdapter bridges Logger onto a standard library *slog.Logger.
type SlogAdapter struct {
	base *slog.Logger
}

// NewSlogAdapter wraps the given slog logger.
func NewSlogAdapter(l *slog.Logger) Logger {
	return &SlogAdapter{base: l}
}

func (s *SlogAdapter) Debug(msg string, fields ...Field) { s.base.Debug(msg, pairs(fields)...) }
func (s *SlogAdapter) Info(msg string, fields ...Field)  { s.base.Info(msg, pairs(fields)...) }
func (s *SlogAdapter) Warn(msg string, fields ...Field)  { s.base.Warn(msg, pairs(fields)...) }
func (s *SlogAdapter) Error(msg string, fields ...Field) { s.base.Error(msg, pairs(fields)...) }

// With attaches fields to every entry logged through the returned Logger.
func (s *SlogAdapter) With(fields ...Field) Logger {
	return &SlogAdapter{base: s.base.With(pairs(fields)...)}
}

// Sync is a no-op; slog handlers write through on every call.
func (s *SlogAdapter) Sync() error { return nil }

// pairs flattens fields into slog's alternating key/value argument form.
func pairs(fields []Field) []any {
	args := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}
	return args
}

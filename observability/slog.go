package observability

import "log/slog"

type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger adapts a slog.Logger to the Logger interface. A nil argument
// uses slog's default logger.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogLogger{l: l}
}

func (s slogLogger) Debug(msg string, fields ...Field) { s.l.Debug(msg, args(fields)...) }
func (s slogLogger) Info(msg string, fields ...Field)  { s.l.Info(msg, args(fields)...) }
func (s slogLogger) Warn(msg string, fields ...Field)  { s.l.Warn(msg, args(fields)...) }
func (s slogLogger) Error(msg string, fields ...Field) { s.l.Error(msg, args(fields)...) }

func (s slogLogger) With(fields ...Field) Logger {
	return slogLogger{l: s.l.With(args(fields)...)}
}

func args(fields []Field) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key(), f.Value())
	}
	return out
}

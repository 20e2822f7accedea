package logger

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnableSentry forwards error and fatal entries from the global logger to
// Sentry. sentry.Init must have been called first.
func EnableSentry() {
	if Log == nil {
		return
	}
	Log = Log.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, newSentryCore(zapcore.ErrorLevel))
	}))
	Sugar = Log.Sugar()
}

// sentryCore reports entries as Sentry events with their fields as extras.
type sentryCore struct {
	zapcore.LevelEnabler
	fields  []zapcore.Field
	capture func(*sentry.Event)
}

func newSentryCore(min zapcore.LevelEnabler) *sentryCore {
	return &sentryCore{
		LevelEnabler: min,
		capture:      func(e *sentry.Event) { sentry.CaptureEvent(e) },
	}
}

func (c *sentryCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &sentryCore{LevelEnabler: c.LevelEnabler, fields: merged, capture: c.capture}
}

func (c *sentryCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *sentryCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	event := sentry.NewEvent()
	event.Level = sentry.LevelError
	if ent.Level >= zapcore.DPanicLevel {
		event.Level = sentry.LevelFatal
	}
	event.Message = ent.Message
	event.Logger = ent.LoggerName
	event.Timestamp = ent.Time
	event.Extra = enc.Fields
	c.capture(event)
	return nil
}

func (c *sentryCore) Sync() error {
	sentry.Flush(2 * time.Second)
	return nil
}

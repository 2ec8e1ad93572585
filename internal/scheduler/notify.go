package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Alert describes a failed or retried job run.
type Alert struct {
	Job        string
	Recipients []string
	Attempt    int
	Final      bool // true when no attempts remain
	Err        error
	At         time.Time
}

// Notifier delivers job alerts.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// NotifierFunc is a function adapter for Notifier.
type NotifierFunc func(context.Context, Alert) error

func (f NotifierFunc) Notify(ctx context.Context, a Alert) error {
	return f(ctx, a)
}

// LogNotifier writes alerts to the log. Delivery to the recipients is left
// to whatever ships the logs.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, a Alert) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := slog.LevelWarn
	msg := "job attempt failed, retrying"
	if a.Final {
		level = slog.LevelError
		msg = "job failed"
	}

	logger.Log(ctx, level, msg,
		"job", a.Job,
		"attempt", a.Attempt,
		"recipients", a.Recipients,
		"error", a.Err,
	)
	return nil
}

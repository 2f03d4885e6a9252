package render

import "github.com/sirupsen/logrus"

// Option provides a way to set functional parameters to the engine.
type Option func(e *Engine)

// WithProgress sets the reporter observed on every loop iteration.
// If this option is not provided, the run cannot be cancelled.
func WithProgress(p Progress) Option {
	return func(e *Engine) {
		if p != nil {
			e.progress = p
		}
	}
}

// WithLogger sets the logger. If this option is not provided, the
// default logger is used.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

package transform

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(log.Default())
}

// SetLogger replaces the logger used for deprecation notices.
// A nil logger restores log.Default().
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	logger.Store(l)
}

func getLogger() *log.Logger {
	return logger.Load()
}

// Option configures a transform at construction.
type Option func(*options)

type options struct {
	eps    float64
	hasEps bool
}

// WithEps sets the legacy stabilisation constant of StickBreaking.
//
// Deprecated: the value is ignored. Passing it only logs a warning.
func WithEps(eps float64) Option {
	return func(o *options) {
		o.eps = eps
		o.hasEps = true
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

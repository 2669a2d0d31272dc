package resp

import "github.com/xy-planning-network/enumerate/logger"

// A ResponderOptFn configures a *Responder.
type ResponderOptFn func(*Responder)

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logs are discarded.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		if log != nil {
			d.logger = log
		}
	}
}

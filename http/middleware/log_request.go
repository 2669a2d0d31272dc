package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/enumerate/logger"
)

// LogRequest logs the request's method, requested URL, response status and size
// using the enclosed implementation of logger.Logger.
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(nil, h, func(_ io.Writer, p handlers.LogFormatterParams) {
			msg := fmt.Sprintf("%s %s %d", p.Request.Method, p.URL.RequestURI(), p.StatusCode)
			ctx := &logger.LogContext{
				Data: map[string]any{
					"duration": time.Since(p.TimeStamp).String(),
					"size":     p.Size,
					"status":   p.StatusCode,
				},
				Request: p.Request,
			}

			switch {
			case p.StatusCode >= http.StatusInternalServerError:
				ls.Error(msg, ctx)
			case p.StatusCode >= http.StatusBadRequest:
				ls.Warn(msg, ctx)
			default:
				ls.Info(msg, ctx)
			}
		})
	}
}

// Recover turns panics in the handler into 500 responses,
// logging the panic through ls.
func Recover(ls logger.Logger) Adapter {
	if ls == nil {
		ls = logger.Discard()
	}

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{ls}),
		handlers.PrintRecoveryStack(false),
	)
}

type recoveryLogger struct {
	l logger.Logger
}

func (rl recoveryLogger) Println(v ...any) {
	rl.l.Error("recovered from panic", &logger.LogContext{Error: errors.New(fmt.Sprint(v...))})
}

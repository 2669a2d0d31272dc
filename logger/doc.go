/*
Package logger provides leveled logging for enumerate and the programs built on it
by defining the required behavior in [Logger] and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn] and [*ColorLogger.Error] produce messages.

# ColorLogger

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/04/28 15:55:21 [DEBUG] billing/status.go:43 'registered enumeration' log_context: {"data":{"name":"invoice_status"}}

The log context is a JSON-encoded [*LogContext].
It allows for including additional data inessential to the message proper.

# SkipLogger

Packages logging on behalf of their caller, like the enumerate.Registry,
need the file and line number in a log to point at that caller.
[SkipLogger] sets the number of frames to skip back in order to reach it.
*/
package logger

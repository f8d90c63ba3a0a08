// Package logging wraps zerolog with the field set and timestamp shape
// this proxy's log lines use throughout: client id, object id, interface,
// and opcode. New stamps each line with integer Unix microseconds in the
// "t" field; Clock separately formats a "sec.subsec-micros" string.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w (os.Stderr in production,
// a buffer in tests) at the given level, with a non-empty prefix attached
// to every line as a "prefix" field.
func New(w io.Writer, level string, prefix string) zerolog.Logger {
	zerolog.TimestampFieldName = "t"
	zerolog.TimestampFunc = func() time.Time { return time.Now() }
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMicro

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	if prefix != "" {
		logger = logger.With().Str("prefix", prefix).Logger()
	}
	return logger
}

// Default builds a logger writing to stderr, for callers (tests, small
// tools) that don't need the full CLI wiring.
func Default(level string) zerolog.Logger {
	return New(os.Stderr, level, "")
}

// Object returns a sub-logger pre-populated with the fields every
// object-level log line carries: client session id, the object's client
// and server ids, its interface name, and the opcode being handled.
func Object(log zerolog.Logger, clientID uint64, clientObjID, serverObjID uint32, iface string, opcode uint16) zerolog.Logger {
	return log.With().
		Uint64("client", clientID).
		Uint32("obj_client_id", clientObjID).
		Uint32("obj_server_id", serverObjID).
		Str("interface", iface).
		Uint16("opcode", opcode).
		Logger()
}

// Clock formats t as "sec.subsec-micros", a compact relative-looking
// timestamp for log lines that want one without hand-rolling a
// monotonic clock.
func Clock(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/1000)
}

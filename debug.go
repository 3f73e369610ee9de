package pointer

import (
	"context"
	"fmt"
	"log/slog"
)

// debugf logs a suppressed or unusual event at debug level. Only active in
// debug mode with a logger that accepts debug records.
func (c *Context) debugf(msg string, args ...any) {
	if !c.debugEnabled() {
		return
	}
	c.log.Debug(msg, args...)
}

// warnf logs a recoverable backend failure.
func (c *Context) warnf(msg string, args ...any) {
	c.log.Warn(msg, args...)
}

// checkMouseID rejects zero and the reserved sentinels as device IDs. In
// debug mode it panics so the caller's bug surfaces at the call site.
func (c *Context) checkMouseID(id MouseID, op string) error {
	if id != GlobalMouseID && !id.isSynthetic() {
		return nil
	}
	if c.debug {
		panic(fmt.Sprintf("pointer debug: %s with reserved mouse ID %#x", op, uint32(id)))
	}
	return c.setError(fmt.Errorf("%w: %s: reserved mouse ID %#x", ErrInvalidMouseID, op, uint32(id)))
}

// debugEnabled reports whether debug-level records would be written.
func (c *Context) debugEnabled() bool {
	return c.debug && c.log.Enabled(context.Background(), slog.LevelDebug)
}

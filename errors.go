package pointer

import "errors"

// Sentinel errors returned by Context operations. Wrapped errors carry extra
// detail; test with errors.Is.
var (
	ErrNotInitialized = errors.New("pointer: context not initialized, use NewContext")
	ErrInvalidParam   = errors.New("pointer: invalid parameter")
	ErrInvalidMouseID = errors.New("pointer: invalid mouse ID")
	ErrInvalidPenID   = errors.New("pointer: invalid pen ID")
	ErrStalePenID     = errors.New("pointer: pen was removed")
	ErrUnsupported    = errors.New("pointer: not supported by backend")
	ErrNoFocus        = errors.New("pointer: no window has keyboard focus")
	ErrNoRelativeMode = errors.New("pointer: no relative mode implementation available")
	ErrCursorNotFound = errors.New("pointer: cursor not associated with this context")
	ErrUnknownHint    = errors.New("pointer: unknown hint")
)

// setError records err as the context's last error and returns it, so callers
// can write "return c.setError(err)".
func (c *Context) setError(err error) error {
	if err != nil {
		c.errMu.Lock()
		c.lastErr = err
		c.errMu.Unlock()
	}
	return err
}

// LastError returns the most recent error recorded by an operation. It is
// the only failure report for operations that return a bool, such as the
// Send* family. It is kept until the next failure or ClearError.
func (c *Context) LastError() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.lastErr
}

// ClearError resets LastError to nil.
func (c *Context) ClearError() {
	c.errMu.Lock()
	c.lastErr = nil
	c.errMu.Unlock()
}

// initialized reports ErrNotInitialized for a zero Context.
func (c *Context) initialized() error {
	if c.backend == nil || c.sink == nil {
		return ErrNotInitialized
	}
	return nil
}

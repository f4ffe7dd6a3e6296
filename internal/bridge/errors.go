package bridge

import "errors"

// ErrConnectionExists - returned by Table.Open when id already names a live
// entry. A live id is never silently replaced.
var ErrConnectionExists = errors.New("bridge: connection id already in use")

// ErrUnknownConnection - returned by Table.Get/Remove when id has no live
// entry, either because it was never opened or because it was already
// closed.
var ErrUnknownConnection = errors.New("bridge: unknown connection id")

// DialError wraps a destination dial failure. Its message is what the server
// sends back verbatim as the 406 response body.
type DialError struct {
	Err error
}

func (e *DialError) Error() string { return e.Err.Error() }
func (e *DialError) Unwrap() error { return e.Err }

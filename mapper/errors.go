package mapper

import (
	"errors"
	"fmt"
)

var (
	// ErrNoClient is returned by Bind when the runtime carries no search
	// client to bind against.
	ErrNoClient = errors.New("meilisearch client is not configured")

	// ErrNotBound is returned by every operation invoked on a mapper that
	// never went through Bind, or whose runtime has no registration for
	// its concrete type.
	ErrNotBound = errors.New("mapper is not bound to an index")
)

// RemoteError wraps a failure reported by the search engine, keeping the
// operation name and the index uid so callers can log one line and still
// errors.Is/As into the transport cause.
type RemoteError struct {
	Op  string
	UID string
	Err error
}

func (e *RemoteError) Error() string {
	if e.UID == "" {
		return fmt.Sprintf("meilisearch: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("meilisearch: %s on index %q: %v", e.Op, e.UID, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func remoteErr(op, uid string, err error) error {
	return &RemoteError{Op: op, UID: uid, Err: err}
}

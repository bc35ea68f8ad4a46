package dirtree

import (
	"errors"
	"fmt"
)

// Domain errors are the only values an operation returns besides a nil
// error. Callers should match them with errors.Is, since operations wrap
// them with path context via github.com/pkg/errors.
var (
	// ErrInvalidArgument is returned for a malformed path, or for a move
	// whose target lies inside its source's subtree.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when an operation's parent or target
	// directory does not exist.
	ErrNotFound = errors.New("no such entry")
	// ErrAlreadyExists is returned when create/move would collide with
	// an existing name, or when create/move targets the root.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotEmpty is returned by Remove on a directory with children.
	ErrNotEmpty = errors.New("not empty")
	// ErrBusy is returned by Remove or Move when asked to operate on
	// the root.
	ErrBusy = errors.New("busy")
)

// fatal panics with a diagnostic identifying the primitive and call site.
// It must only be used to guard invariants that the locking protocol
// itself guarantees; a correct caller can never trigger it. Go's sync
// primitives can't fail the way pthread_mutex_lock can, so this plays the
// role the original C implementation gave PTHREAD_CHECK: any invariant
// violation here is a bug in this package, never a caller mistake.
func fatal(primitive string, format string, args ...interface{}) {
	panic(fmt.Sprintf("dirtree: %s: %s", primitive, fmt.Sprintf(format, args...)))
}

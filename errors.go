package chisel

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Sentinel causes embedded in *IOError. Callers match with errors.Is and
// never need to branch on which adapter produced the failure.
var (
	ErrNotFound      = errors.New("no such file or directory")
	ErrIsDirectory   = errors.New("is a directory")
	ErrNotADirectory = errors.New("not a directory")
	ErrPermission    = errors.New("permission denied")
)

// IOError wraps any failure to resolve, read, write, or manipulate a path.
// Both adapters normalize into this single kind, carrying the offending path,
// a sentinel kind, and (for the real-disk adapter) the original OS error.
type IOError struct {
	Path  string
	Err   error // sentinel kind, or the raw cause when unclassified
	Cause error // original OS error, if any
}

func (e *IOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Err, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Path)
}

func (e *IOError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// NewIOError wraps cause as an *IOError for path. A nil cause returns nil.
func NewIOError(path string, cause error) error {
	if cause == nil {
		return nil
	}
	return &IOError{Path: path, Err: cause}
}

// WrapOSError normalizes an OS-level failure into an *IOError for path,
// classifying the cause onto the shared sentinels and keeping the original
// error embedded. A nil err returns nil.
func WrapOSError(path string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &IOError{Path: path, Err: ErrNotFound, Cause: err}
	case errors.Is(err, fs.ErrPermission):
		return &IOError{Path: path, Err: ErrPermission, Cause: err}
	case errors.Is(err, syscall.EISDIR):
		return &IOError{Path: path, Err: ErrIsDirectory, Cause: err}
	case errors.Is(err, syscall.ENOTDIR):
		return &IOError{Path: path, Err: ErrNotADirectory, Cause: err}
	}
	return &IOError{Path: path, Err: err}
}

// MissingTargetError is raised only by the mutation engine when a required
// line or block pattern cannot be located in an otherwise-readable file. It
// signals "operation impossible due to content shape", not a storage failure;
// the target file is guaranteed unmodified.
type MissingTargetError struct {
	Path   string
	Target string
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("target %q not found in %s", e.Target, e.Path)
}

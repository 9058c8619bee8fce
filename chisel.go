// Package chisel defines the filesystem contract shared by the real-disk and
// in-memory adapters, plus the error kinds every adapter normalizes into.
//
// Higher layers (the mutation engine, manifest application, the CLI) depend
// only on [Adapter]; which backend they get is a construction-time choice.
package chisel

import "io/fs"

// Adapter is the capability set consumed by scaffolding tooling. Both
// implementations (osfs, memfs) satisfy it with identical semantics: any
// failure to resolve, read, write, or manipulate a path surfaces as an
// *IOError regardless of backend.
//
// A single Adapter instance is not safe for concurrent callers.
type Adapter interface {
	// Read returns the full content of the file at path.
	Read(path string) ([]byte, error)
	// ReadLines returns the file's content split into lines. A trailing
	// line terminator does not produce a trailing empty line.
	ReadLines(path string) ([]string, error)
	// Write creates or overwrites the file at path, creating intermediate
	// directories as needed. Writing always stamps the default file mode.
	Write(path string, data []byte) error
	// Touch creates an empty file at path if absent, creating intermediate
	// directories; existing content is left untouched.
	Touch(path string) error
	// Mkdir creates the directory at path and every missing ancestor.
	Mkdir(path string) error
	// MkdirP treats the last segment of path as a future file name and
	// creates only its parent chain.
	MkdirP(path string) error
	// Rm removes the file at path. It never removes directories.
	Rm(path string) error
	// RmRF removes the entry at path, recursively for directories.
	RmRF(path string) error
	// Cp copies the file at src to dst, creating dst's parents as needed.
	Cp(src, dst string) error
	// Chdir resolves path to a directory, makes it the working directory
	// for the duration of fn, and restores the previous working directory
	// on every exit path, including panics.
	Chdir(path string, fn func() error) error
	// Pwd returns the current working directory.
	Pwd() string

	// Join flattens tokens, splitting each on either separator convention,
	// and rejoins with the host separator.
	Join(tokens ...string) string
	// ExpandPath resolves path against base into an absolute path.
	ExpandPath(path, base string) string

	// Exists reports whether path resolves. Never returns an error.
	Exists(path string) bool
	// IsDir reports whether path resolves to a directory.
	IsDir(path string) bool
	// IsExecutable reports whether path resolves to an entry with the
	// owner-execute bit set.
	IsExecutable(path string) bool

	// Chmod sets the permission bits of the entry at path.
	Chmod(path string, mode fs.FileMode) error
	// Mode returns the permission bits of the entry at path.
	Mode(path string) (fs.FileMode, error)
}

// Default modes for freshly created entries.
const (
	DefaultFileMode fs.FileMode = 0o644
	DefaultDirMode  fs.FileMode = 0o755
)

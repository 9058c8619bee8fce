// Package osfs implements the chisel filesystem contract by direct delegation
// to OS file and directory primitives. Every OS-level failure is caught and
// normalized into the same *chisel.IOError kind the memory adapter produces,
// carrying the original error as an embedded cause, so callers treat both
// adapters identically.
package osfs

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/chiselfs/chisel"
	"github.com/chiselfs/chisel/fspath"
	"github.com/chiselfs/chisel/internal/util"
)

// FS is the real-disk adapter. A single FS is not safe for concurrent
// callers: Chdir rebinds the process working directory.
type FS struct {
	term string
	log  zerolog.Logger
}

var _ chisel.Adapter = (*FS)(nil)

// New creates a real-disk adapter with the default line terminator.
func New() *FS {
	return &FS{
		term: "\n",
		log:  util.GetLogger("osfs"),
	}
}

// SetLineTerminator reconfigures the token ReadLines splits on.
func (f *FS) SetLineTerminator(term string) { f.term = term }

// Read returns the full content of the file at path.
func (f *FS) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chisel.WrapOSError(path, err)
	}
	return data, nil
}

// ReadLines returns the file's content split on the adapter's line
// terminator.
func (f *FS) ReadLines(path string) ([]string, error) {
	data, err := f.Read(path)
	if err != nil {
		return nil, err
	}
	return chisel.SplitLines(data, f.term), nil
}

// Write creates or overwrites the file at path, creating intermediate
// directories and stamping the default file mode.
func (f *FS) Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, chisel.DefaultDirMode); err != nil {
			return chisel.WrapOSError(path, err)
		}
	}
	if err := os.WriteFile(path, data, chisel.DefaultFileMode); err != nil {
		return chisel.WrapOSError(path, err)
	}
	// WriteFile leaves an existing file's mode alone; the contract says
	// writing always resets to the default file mode.
	if err := os.Chmod(path, chisel.DefaultFileMode); err != nil {
		return chisel.WrapOSError(path, err)
	}
	f.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Wrote file")
	return nil
}

// Touch creates an empty file at path if absent; existing content is left
// untouched.
func (f *FS) Touch(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return chisel.WrapOSError(path, chisel.ErrIsDirectory)
	case err == nil:
		return nil
	case os.IsNotExist(err):
		return f.Write(path, []byte{})
	default:
		return chisel.WrapOSError(path, err)
	}
}

// Mkdir creates the directory at path and every missing ancestor.
func (f *FS) Mkdir(path string) error {
	if err := os.MkdirAll(path, chisel.DefaultDirMode); err != nil {
		return chisel.WrapOSError(path, err)
	}
	return nil
}

// MkdirP creates only the parent chain of path, treating the leaf segment as
// a future file name. A single-segment path has no ancestors to create.
func (f *FS) MkdirP(path string) error {
	dir := fspath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return f.Mkdir(dir)
}

// Rm removes the file at path. It never removes directories, regardless of
// emptiness.
func (f *FS) Rm(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return chisel.WrapOSError(path, err)
	}
	if info.IsDir() {
		return chisel.WrapOSError(path, chisel.ErrPermission)
	}
	if err := os.Remove(path); err != nil {
		return chisel.WrapOSError(path, err)
	}
	return nil
}

// RmRF removes the entry at path, recursively for directories.
func (f *FS) RmRF(path string) error {
	if _, err := os.Stat(path); err != nil {
		return chisel.WrapOSError(path, err)
	}
	if err := os.RemoveAll(path); err != nil {
		return chisel.WrapOSError(path, err)
	}
	return nil
}

// Cp reads src and writes its content to dst.
func (f *FS) Cp(src, dst string) error {
	data, err := f.Read(src)
	if err != nil {
		return err
	}
	return f.Write(dst, data)
}

// Chdir changes the process working directory to path for the duration of
// fn, restoring the previous directory on every exit path.
func (f *FS) Chdir(path string, fn func() error) error {
	prev, err := os.Getwd()
	if err != nil {
		return chisel.WrapOSError(path, err)
	}
	if err := os.Chdir(path); err != nil {
		return chisel.WrapOSError(path, err)
	}
	defer func() {
		if err := os.Chdir(prev); err != nil {
			f.log.Error().Err(err).Str("path", prev).Msg("Failed to restore working directory")
		}
	}()
	return fn()
}

// Pwd returns the process working directory, or "" if it cannot be
// determined.
func (f *FS) Pwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Join delegates to the shared path normalizer.
func (f *FS) Join(tokens ...string) string { return fspath.Join(tokens...) }

// ExpandPath resolves path against base (or the working directory when base
// is empty) into an absolute path.
func (f *FS) ExpandPath(path, base string) string {
	if fspath.IsAbs(path) {
		return fspath.Join(path)
	}
	if base == "" {
		base = f.Pwd()
	}
	return fspath.Join(base, path)
}

// Exists reports whether path resolves. Never returns an error.
func (f *FS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path resolves to a directory.
func (f *FS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsExecutable reports whether path resolves to an entry with the
// owner-execute bit set.
func (f *FS) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode()&0o100 != 0
}

// Chmod defers to the OS call of the same name.
func (f *FS) Chmod(path string, mode fs.FileMode) error {
	if err := os.Chmod(path, mode&fs.ModePerm); err != nil {
		return chisel.WrapOSError(path, err)
	}
	return nil
}

// Mode returns the permission bits of the entry at path.
func (f *FS) Mode(path string) (fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, chisel.WrapOSError(path, err)
	}
	return info.Mode() & fs.ModePerm, nil
}

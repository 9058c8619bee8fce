// Package memfs implements the chisel filesystem contract on an in-memory
// node tree. It mirrors the on-disk adapter's semantics exactly, including
// POSIX-like error behavior, so higher layers never branch on backend.
package memfs

import (
	"io/fs"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chiselfs/chisel"
	"github.com/chiselfs/chisel/fspath"
	"github.com/chiselfs/chisel/internal/util"
)

// DefaultLineTerminator is the token ReadLines splits on unless reconfigured.
const DefaultLineTerminator = "\n"

// Tree owns a rooted node hierarchy plus a "current" node reference used to
// resolve relative lookups. A single Tree is not safe for concurrent callers.
type Tree struct {
	root    *Node
	cur     *Node
	curPath []string // segments from root to cur, for Pwd
	term    string
	log     zerolog.Logger
}

var _ chisel.Adapter = (*Tree)(nil)

// New creates an empty virtual tree rooted at "/".
func New() *Tree {
	root := NewDirNode("")
	return &Tree{
		root: root,
		cur:  root,
		term: DefaultLineTerminator,
		log:  util.GetLogger("memfs"),
	}
}

// SetLineTerminator reconfigures the token ReadLines splits on.
func (t *Tree) SetLineTerminator(term string) { t.term = term }

// start returns the node resolution begins from for path.
func (t *Tree) start(path string) *Node {
	if fspath.IsAbs(path) {
		return t.root
	}
	return t.cur
}

// resolve walks path segment by segment from the tree's current node (the
// root for absolute paths), stopping as soon as any intermediate lookup
// misses. This is the uniform resolution for every operation.
func (t *Tree) resolve(path string) (*Node, bool) {
	cur := t.start(path)
	for _, seg := range fspath.Split(path) {
		child, ok := cur.Child(seg)
		if !ok {
			return nil, false
		}
		cur = child
	}
	return cur, true
}

// ensureDir walks path from the resolution start, creating any missing
// directory nodes along the way, and returns the leaf. An existing file node
// anywhere on the walk fails with ErrNotADirectory, matching what the OS
// reports for a file intermediate.
func (t *Tree) ensureDir(path string) (*Node, error) {
	cur := t.start(path)
	newCnt := 0
	for _, seg := range fspath.Split(path) {
		if child, ok := cur.Child(seg); ok {
			if child.IsFile() {
				return nil, chisel.NewIOError(path, chisel.ErrNotADirectory)
			}
			cur = child
			continue
		}
		node := NewDirNode(seg)
		cur.AddChild(node)
		cur = node
		newCnt++
	}
	if newCnt > 0 {
		t.log.Debug().Str("path", path).Int("created", newCnt).Msg("Created missing directories")
	}
	return cur, nil
}

// Read returns the full content of the file at path.
func (t *Tree) Read(path string) ([]byte, error) {
	node, ok := t.resolve(path)
	if !ok {
		return nil, chisel.NewIOError(path, chisel.ErrNotFound)
	}
	if node.IsDir() {
		return nil, chisel.NewIOError(path, chisel.ErrIsDirectory)
	}
	out := make([]byte, len(node.Content()))
	copy(out, node.Content())
	return out, nil
}

// ReadLines returns the file's content split on the tree's line terminator.
func (t *Tree) ReadLines(path string) ([]string, error) {
	data, err := t.Read(path)
	if err != nil {
		return nil, err
	}
	return chisel.SplitLines(data, t.term), nil
}

// Write creates or overwrites the file at path, creating intermediate
// directories and resetting the leaf's mode to the default file mode.
func (t *Tree) Write(path string, data []byte) error {
	parent, err := t.ensureDir(fspath.Dir(path))
	if err != nil {
		return err
	}
	leaf := fspath.Base(path)
	if leaf == "" {
		return chisel.NewIOError(path, chisel.ErrIsDirectory)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	if node, ok := parent.Child(leaf); ok {
		node.SetContent(buf)
	} else {
		parent.AddChild(NewFileNode(leaf, buf))
	}
	t.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Wrote file node")
	return nil
}

// Touch creates an empty file at path if absent; existing file content is
// left untouched.
func (t *Tree) Touch(path string) error {
	if node, ok := t.resolve(path); ok {
		if node.IsDir() {
			return chisel.NewIOError(path, chisel.ErrIsDirectory)
		}
		return nil
	}
	return t.Write(path, []byte{})
}

// Mkdir creates every directory along path, including the leaf.
func (t *Tree) Mkdir(path string) error {
	_, err := t.ensureDir(path)
	return err
}

// MkdirP treats the leaf segment as a future file name and creates only its
// parent chain.
func (t *Tree) MkdirP(path string) error {
	return t.Mkdir(fspath.Dir(path))
}

// Rm removes exactly the leaf entry at path. It never removes directories.
func (t *Tree) Rm(path string) error {
	node, ok := t.resolve(path)
	if !ok {
		return chisel.NewIOError(path, chisel.ErrNotFound)
	}
	if node.IsDir() {
		return chisel.NewIOError(path, chisel.ErrPermission)
	}
	return t.unlink(path)
}

// RmRF removes the entry at path whether it is a file or a directory;
// detaching a directory node drops its entire owned subtree.
func (t *Tree) RmRF(path string) error {
	if _, ok := t.resolve(path); !ok {
		return chisel.NewIOError(path, chisel.ErrNotFound)
	}
	return t.unlink(path)
}

func (t *Tree) unlink(path string) error {
	parent, ok := t.resolve(fspath.Dir(path))
	if !ok {
		return chisel.NewIOError(path, chisel.ErrNotFound)
	}
	if !parent.RemoveChild(fspath.Base(path)) {
		return chisel.NewIOError(path, chisel.ErrNotFound)
	}
	t.log.Debug().Str("path", path).Msg("Unlinked node")
	return nil
}

// Cp reads src and writes its content to dst, inheriting Write's
// directory-creation and error semantics.
func (t *Tree) Cp(src, dst string) error {
	data, err := t.Read(src)
	if err != nil {
		return err
	}
	return t.Write(dst, data)
}

// Chdir temporarily rebinds the tree's current reference to the directory at
// path for the duration of fn. The previous reference is restored on every
// exit path, including panics, so nested Chdir calls compose correctly.
func (t *Tree) Chdir(path string, fn func() error) error {
	node, ok := t.resolve(path)
	if !ok {
		return chisel.NewIOError(path, chisel.ErrNotFound)
	}
	if !node.IsDir() {
		return chisel.NewIOError(path, chisel.ErrNotADirectory)
	}

	prev, prevPath := t.cur, t.curPath
	defer func() {
		t.cur, t.curPath = prev, prevPath
	}()

	segs := fspath.Split(path)
	if fspath.IsAbs(path) {
		t.curPath = segs
	} else {
		t.curPath = append(append([]string{}, t.curPath...), segs...)
	}
	t.cur = node
	return fn()
}

// Pwd returns the absolute path of the tree's current directory.
func (t *Tree) Pwd() string {
	return fspath.Separator + strings.Join(t.curPath, fspath.Separator)
}

// Join delegates to the shared path normalizer.
func (t *Tree) Join(tokens ...string) string { return fspath.Join(tokens...) }

// ExpandPath resolves path against base (or the current directory when base
// is empty) into an absolute path.
func (t *Tree) ExpandPath(path, base string) string {
	if fspath.IsAbs(path) {
		return fspath.Join(path)
	}
	if base == "" {
		base = t.Pwd()
	}
	return fspath.Join(base, path)
}

// Exists reports whether path resolves. Non-existent paths answer false,
// never an error.
func (t *Tree) Exists(path string) bool {
	_, ok := t.resolve(path)
	return ok
}

// IsDir reports whether path resolves to a directory.
func (t *Tree) IsDir(path string) bool {
	node, ok := t.resolve(path)
	return ok && node.IsDir()
}

// IsExecutable reports whether path resolves to an entry with the
// owner-execute bit set.
func (t *Tree) IsExecutable(path string) bool {
	node, ok := t.resolve(path)
	return ok && node.Mode()&0o100 != 0
}

// Chmod sets the permission bits of the entry at path.
func (t *Tree) Chmod(path string, mode fs.FileMode) error {
	node, ok := t.resolve(path)
	if !ok {
		return chisel.NewIOError(path, chisel.ErrNotFound)
	}
	node.SetMode(mode)
	return nil
}

// Mode returns the permission bits of the entry at path.
func (t *Tree) Mode(path string) (fs.FileMode, error) {
	node, ok := t.resolve(path)
	if !ok {
		return 0, chisel.NewIOError(path, chisel.ErrNotFound)
	}
	return node.Mode(), nil
}

package memfs

import (
	"io/fs"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/chiselfs/chisel"
)

// Node is one entry in the virtual tree: a directory or a file. Presence of
// content marks a file; a nil content buffer marks a directory. Children are
// owned exclusively by their parent; nodes hold no back-reference to it, so
// detaching a node drops its entire subtree.
type Node struct {
	segment  string
	children *xsync.Map[string, *Node] // child nodes by segment
	content  []byte                    // nil for directories
	mode     fs.FileMode
}

// NewDirNode creates an empty directory node with the default directory mode.
func NewDirNode(segment string) *Node {
	return &Node{
		segment:  segment,
		children: xsync.NewMap[string, *Node](),
		mode:     chisel.DefaultDirMode,
	}
}

// NewFileNode creates a file node holding content, with the default file mode.
func NewFileNode(segment string, content []byte) *Node {
	return &Node{
		segment:  segment,
		children: xsync.NewMap[string, *Node](),
		content:  content,
		mode:     chisel.DefaultFileMode,
	}
}

// Segment returns the node's own path component.
func (n *Node) Segment() string { return n.segment }

// IsFile reports whether the node holds file content.
func (n *Node) IsFile() bool { return n.content != nil }

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.content == nil }

// Content returns the node's content buffer; nil for directories.
func (n *Node) Content() []byte { return n.content }

// SetContent stamps content onto the node, marking it a file and resetting
// its mode to the default file mode. Writing always implies "this is now a
// file", demoting any directory-default mode on purpose.
func (n *Node) SetContent(content []byte) {
	n.content = content
	n.mode = chisel.DefaultFileMode
}

// Mode returns the node's permission bits.
func (n *Node) Mode() fs.FileMode { return n.mode }

// SetMode replaces the node's permission bits.
func (n *Node) SetMode(mode fs.FileMode) { n.mode = mode & fs.ModePerm }

// Child returns the child node for segment, if present.
func (n *Node) Child(segment string) (*Node, bool) {
	return n.children.Load(segment)
}

// AddChild links child into the node's children map, replacing any existing
// entry for the same segment.
func (n *Node) AddChild(child *Node) {
	n.children.Store(child.segment, child)
}

// RemoveChild detaches the child for segment, dropping its subtree. Reports
// whether an entry was removed.
func (n *Node) RemoveChild(segment string) bool {
	_, existed := n.children.LoadAndDelete(segment)
	return existed
}

package mutate

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiselfs/chisel"
	"github.com/chiselfs/chisel/memfs"
	"github.com/chiselfs/chisel/scan"
)

// newTestEngine returns an engine over a fresh memory tree seeded with the
// given file content.
func newTestEngine(t *testing.T, path, content string) (*Engine, *memfs.Tree) {
	t.Helper()
	tree := memfs.New()
	require.NoError(t, tree.Write(path, []byte(content)))
	return New(tree, nil), tree
}

func readString(t *testing.T, tree *memfs.Tree, path string) string {
	t.Helper()
	data, err := tree.Read(path)
	require.NoError(t, err)
	return string(data)
}

func TestEngine_Unshift(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "b\nc\n")

	require.NoError(t, engine.Unshift("f.rb", "a"))

	assert.Equal(t, "a\nb\nc\n", readString(t, tree, "f.rb"))
}

func TestEngine_Unshift_MultiLine(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "c\n")

	require.NoError(t, engine.Unshift("f.rb", "a\nb"))

	assert.Equal(t, "a\nb\nc\n", readString(t, tree, "f.rb"))
}

func TestEngine_Append(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "a\nb\n")

	require.NoError(t, engine.Append("f.rb", "c"))

	assert.Equal(t, "a\nb\nc\n", readString(t, tree, "f.rb"))
}

func TestEngine_Append_TrailingTerminatorIdempotent(t *testing.T) {
	// Appending text that itself starts with a separator to content already
	// ending in one does not produce a blank line between them.
	engine, tree := newTestEngine(t, "f.rb", "foo\n")

	require.NoError(t, engine.Append("f.rb", "\nbar"))

	assert.Equal(t, "foo\nbar\n", readString(t, tree, "f.rb"))
}

func TestEngine_Append_NoTrailingTerminator(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "foo")

	require.NoError(t, engine.Append("f.rb", "bar"))

	assert.Equal(t, "foo\nbar", readString(t, tree, "f.rb"))
}

func TestEngine_ReplaceFirstAndLastLine(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "gem 'a'\nx\ngem 'a'\n")

	require.NoError(t, engine.ReplaceFirstLine("f.rb", scan.Text("gem"), "gem 'b'"))
	assert.Equal(t, "gem 'b'\nx\ngem 'a'\n", readString(t, tree, "f.rb"))

	require.NoError(t, engine.ReplaceLastLine("f.rb", scan.Text("gem"), "gem 'c'"))
	assert.Equal(t, "gem 'b'\nx\ngem 'c'\n", readString(t, tree, "f.rb"))
}

func TestEngine_ReplaceLine_MultiLineReplacement(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "old\n")

	require.NoError(t, engine.ReplaceFirstLine("f.rb", scan.Text("old"), "new1\nnew2"))

	assert.Equal(t, "new1\nnew2\n", readString(t, tree, "f.rb"))
}

func TestEngine_InjectBeforeAndAfter(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "a\nb\n")

	require.NoError(t, engine.InjectBefore("f.rb", scan.Text("b"), "x"))
	assert.Equal(t, "a\nx\nb\n", readString(t, tree, "f.rb"))

	require.NoError(t, engine.InjectAfter("f.rb", scan.Text("a"), "y"))
	assert.Equal(t, "a\ny\nx\nb\n", readString(t, tree, "f.rb"))
}

func TestEngine_InjectBeforeLast_SecondOccurrenceOnly(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "  foo\n  foo\n")

	require.NoError(t, engine.InjectBeforeLast("f.rb", scan.Text("foo"), "bar"))

	assert.Equal(t, "  foo\nbar\n  foo\n", readString(t, tree, "f.rb"))
}

func TestEngine_InjectAfterLast(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "foo\nfoo\nend\n")

	require.NoError(t, engine.InjectAfterLast("f.rb", scan.Text("foo"), "bar"))

	assert.Equal(t, "foo\nfoo\nbar\nend\n", readString(t, tree, "f.rb"))
}

func TestEngine_RemoveLine(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "a\nkill me\nb\n")

	require.NoError(t, engine.RemoveLine("f.rb", scan.Text("kill")))

	assert.Equal(t, "a\nb\n", readString(t, tree, "f.rb"))
}

func TestEngine_InjectAtBlockTopAndBottom(t *testing.T) {
	src := "configure do\n  a\n  b\nend\n"
	engine, tree := newTestEngine(t, "f.rb", src)

	require.NoError(t, engine.InjectAtBlockTop("f.rb", scan.Text("configure"), "  first"))
	assert.Equal(t, "configure do\n  first\n  a\n  b\nend\n", readString(t, tree, "f.rb"))

	require.NoError(t, engine.InjectAtBlockBottom("f.rb", scan.Text("configure"), "  last"))
	assert.Equal(t, "configure do\n  first\n  a\n  b\n  last\nend\n", readString(t, tree, "f.rb"))
}

func TestEngine_InjectAtBlockBottom_NestedSameKind(t *testing.T) {
	// The bottom of the outer block comes from the depth scan, not from the
	// first line containing a close marker.
	src := "outer do\n  inner do\n    x\n  end\nend\n"
	engine, tree := newTestEngine(t, "f.rb", src)

	require.NoError(t, engine.InjectAtBlockBottom("f.rb", scan.Text("outer"), "  y"))

	assert.Equal(t, "outer do\n  inner do\n    x\n  end\n  y\nend\n", readString(t, tree, "f.rb"))
}

func TestEngine_InjectAtBlockTop_MultiLineBlockContent(t *testing.T) {
	src := "setup do\n  tail\nend\n"
	engine, tree := newTestEngine(t, "f.rb", src)

	require.NoError(t, engine.InjectAtBlockTop("f.rb", scan.Text("setup"), "  nested do\n    x\n  end"))

	assert.Equal(t, "setup do\n  nested do\n    x\n  end\n  tail\nend\n", readString(t, tree, "f.rb"))
}

func TestEngine_RemoveBlock(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "configure do\n  x\nend\n")

	require.NoError(t, engine.RemoveBlock("f.rb", scan.Text("configure")))

	assert.Equal(t, "", readString(t, tree, "f.rb"))
}

func TestEngine_RemoveBlock_KeepsSurroundings(t *testing.T) {
	src := "before\nconfigure do\n  inner do\n  end\nend\nafter\n"
	engine, tree := newTestEngine(t, "f.rb", src)

	require.NoError(t, engine.RemoveBlock("f.rb", scan.Text("configure")))

	assert.Equal(t, "before\nafter\n", readString(t, tree, "f.rb"))
}

func TestEngine_InjectAtClassBottom(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "class C\n  def m\n  end\nend\n")

	require.NoError(t, engine.InjectAtClassBottom("f.rb", scan.Text("C"), "x"))

	assert.Equal(t, "class C\n  def m\n  end\n  x\nend\n", readString(t, tree, "f.rb"))
}

func TestEngine_InjectAtClassBottom_WithNestedBlocks(t *testing.T) {
	src := "module M\n  configure do\n    x\n  end\nend\n"
	engine, tree := newTestEngine(t, "f.rb", src)

	require.NoError(t, engine.InjectAtClassBottom("f.rb", scan.Text("M"), "y"))

	assert.Equal(t, "module M\n  configure do\n    x\n  end\n  y\nend\n", readString(t, tree, "f.rb"))
}

func TestEngine_MissingTarget_LeavesFileUnmodified(t *testing.T) {
	src := "a\nb\n"
	engine, tree := newTestEngine(t, "f.rb", src)

	err := engine.InjectBefore("f.rb", scan.Text("nope"), "x")

	var missing *chisel.MissingTargetError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "f.rb", missing.Path)
	assert.Equal(t, "nope", missing.Target)
	assert.Equal(t, src, readString(t, tree, "f.rb"))
}

func TestEngine_MissingTarget_AllLocatingOps(t *testing.T) {
	engine, _ := newTestEngine(t, "f.rb", "a\n")
	target := scan.Text("nope")

	ops := map[string]error{
		"replace_first":      engine.ReplaceFirstLine("f.rb", target, "x"),
		"replace_last":       engine.ReplaceLastLine("f.rb", target, "x"),
		"inject_before":      engine.InjectBefore("f.rb", target, "x"),
		"inject_before_last": engine.InjectBeforeLast("f.rb", target, "x"),
		"inject_after":       engine.InjectAfter("f.rb", target, "x"),
		"inject_after_last":  engine.InjectAfterLast("f.rb", target, "x"),
		"remove_line":        engine.RemoveLine("f.rb", target),
		"block_top":          engine.InjectAtBlockTop("f.rb", target, "x"),
		"block_bottom":       engine.InjectAtBlockBottom("f.rb", target, "x"),
		"remove_block":       engine.RemoveBlock("f.rb", target),
		"class_bottom":       engine.InjectAtClassBottom("f.rb", target, "x"),
	}
	for name, err := range ops {
		var missing *chisel.MissingTargetError
		assert.ErrorAs(t, err, &missing, name)
	}
}

func TestEngine_ReadErrorsPassThrough(t *testing.T) {
	tree := memfs.New()
	engine := New(tree, nil)

	err := engine.Append("missing.rb", "x")
	assert.ErrorIs(t, err, chisel.ErrNotFound)
}

func TestEngine_PreservesCRLF(t *testing.T) {
	engine, tree := newTestEngine(t, "f.txt", "a\r\nb\r\n")

	require.NoError(t, engine.InjectAfter("f.txt", scan.Text("a"), "x"))

	assert.Equal(t, "a\r\nx\r\nb\r\n", readString(t, tree, "f.txt"))
}

func TestEngine_EmbeddedCRLFDoesNotFlipTerminator(t *testing.T) {
	// A stray literal "\r\n" inside an LF file must not switch the whole
	// file to CRLF joining.
	engine, tree := newTestEngine(t, "f.txt", "a\nmid \r\n mid\nb\n")

	require.NoError(t, engine.Append("f.txt", "c"))

	assert.Equal(t, "a\nmid \r\n mid\nb\nc\n", readString(t, tree, "f.txt"))
}

func TestEngine_EmptyFile_AppendAndUnshift(t *testing.T) {
	engine, tree := newTestEngine(t, "f.txt", "")

	require.NoError(t, engine.Append("f.txt", "only"))
	assert.Equal(t, "only", readString(t, tree, "f.txt"))

	require.NoError(t, engine.Unshift("f.txt", "first"))
	assert.Equal(t, "first\nonly", readString(t, tree, "f.txt"))
}

func TestEngine_TargetRegexp(t *testing.T) {
	engine, tree := newTestEngine(t, "f.rb", "gem 'rails'\ngem 'rake'\n")

	target := scan.Regexp(regexp.MustCompile(`gem 'ra[k]e'`))
	require.NoError(t, engine.RemoveLine("f.rb", target))
	assert.Equal(t, "gem 'rails'\n", readString(t, tree, "f.rb"))
}

package fspath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_MixedSeparators(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Split("a/b\\c"))
	assert.Equal(t, []string{"a", "b"}, Split("a//b/"))
	assert.Empty(t, Split(""))
	assert.Empty(t, Split("/"))
}

func TestJoin_FlattensAndRejoins(t *testing.T) {
	assert.Equal(t, strings.Join([]string{"a", "b", "c"}, Separator), Join("a", "b/c"))
	assert.Equal(t, strings.Join([]string{"a", "b", "c"}, Separator), Join("a\\b", "c"))
	assert.Equal(t, "", Join())
}

func TestJoin_PreservesLeadingSeparator(t *testing.T) {
	assert.Equal(t, Separator+"a"+Separator+"b", Join("/a", "b"))
	assert.Equal(t, "a"+Separator+"b", Join("a", "/b"))
}

func TestDir(t *testing.T) {
	assert.Equal(t, "a"+Separator+"b", Dir("a/b/c"))
	assert.Equal(t, Separator+"a", Dir("/a/b"))
	assert.Equal(t, Separator, Dir("/a"))
	assert.Equal(t, "", Dir("a"))
	assert.Equal(t, "", Dir(""))
}

func TestBase(t *testing.T) {
	assert.Equal(t, "c", Base("a/b/c"))
	assert.Equal(t, "c", Base("a\\b\\c"))
	assert.Equal(t, "a", Base("/a"))
	assert.Equal(t, "", Base("/"))
}

func TestIsAbs(t *testing.T) {
	assert.True(t, IsAbs("/a"))
	assert.True(t, IsAbs("\\a"))
	assert.False(t, IsAbs("a/b"))
	assert.False(t, IsAbs(""))
}

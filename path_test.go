package dirtree

import (
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/a/", true},
		{"/a/b/", true},
		{"/a/b/c/", true},
		{"", false},
		{"a/", false},
		{"/a", false},
		{"//", false},
		{"/a//", false},
		{"/A/", false},
		{"/a1/", false},
		{"/a-b/", false},
		{"/aB/", false},
	}
	for _, c := range cases {
		got := ValidatePath(c.path, DefaultMaxPathLength, DefaultMaxComponentLength)
		assert.Equal(t, c.want, got, "ValidatePath(%q)", c.path)
	}
}

func TestValidatePathLengthBounds(t *testing.T) {
	longComponent := strings.Repeat("a", 5)
	path := "/" + longComponent + "/"
	assert.True(t, ValidatePath(path, 100, 5))
	assert.False(t, ValidatePath(path, 100, 4), "component exceeds maxComponent")
	assert.False(t, ValidatePath(path, len(path)-1, 5), "path exceeds maxPath")
}

func TestSplitParent(t *testing.T) {
	cases := []struct {
		path       string
		wantParent string
		wantName   string
	}{
		{"/a/", "/", "a"},
		{"/a/b/", "/a/", "b"},
		{"/a/b/c/", "/a/b/", "c"},
	}
	for _, c := range cases {
		parent, name := SplitParent(c.path)
		assert.Equal(t, c.wantParent, parent, "parent of %q", c.path)
		assert.Equal(t, c.wantName, name, "name of %q", c.path)
	}
}

func TestSplitParentPanicsOnRoot(t *testing.T) {
	assert.Panics(t, func() { SplitParent("/") })
}

func TestSplitFirstComponent(t *testing.T) {
	comp, rest, ok := SplitFirstComponent("/a/b/c/")
	require.True(t, ok)
	assert.Equal(t, "a", comp)
	assert.Equal(t, "/b/c/", rest)

	comp, rest, ok = SplitFirstComponent("/a/")
	require.True(t, ok)
	assert.Equal(t, "a", comp)
	assert.Equal(t, "/", rest)

	_, _, ok = SplitFirstComponent("/")
	assert.False(t, ok)
}

func TestLCA(t *testing.T) {
	cases := []struct {
		a, b, want string
	}{
		{"/a/b/", "/a/c/", "/a/"},
		{"/a/b/", "/a/b/", "/a/b/"},
		{"/a/", "/b/", "/"},
		{"/", "/a/", "/"},
		{"/a/b/c/", "/a/b/", "/a/b/"},
		{"/ab/c/", "/a/c/", "/"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, LCA(c.a, c.b), "LCA(%q, %q)", c.a, c.b)
		assert.Equal(t, c.want, LCA(c.b, c.a), "LCA(%q, %q) (symmetry)", c.b, c.a)
	}
}

func TestIsAncestor(t *testing.T) {
	assert.True(t, IsAncestor("/a/", "/a/b/"))
	assert.True(t, IsAncestor("/a/", "/a/"))
	assert.True(t, IsAncestor("/", "/a/b/"))
	assert.False(t, IsAncestor("/a/b/", "/a/"))
	assert.False(t, IsAncestor("/ab/", "/a/"))
}

func TestPathDepth(t *testing.T) {
	assert.Equal(t, 0, PathDepth("/"))
	assert.Equal(t, 1, PathDepth("/a/"))
	assert.Equal(t, 3, PathDepth("/a/b/c/"))
}

func TestNthComponent(t *testing.T) {
	name, idx := NthComponent("/a/bb/ccc/", 2)
	assert.Equal(t, "bb", name)
	assert.Equal(t, 3, idx)

	name, idx = NthComponent("/a/bb/ccc/", 1)
	assert.Equal(t, "a", name)
	assert.Equal(t, 1, idx)

	name, idx = NthComponent("/", 0)
	assert.Equal(t, "", name)
	assert.Equal(t, 0, idx)
}

// Random valid paths built from a fuzzer should always validate, and
// appending an invalid trailing character should always invalidate
// them; mirrors the gofuzz-driven property tests in tigerwill90-fox's
// suite.
func TestValidatePathFuzz(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 6)
	const alphabet = "abcdefghijklmnopqrstuvwxyz"

	for i := 0; i < 200; i++ {
		var nComponents int
		f.Fuzz(&nComponents)
		n := (nComponents % 5) + 1

		var b strings.Builder
		b.WriteByte('/')
		for c := 0; c < n; c++ {
			var length int
			f.Fuzz(&length)
			l := ((length%10)+10)%10 + 1
			for k := 0; k < l; k++ {
				var idx int
				f.Fuzz(&idx)
				b.WriteByte(alphabet[((idx%26)+26)%26])
			}
			b.WriteByte('/')
		}
		path := b.String()
		assert.True(t, ValidatePath(path, DefaultMaxPathLength, DefaultMaxComponentLength), "generated path %q should validate", path)
		assert.False(t, ValidatePath(path+"X", DefaultMaxPathLength, DefaultMaxComponentLength), "path with uppercase suffix should not validate")
	}
}

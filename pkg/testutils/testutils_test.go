package testutils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreeRoundTrip(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"a.txt":        "a",
		"empty/":       "",
		"deep/er/b.go": "package b",
	}

	WriteTree(t, root, files)

	assert.Equal(t, map[string]string{
		"a.txt":        "a",
		"empty/":       "",
		"deep/":        "",
		"deep/er/":     "",
		"deep/er/b.go": "package b",
	}, ReadTree(t, root))
}

func TestZipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.zip")

	WriteZip(t, path, map[string]string{
		"dir/":      "",
		"dir/f.txt": "f",
		"g.txt":     "g",
	})

	assert.Equal(t, map[string]string{"dir/f.txt": "f", "g.txt": "g"}, ReadZip(t, path))
}

// Copyright © 2025 The srcscope authors

package discover_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcscope/srcscope/discover"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, text := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	return root
}

func TestFindRecursive(t *testing.T) {
	root := writeTree(t, map[string]string{
		"shape.h":        "class Shape {};",
		"shape.cpp":      "",
		"sub/wheel.h":    "",
		"sub/readme.md":  "",
		"sub/deep/ui.cs": "",
	})
	set, err := discover.Find(root, []string{"*.h", "*.cpp", "*.cs"}, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"shape.h", "shape.cpp", "sub/wheel.h", "sub/deep/ui.cs"}, set.Files)
	assert.ElementsMatch(t, []string{"shape.h", "sub/wheel.h"}, set.ByPattern["*.h"])
	assert.Equal(t, 3, set.NumDirs)
}

func TestFindFlat(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.h":     "",
		"sub/b.h": "",
	})
	set, err := discover.Find(root, []string{"*.h"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.h"}, set.Files)
	assert.Equal(t, 1, set.NumDirs)
}

func TestFindDoublestar(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/core/a.cpp": "",
		"src/b.cpp":      "",
		"other/c.cpp":    "",
	})
	set, err := discover.Find(root, []string{"src/**/*.cpp"}, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/core/a.cpp", "src/b.cpp"}, set.Files)
}

func TestNoDuplicateAcrossPatterns(t *testing.T) {
	root := writeTree(t, map[string]string{"a.h": ""})
	set, err := discover.Find(root, []string{"*.h", "a.*"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.h"}, set.Files)
	assert.Equal(t, []string{"*.h", "a.*"}, set.Patterns())
}

func TestOpener(t *testing.T) {
	root := writeTree(t, map[string]string{"shape.h": "class Shape {};"})
	set, err := discover.Find(root, []string{"*.h"}, true)
	require.NoError(t, err)
	open := set.Opener()
	rc, err := open(context.Background(), "shape.h")
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "class Shape {};", string(content))
}

package build

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/extentix/internal/extract"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestFilter_MatchIncludeExclude(t *testing.T) {
	f := Filter{Include: []string{"**/*.txt"}, Exclude: []string{"vendor/**"}}
	assert.True(t, f.Match("docs/a.txt"))
	assert.False(t, f.Match("docs/a.go"))
	assert.False(t, f.Match("vendor/b.txt"))
}

func TestFilter_EmptyIncludeMeansEverything(t *testing.T) {
	f := Filter{Exclude: []string{"*.log"}}
	assert.True(t, f.Match("a.go"))
	assert.False(t, f.Match("a.log"))
}

func TestWalk_ReturnsMatchedRelativePaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":        "1",
		"sub/b.txt":    "2",
		"sub/skip.log": "3",
	})
	got, err := Walk(root, Filter{Exclude: []string{"**/*.log"}})
	require.NoError(t, err)
	sort.Strings(got)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, got)
}

func TestExtractAll_CallsOnTextForEveryFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "one", "b.txt": "two"})
	paths, err := Walk(root, Filter{})
	require.NoError(t, err)

	extractor := extract.NewPlainText(os.ReadFile)

	var mu sync.Mutex
	got := map[string]string{}
	err = ExtractAll(context.Background(), root, paths, extractor, 2, func(rel string, text []byte) {
		mu.Lock()
		got[rel] = string(text)
		mu.Unlock()
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "one", "b.txt": "two"}, got)
}

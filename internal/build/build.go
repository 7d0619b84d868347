// Package build implements the index-build collaborator surfaces
// spec.md §1 names as external to the core: walking a document
// collection under include/exclude glob rules and handing each matched
// file to a TokenStream producer, concurrently bounded the way the
// teacher bounds its own fan-out work. The core's own L1-L5 layers
// consume whatever this collaborator (or any other) produces; nothing
// here touches extent-list semantics directly.
package build

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/extentix/internal/extract"
)

// Filter selects which files under a root are handed to the index build,
// grounded on the teacher's FileScanner.shouldInclude/shouldExcludeFast
// pair of doublestar pattern lists.
type Filter struct {
	Include []string
	Exclude []string
}

// Match reports whether rel (a slash-separated path relative to the
// scan root) should be indexed: it must match some Include pattern (or
// Include is empty, meaning "everything") and no Exclude pattern. A
// malformed pattern is skipped rather than aborting the scan, matching
// the teacher's "log error but continue" doublestar error handling.
func (f Filter) Match(rel string) bool {
	for _, pattern := range f.Exclude {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, pattern := range f.Include {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// Walk returns every file under root accepted by f, relative to root
// with forward slashes.
func Walk(root string, f Filter) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if f.Match(rel) {
			out = append(out, rel)
		}
		return nil
	})
	return out, err
}

// ExtractAll runs extractor over every file in paths with bounded
// concurrency, in the same errgroup.WithContext + SetLimit shape the
// teacher uses for its own bounded fan-out, canceling the remaining
// work on the first extraction failure.
func ExtractAll(ctx context.Context, root string, paths []string, extractor extract.TextExtractor, limit int, onText func(rel string, text []byte)) error {
	if limit <= 0 {
		limit = 8
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, rel := range paths {
		rel := rel
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			text, err := extractor.Extract(filepath.Join(root, rel))
			if err != nil {
				return err
			}
			onText(rel, text)
			return nil
		})
	}
	return g.Wait()
}

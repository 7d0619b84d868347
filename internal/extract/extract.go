// Package extract defines the narrow collaborator interface the index
// build uses to turn a file on disk into indexable text, standing in
// for the original engine's PDF/PostScript/Office out-of-process
// converters (spec.md's explicit out-of-scope list for this module —
// interface only, no format-specific implementation).
package extract

import "sync"

// TextExtractor turns the file at path into its indexable text. A plain
// text file's extractor is just os.ReadFile; anything else (PDF, Office
// formats, ...) is a collaborator the core never implements itself.
type TextExtractor interface {
	Extract(path string) ([]byte, error)
}

// Cached wraps a TextExtractor with an idempotent in-memory cache keyed
// by path, so re-extracting an unchanged file (e.g. on a second watch
// event for the same path before the first finishes) is a map lookup
// rather than a re-run of a possibly expensive out-of-process converter.
type Cached struct {
	inner TextExtractor

	mu    sync.Mutex
	cache map[string][]byte
}

// NewCached wraps inner with a cache.
func NewCached(inner TextExtractor) *Cached {
	return &Cached{inner: inner, cache: make(map[string][]byte)}
}

// Extract returns the cached text for path if present, else delegates to
// inner and caches the result (failures are not cached, since a
// transient I/O error on retry may well succeed).
func (c *Cached) Extract(path string) ([]byte, error) {
	c.mu.Lock()
	if text, ok := c.cache[path]; ok {
		c.mu.Unlock()
		return text, nil
	}
	c.mu.Unlock()

	text, err := c.inner.Extract(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[path] = text
	c.mu.Unlock()
	return text, nil
}

// Invalidate drops path's cached text, for use when the watcher reports
// the file changed.
func (c *Cached) Invalidate(path string) {
	c.mu.Lock()
	delete(c.cache, path)
	c.mu.Unlock()
}

// PlainText is the trivial TextExtractor for already-plain-text files:
// it returns the file's bytes unchanged. Concrete format converters
// (PDF, Office, ...) are out of scope and implement the same interface.
type PlainText struct{ read func(path string) ([]byte, error) }

// NewPlainText wraps a read function (normally os.ReadFile) as a
// TextExtractor, so tests can substitute a fake without touching disk.
func NewPlainText(read func(path string) ([]byte, error)) *PlainText {
	return &PlainText{read: read}
}

func (p *PlainText) Extract(path string) ([]byte, error) { return p.read(path) }

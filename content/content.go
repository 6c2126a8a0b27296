// Package content holds the currently selected document and mediates between
// the tree snapshot and the rendering pipeline.
package content

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/askh-dev/askh/doctree"
	"github.com/askh-dev/askh/providers/contracts"
	"github.com/askh-dev/askh/providers/models"
)

// ErrorKind classifies selection failures.
type ErrorKind int

const (
	NotFound ErrorKind = iota
	Unavailable
)

func (k ErrorKind) String() string {
	if k == NotFound {
		return "not found"
	}
	return "unavailable"
}

// ContentError is returned by Select when fetching a document body fails. The
// previously selected document is always left untouched.
type ContentError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("content %s: %s", e.Kind, e.Path)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// SelectedDocument is the resolved result of one successful selection. It is
// replaced wholesale on every selection, never mutated in place.
type SelectedDocument struct {
	Path     string
	Title    string
	RawBody  string
	Checksum uint64
}

// Cache owns the current selection and the latest tree snapshot.
type Cache struct {
	provider contracts.IContentProvider

	mu         sync.Mutex
	snapshot   doctree.Snapshot
	current    *SelectedDocument
	generation uint64
}

// NewCache creates a cache backed by the given content provider.
func NewCache(provider contracts.IContentProvider) *Cache {
	return &Cache{provider: provider}
}

// LoadTree fetches a fresh snapshot from the provider and replaces the held
// one atomically. The previous snapshot keeps serving lookups until the fetch
// succeeds.
func (c *Cache) LoadTree(ctx context.Context) (doctree.Snapshot, error) {
	snapshot, err := c.provider.FetchTree(ctx)
	if err != nil {
		return doctree.Snapshot{}, fmt.Errorf("loading document tree: %w", err)
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	return snapshot, nil
}

// Snapshot returns the latest loaded tree snapshot.
func (c *Cache) Snapshot() doctree.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Select fetches the body for path, resolves its display title against the
// held snapshot and installs the result as the current document. On failure
// the previous selection stays visible and a ContentError is returned. The
// second result reports whether the document differs from the previous
// selection, by path or body checksum, so callers can skip re-rendering an
// unchanged body. When a newer Select supersedes this one before its response
// arrives, the stale result is returned to its caller but never installed:
// the latest requested path wins.
func (c *Cache) Select(ctx context.Context, path string) (SelectedDocument, bool, error) {
	c.mu.Lock()
	c.generation++
	requested := c.generation
	snapshot := c.snapshot
	previous := c.current
	c.mu.Unlock()

	body, err := c.provider.FetchBody(ctx, path)
	if err != nil {
		return SelectedDocument{}, false, &ContentError{Kind: classify(err), Path: path, Err: err}
	}

	doc := SelectedDocument{
		Path:     path,
		Title:    snapshot.LookupTitle(path),
		RawBody:  body,
		Checksum: xxh3.HashString(body),
	}

	changed := previous == nil || previous.Path != doc.Path || previous.Checksum != doc.Checksum

	c.mu.Lock()
	if requested == c.generation {
		c.current = &doc
	}
	c.mu.Unlock()

	return doc, changed, nil
}

// Current returns the selected document, if any.
func (c *Cache) Current() (SelectedDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return SelectedDocument{}, false
	}
	return *c.current, true
}

// Clear drops the current selection, returning the cache to its unset state.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

func classify(err error) ErrorKind {
	if errors.Is(err, models.ErrNotFound) {
		return NotFound
	}
	return Unavailable
}

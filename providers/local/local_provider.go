// Package local serves a documentation tree straight from a directory of
// markdown files, for browsing without an ASKH backend.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/askh-dev/askh/doctree"
	"github.com/askh-dev/askh/providers/models"
)

// Config holds the settings for the local content provider.
type Config struct {
	DocsDir string
}

// Provider implements the content provider contract over a docs directory.
// Its conversation side always fails: there is no local assistant.
type Provider struct {
	root string
}

// NewProvider validates the docs directory and returns a provider rooted at it.
func NewProvider(config *Config) (*Provider, error) {
	root, err := filepath.Abs(config.DocsDir)
	if err != nil {
		return nil, fmt.Errorf("resolving docs directory: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("docs directory %s: %w", config.DocsDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs path %s is not a directory", config.DocsDir)
	}

	return &Provider{root: root}, nil
}

// FetchTree walks the docs directory and builds one snapshot. Entries are
// visited in name order, dotfiles are skipped and only ".md" files become
// documents.
func (p *Provider) FetchTree(ctx context.Context) (doctree.Snapshot, error) {
	nodes, err := p.buildTree(ctx, p.root)
	if err != nil {
		return doctree.Snapshot{}, err
	}
	return doctree.Snapshot{Nodes: nodes}, nil
}

// FetchBody reads a document body by its tree path. Frontmatter is stripped,
// matching what the ASKH backend serves.
func (p *Provider) FetchBody(ctx context.Context, path string) (string, error) {
	target, err := p.resolve(path)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("document %s: %w", path, models.ErrNotFound)
		}
		return "", fmt.Errorf("reading document %s: %w", path, models.ErrUnavailable)
	}

	if _, markdown, ok := ParseFrontmatter(content); ok {
		return strings.TrimSpace(markdown), nil
	}
	return string(content), nil
}

// Converse always fails with unavailable; the session layer turns that into
// its in-band fallback notice.
func (p *Provider) Converse(ctx context.Context, message string) (string, error) {
	return "", fmt.Errorf("no assistant is configured for local browsing: %w", models.ErrUnavailable)
}

func (p *Provider) buildTree(ctx context.Context, dir string) ([]doctree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// os.ReadDir returns entries sorted by name, matching the backend's order.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, models.ErrUnavailable)
	}

	var nodes []doctree.Node
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(dir, name)

		if entry.IsDir() {
			children, err := p.buildTree(ctx, fullPath)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, doctree.Node{
				Kind:     doctree.KindFolder,
				Name:     name,
				Children: children,
			})
			continue
		}

		if !strings.HasSuffix(name, ".md") {
			continue
		}

		relPath, err := filepath.Rel(p.root, fullPath)
		if err != nil {
			return nil, fmt.Errorf("relativizing %s: %w", fullPath, models.ErrUnavailable)
		}

		node := doctree.Node{
			Kind: doctree.KindDocument,
			Name: name,
			Path: filepath.ToSlash(relPath),
		}
		if content, err := os.ReadFile(fullPath); err == nil {
			node.DisplayName = documentTitle(content)
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}

// resolve maps a tree path to a file under the docs root, rejecting paths
// that escape it.
func (p *Provider) resolve(path string) (string, error) {
	target := filepath.Join(p.root, filepath.FromSlash(path))
	target = filepath.Clean(target)

	if target != p.root && !strings.HasPrefix(target, p.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s escapes the docs directory: %w", path, models.ErrNotFound)
	}

	return target, nil
}

package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askh-dev/askh/doctree"
	"github.com/askh-dev/askh/providers/models"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func newTestProvider(t *testing.T) (*Provider, string) {
	t.Helper()
	root := t.TempDir()

	writeDoc(t, filepath.Join(root, "Software Testing"), "unit-test.md", "# Unit Testing\nHello")
	writeDoc(t, filepath.Join(root, "Software Testing"), "titled.md", "---\ntitle: Custom Title\n---\n# Ignored\nBody text")
	writeDoc(t, root, "intro.md", "plain intro")
	writeDoc(t, root, "notes.txt", "not markdown")
	writeDoc(t, root, ".hidden.md", "skipped")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))

	provider, err := NewProvider(&Config{DocsDir: root})
	require.NoError(t, err)
	return provider, root
}

func TestNewProvider_RejectsMissingDirectory(t *testing.T) {
	_, err := NewProvider(&Config{DocsDir: "/does/not/exist"})
	assert.Error(t, err)
}

func TestFetchTree_BuildsSortedSnapshot(t *testing.T) {
	provider, _ := newTestProvider(t)

	snapshot, err := provider.FetchTree(context.Background())
	require.NoError(t, err)

	// Dotfiles and non-markdown files never appear; entries come name-sorted.
	assert.Equal(t, []string{"Software Testing", "intro.md"}, snapshot.Flatten())

	node, ok := snapshot.FindDocument("Software Testing/unit-test.md")
	require.True(t, ok)
	assert.Equal(t, "Unit Testing", node.DisplayName, "title taken from the first heading")

	node, ok = snapshot.FindDocument("Software Testing/titled.md")
	require.True(t, ok)
	assert.Equal(t, "Custom Title", node.DisplayName, "frontmatter title wins over the heading")

	node, ok = snapshot.FindDocument("intro.md")
	require.True(t, ok)
	assert.Equal(t, doctree.KindDocument, node.Kind)
	assert.Empty(t, node.DisplayName)
}

func TestFetchBody_StripsFrontmatter(t *testing.T) {
	provider, _ := newTestProvider(t)

	body, err := provider.FetchBody(context.Background(), "Software Testing/titled.md")

	require.NoError(t, err)
	assert.Equal(t, "# Ignored\nBody text", body)
}

func TestFetchBody_PlainDocumentReturnedVerbatim(t *testing.T) {
	provider, _ := newTestProvider(t)

	body, err := provider.FetchBody(context.Background(), "intro.md")

	require.NoError(t, err)
	assert.Equal(t, "plain intro", body)
}

func TestFetchBody_MissingDocument(t *testing.T) {
	provider, _ := newTestProvider(t)

	_, err := provider.FetchBody(context.Background(), "nope/missing.md")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFetchBody_RejectsPathEscapingRoot(t *testing.T) {
	provider, root := newTestProvider(t)
	writeDoc(t, filepath.Dir(root), "outside.md", "secret")

	_, err := provider.FetchBody(context.Background(), "../outside.md")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConverse_AlwaysUnavailable(t *testing.T) {
	provider, _ := newTestProvider(t)

	_, err := provider.Converse(context.Background(), "hello")

	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestParseFrontmatter(t *testing.T) {
	metadata, markdown, ok := ParseFrontmatter([]byte("---\ntitle: Hi\ntags:\n  - a\n---\ncontent"))
	require.True(t, ok)
	assert.Equal(t, "Hi", metadata["title"])
	assert.Equal(t, "content", markdown)

	_, markdown, ok = ParseFrontmatter([]byte("no frontmatter here"))
	assert.False(t, ok)
	assert.Equal(t, "no frontmatter here", markdown)

	// Unterminated frontmatter degrades to plain content.
	_, markdown, ok = ParseFrontmatter([]byte("---\ntitle: Hi\ncontent"))
	assert.False(t, ok)
	assert.Equal(t, "---\ntitle: Hi\ncontent", markdown)
}

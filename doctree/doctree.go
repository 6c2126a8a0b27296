package doctree

import (
	"strings"
)

// NodeKind distinguishes folders from documents in the tree.
type NodeKind string

const (
	KindFolder   NodeKind = "folder"
	KindDocument NodeKind = "file"
)

// Node is a single entry in the document tree. Folders carry Children and no
// Path; documents carry a Path that is unique within a snapshot and may carry
// a DisplayName resolved from the document's frontmatter or first heading.
type Node struct {
	Kind        NodeKind `json:"type"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName,omitempty"`
	Path        string   `json:"path,omitempty"`
	Children    []Node   `json:"children,omitempty"`
}

// Snapshot is one complete fetch of the document hierarchy. A snapshot is
// immutable once built; a new fetch replaces the whole snapshot, never merges
// into it.
type Snapshot struct {
	Nodes []Node
}

// LookupTitle resolves the display title for a document path. It walks the
// snapshot pre-order (folder before its children, children left-to-right) and
// returns the first matching document's DisplayName, falling back to its name
// with the ".md" suffix stripped. When the path is not present in the snapshot
// at all, the title is derived from the last path segment, so the caller
// always gets something displayable even against a stale tree.
func (s Snapshot) LookupTitle(path string) string {
	if node, found := findDocument(s.Nodes, path); found {
		if node.DisplayName != "" {
			return node.DisplayName
		}
		return TitleFromName(node.Name)
	}

	segments := strings.Split(path, "/")
	title := TitleFromName(segments[len(segments)-1])
	if title == "" {
		return "Untitled"
	}
	return title
}

// FindDocument returns the first document node matching path, in pre-order.
// Duplicate paths violate the snapshot invariant but are tolerated: the first
// structurally-reachable match wins.
func (s Snapshot) FindDocument(path string) (Node, bool) {
	return findDocument(s.Nodes, path)
}

// Flatten returns the top-level entry names in snapshot order.
func (s Snapshot) Flatten() []string {
	names := make([]string, 0, len(s.Nodes))
	for _, node := range s.Nodes {
		names = append(names, node.Name)
	}
	return names
}

// TitleFromName strips the conventional ".md" suffix from a file name.
func TitleFromName(name string) string {
	return strings.TrimSuffix(name, ".md")
}

func findDocument(nodes []Node, path string) (Node, bool) {
	for _, node := range nodes {
		if node.Kind == KindDocument && node.Path == path {
			return node, true
		}
		if node.Kind == KindFolder {
			if found, ok := findDocument(node.Children, path); ok {
				return found, true
			}
		}
	}
	return Node{}, false
}

package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Nodes: []Node{
			{
				Kind: KindFolder,
				Name: "Software Testing",
				Children: []Node{
					{Kind: KindDocument, Name: "unit-test.md", Path: "Software Testing/unit-test.md"},
					{Kind: KindDocument, Name: "integration.md", DisplayName: "Integration Testing", Path: "Software Testing/integration.md"},
				},
			},
			{
				Kind: KindFolder,
				Name: "SQL",
				Children: []Node{
					{
						Kind: KindFolder,
						Name: "Basics",
						Children: []Node{
							{Kind: KindDocument, Name: "select.md", Path: "SQL/Basics/select.md"},
						},
					},
				},
			},
			{Kind: KindDocument, Name: "readme.md", Path: "readme.md"},
		},
	}
}

func TestLookupTitle_UsesDisplayNameWhenSet(t *testing.T) {
	snapshot := sampleSnapshot()

	title := snapshot.LookupTitle("Software Testing/integration.md")

	assert.Equal(t, "Integration Testing", title)
}

func TestLookupTitle_StripsSuffixWhenNoDisplayName(t *testing.T) {
	snapshot := sampleSnapshot()

	assert.Equal(t, "unit-test", snapshot.LookupTitle("Software Testing/unit-test.md"))
	assert.Equal(t, "select", snapshot.LookupTitle("SQL/Basics/select.md"))
}

func TestLookupTitle_MissingPathDerivesFromLastSegment(t *testing.T) {
	snapshot := sampleSnapshot()

	assert.Equal(t, "orphan", snapshot.LookupTitle("Nowhere/orphan.md"))
	assert.Equal(t, "plain", snapshot.LookupTitle("plain"))
}

func TestLookupTitle_NeverEmpty(t *testing.T) {
	snapshot := Snapshot{}

	assert.NotEmpty(t, snapshot.LookupTitle(""))
	assert.NotEmpty(t, snapshot.LookupTitle("a/b/"))
	assert.NotEmpty(t, snapshot.LookupTitle(".md"))
}

func TestLookupTitle_DuplicatePathFirstPreOrderMatchWins(t *testing.T) {
	snapshot := Snapshot{
		Nodes: []Node{
			{
				Kind: KindFolder,
				Name: "A",
				Children: []Node{
					{Kind: KindDocument, Name: "dup.md", DisplayName: "First", Path: "dup.md"},
				},
			},
			{Kind: KindDocument, Name: "dup.md", DisplayName: "Second", Path: "dup.md"},
		},
	}

	assert.Equal(t, "First", snapshot.LookupTitle("dup.md"))
}

func TestFindDocument(t *testing.T) {
	snapshot := sampleSnapshot()

	node, ok := snapshot.FindDocument("SQL/Basics/select.md")
	assert.True(t, ok)
	assert.Equal(t, "select.md", node.Name)

	_, ok = snapshot.FindDocument("SQL/Basics")
	assert.False(t, ok, "folders are never selectable")
}

func TestFlatten_PreservesSnapshotOrder(t *testing.T) {
	snapshot := sampleSnapshot()

	assert.Equal(t, []string{"Software Testing", "SQL", "readme.md"}, snapshot.Flatten())
}

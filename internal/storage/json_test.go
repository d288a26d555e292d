package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-grid/internal/model"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "outline.json"))

	assert.False(t, store.FileExists())
	outline, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, outline.Items)
}

func TestSaveAndLoad(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "notes", "outline.json"))

	outline := model.NewOutline()
	parent := model.NewItem("Parent")
	parent.Metadata.Tags = []string{"a", "b"}
	parent.AddChild(model.NewItem("Child"))
	outline.Items = append(outline.Items, parent)

	require.NoError(t, store.Save(outline))
	assert.True(t, store.FileExists())

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)

	got := loaded.Items[0]
	assert.Equal(t, parent.ID, got.ID)
	assert.Equal(t, []string{"a", "b"}, got.Metadata.Tags)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "Child", got.Children[0].Text)
	assert.Same(t, got, got.Children[0].Parent)
	assert.True(t, parent.Metadata.Created.Equal(got.Metadata.Created))

	// Only the outline file is left behind
	entries, err := os.ReadDir(filepath.Dir(store.FilePath))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := NewJSONStore(path).Load()
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoadedOutlineAsGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.json")
	data := `{"items": [{"id": "a", "text": "Top", "children": [{"id": "b", "text": "Inner"}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	outline, err := NewJSONStore(path).Load()
	require.NoError(t, err)

	m := model.NewOutlineModel(outline, "")
	assert.Equal(t, 1, m.RowCount())
	assert.True(t, m.IsRowExpandable(0))
	m.SetRowExpanded(0, true, false)
	assert.Equal(t, "Inner", m.TextForCell(model.OutlineTextColumn, 1))
	assert.Equal(t, 1, m.DepthForRow(1))
}

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HexSleeves/dungeon-forge/internal/graph"
)

func TestNewProject(t *testing.T) {
	p := New("My Dungeon")

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "My Dungeon", p.Name)
	assert.Equal(t, "1.0.0", p.Version)
	assert.Equal(t, p.Created, p.Modified)
	assert.Empty(t, p.Generators)
	assert.Equal(t, "typescript", p.ExportConfig.DefaultTarget)
}

func TestSaveOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dungeon.json")

	p := New("Round Trip")
	p.Generators = append(p.Generators, graph.Generator{
		ID:   "gen1",
		Name: "Main Dungeon",
		Type: "dungeon",
		Graph: graph.Graph{
			Nodes: []graph.Node{{ID: "start", Kind: graph.KindStart}},
		},
	})
	require.NoError(t, p.Save(path))

	loaded, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, p.ID, loaded.ID)
	assert.Equal(t, p.Name, loaded.Name)
	require.Len(t, loaded.Generators, 1)
	assert.Equal(t, "gen1", loaded.Generators[0].ID)
	assert.Equal(t, graph.KindStart, loaded.Generators[0].Graph.Nodes[0].Kind)

	assert.NotNil(t, loaded.GeneratorByID("gen1"))
	assert.Nil(t, loaded.GeneratorByID("missing"))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestOpenMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestRecentStore(t *testing.T) {
	store, err := NewRecentStore(t.TempDir())
	require.NoError(t, err)

	// Missing file is an empty list, not an error
	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	a := New("A")
	b := New("B")
	require.NoError(t, store.Record(a, "/tmp/a.json"))
	require.NoError(t, store.Record(b, "/tmp/b.json"))

	entries, err = store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "B", entries[0].Name, "most recent entry comes first")

	// Re-recording an existing path moves it to the front without duplicating
	require.NoError(t, store.Record(a, "/tmp/a.json"))
	entries, err = store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Name)
}

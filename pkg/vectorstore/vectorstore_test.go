package vectorstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndSearchReturnsNearestFirst(t *testing.T) {
	s, err := NewMemory(3)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	chunks := []Chunk{
		{Content: "termination clause", Page: 1},
		{Content: "payment schedule", Page: 2},
		{Content: "governing law", Page: 3},
	}
	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	require.NoError(t, s.Add(ctx, chunks, embeddings))

	got, err := s.Search(ctx, []float32{0, 0.9, 0.1}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "payment schedule", got[0].Content)
	assert.Equal(t, 2, got[0].Page)
}

func TestSearchRejectsWrongDimension(t *testing.T) {
	s, err := NewMemory(3)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Search(context.Background(), []float32{1, 0}, 1)
	assert.Error(t, err)
}

func TestAddRejectsMismatchedCounts(t *testing.T) {
	s, err := NewMemory(2)
	require.NoError(t, err)
	defer s.Close()

	err = s.Add(context.Background(), []Chunk{{Content: "a"}}, nil)
	assert.Error(t, err)
}

func TestCount(t *testing.T) {
	s, err := NewMemory(2)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Add(ctx,
		[]Chunk{{Content: "a", Page: 1}, {Content: "b", Page: 2}},
		[][]float32{{1, 0}, {0, 1}},
	))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPersistentStoreRemovesFileOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	s, err := NewPersistent(path, 2)
	require.NoError(t, err)
	require.FileExists(t, path)

	require.NoError(t, s.Close())
	assert.NoFileExists(t, path)
}

func TestInvalidDimension(t *testing.T) {
	_, err := NewMemory(0)
	assert.Error(t, err)
}

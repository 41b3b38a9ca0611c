package rag

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortTextIsOneChunk(t *testing.T) {
	s := NewSplitter(100, 20)

	chunks := s.Split("A short clause.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short clause.", chunks[0])
}

func TestSplitEmptyTextYieldsNothing(t *testing.T) {
	s := NewSplitter(100, 20)

	assert.Empty(t, s.Split(""))
	assert.Empty(t, s.Split("   \n\n  "))
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	s := NewSplitter(40, 0)

	first := strings.Repeat("a", 30)
	second := strings.Repeat("b", 30)
	chunks := s.Split(first + "\n\n" + second)

	require.Len(t, chunks, 2)
	assert.Equal(t, first, chunks[0])
	assert.Equal(t, second, chunks[1])
}

func TestSplitRespectsChunkSize(t *testing.T) {
	s := NewSplitter(50, 10)

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("clause number text. ")
	}
	chunks := s.Split(b.String())

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 50, "chunk %q too long", c)
	}
}

func TestSplitHardCutsUnbrokenText(t *testing.T) {
	s := NewSplitter(10, 4)

	chunks := s.Split(strings.Repeat("x", 25))

	require.NotEmpty(t, chunks)
	assert.Len(t, chunks[0], 10)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 10)
	}
	// Consecutive hard-cut windows share the overlap region.
	assert.Equal(t, chunks[0][6:], chunks[1][:4])
}

func TestSplitCarriesOverlapBetweenChunks(t *testing.T) {
	s := NewSplitter(20, 8)

	chunks := s.Split("one two three four five six seven eight nine ten")

	require.Greater(t, len(chunks), 1)
	// The head of each following chunk repeats trailing words of the
	// previous one.
	for i := 1; i < len(chunks); i++ {
		firstWord := strings.Fields(chunks[i])[0]
		assert.Contains(t, chunks[i-1], firstWord)
	}
}

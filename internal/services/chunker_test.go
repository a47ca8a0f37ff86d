package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextShortInput(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("one short paragraph", 1000, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, "one short paragraph", chunks[0])
}

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	para := strings.Repeat("word ", 30)
	text := strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para)

	chunks := chunker.ChunkText(text, 200, 0)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 200)
	}
}

func TestChunkTextOverlap(t *testing.T) {
	chunker := NewTextChunker()

	first := strings.TrimSpace(strings.Repeat("alpha ", 25))
	second := strings.TrimSpace(strings.Repeat("beta ", 25))
	text := first + "\n\n" + second

	chunks := chunker.ChunkText(text, 150, 20)

	require.Len(t, chunks, 2)
	// The second chunk starts with the tail of the first
	tail := chunks[0][len(chunks[0])-20:]
	assert.True(t, strings.HasPrefix(chunks[1], tail))
}

func TestChunkTextLongParagraphFallsBackToSentences(t *testing.T) {
	chunker := NewTextChunker()

	var sentences []string
	for i := 0; i < 40; i++ {
		sentences = append(sentences, "This is a fairly long sentence used for testing purposes.")
	}
	text := strings.Join(sentences, " ")

	chunks := chunker.ChunkText(text, 200, 0)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()
	assert.Empty(t, chunker.ChunkText("", 1000, 100))
}

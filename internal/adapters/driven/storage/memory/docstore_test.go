package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docforge/docforge/internal/core/domain"
)

func TestDocumentStoreUpsertChunksIdempotent(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	chunk := domain.Chunk{ID: "c1", DocumentID: "d1", Ordinal: 0, Text: "hello"}
	require.NoError(t, store.UpsertChunks(ctx, []domain.Chunk{chunk}))
	require.NoError(t, store.UpsertChunks(ctx, []domain.Chunk{chunk}))

	chunks, err := store.GetChunks(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, chunks, 1)

	// Last write wins on the same ID.
	chunk.Text = "updated"
	require.NoError(t, store.UpsertChunks(ctx, []domain.Chunk{chunk}))

	got, err := store.GetChunk(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Text)
}

func TestDocumentStoreSearchChunks(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertChunks(ctx, []domain.Chunk{
		{ID: "c2", DocumentID: "d1", Ordinal: 2, Text: "The QUICK brown fox"},
		{ID: "c0", DocumentID: "d1", Ordinal: 0, Text: "quick start guide"},
		{ID: "c1", DocumentID: "d1", Ordinal: 1, Text: "nothing relevant"},
	}))

	t.Run("case-insensitive substring match ordered by ordinal", func(t *testing.T) {
		chunks, err := store.SearchChunks(ctx, "Quick", 10)
		require.NoError(t, err)

		require.Len(t, chunks, 2)
		assert.Equal(t, "c0", chunks[0].ID)
		assert.Equal(t, "c2", chunks[1].ID)
	})

	t.Run("limit caps results", func(t *testing.T) {
		chunks, err := store.SearchChunks(ctx, "quick", 1)
		require.NoError(t, err)
		assert.Len(t, chunks, 1)
	})

	t.Run("empty keyword yields empty result", func(t *testing.T) {
		chunks, err := store.SearchChunks(ctx, "", 10)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		chunks, err := store.SearchChunks(ctx, "zebra", 10)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})
}

func TestDocumentStoreGetChunkNotFound(t *testing.T) {
	store := NewDocumentStore()
	_, err := store.GetChunk(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStoreUpsertDocumentReplacesSections(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	record := domain.DocumentRecord{ID: "d1", Title: "Doc", ImportedAt: time.Now()}
	first := []domain.Section{{DocumentID: "d1", Level: 1, Title: "Old", ChunkStartOrdinal: 0}}
	require.NoError(t, store.UpsertDocument(ctx, record, first))

	second := []domain.Section{
		{DocumentID: "d1", Level: 2, Title: "Later", ChunkStartOrdinal: 4},
		{DocumentID: "d1", Level: 1, Title: "Earlier", ChunkStartOrdinal: 1},
	}
	require.NoError(t, store.UpsertDocument(ctx, record, second))

	sections, err := store.Sections(ctx, "d1")
	require.NoError(t, err)

	require.Len(t, sections, 2, "sections must be wholesale replaced")
	assert.Equal(t, "Earlier", sections[0].Title)
	assert.Equal(t, "Later", sections[1].Title)
}

func TestDocumentStoreRecentDocuments(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	base := time.Now()
	for i, id := range []string{"old", "mid", "new"} {
		record := domain.DocumentRecord{ID: id, ImportedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, store.UpsertDocument(ctx, record, nil))
	}

	records, err := store.RecentDocuments(ctx, 2)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "mid", records[1].ID)
}

func TestDocumentStoreGetDocumentNotFound(t *testing.T) {
	store := NewDocumentStore()
	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

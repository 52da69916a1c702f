package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docforge/docforge/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestStoreChunkRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunks := []domain.Chunk{
		{ID: "c0", DocumentID: "d1", Ordinal: 0, Text: "first"},
		{ID: "c1", DocumentID: "d1", Ordinal: 1, Text: "second"},
	}
	require.NoError(t, store.UpsertChunks(ctx, chunks))

	got, err := store.GetChunks(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, 1, got[1].Ordinal)

	single, err := store.GetChunk(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "second", single.Text)
}

func TestStoreUpsertChunksIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunk := domain.Chunk{ID: "c0", DocumentID: "d1", Ordinal: 0, Text: "v1"}
	require.NoError(t, store.UpsertChunks(ctx, []domain.Chunk{chunk}))

	chunk.Text = "v2"
	require.NoError(t, store.UpsertChunks(ctx, []domain.Chunk{chunk}))

	got, err := store.GetChunks(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "v2", got[0].Text)
}

func TestStoreSearchChunks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertChunks(ctx, []domain.Chunk{
		{ID: "c0", DocumentID: "d1", Ordinal: 0, Text: "Quick start"},
		{ID: "c1", DocumentID: "d1", Ordinal: 1, Text: "irrelevant"},
		{ID: "c2", DocumentID: "d1", Ordinal: 2, Text: "the quick fox"},
	}))

	t.Run("case-insensitive match ordered by ordinal", func(t *testing.T) {
		hits, err := store.SearchChunks(ctx, "QUICK", 10)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "c0", hits[0].ID)
		assert.Equal(t, "c2", hits[1].ID)
	})

	t.Run("empty keyword yields empty result", func(t *testing.T) {
		hits, err := store.SearchChunks(ctx, "", 10)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}

func TestStoreGetChunkNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetChunk(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreDocumentRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := domain.DocumentRecord{
		ID:              "d1",
		SourcePath:      "file:///tmp/report.pdf",
		Title:           "Report",
		SourceType:      domain.SourceTypePDF,
		ChunkCount:      3,
		LowQualityPages: []int{1, 4},
		ImportedAt:      time.Now().UTC(),
	}
	sections := []domain.Section{
		{DocumentID: "d1", Level: 1, Title: "Intro", ChunkStartOrdinal: 0},
		{DocumentID: "d1", Level: 2, Title: "Details", ChunkStartOrdinal: 2},
	}
	require.NoError(t, store.UpsertDocument(ctx, record, sections))

	got, err := store.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Report", got.Title)
	assert.Equal(t, domain.SourceTypePDF, got.SourceType)
	assert.Equal(t, []int{1, 4}, got.LowQualityPages)
	assert.Equal(t, 3, got.ChunkCount)

	gotSections, err := store.Sections(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, gotSections, 2)
	assert.Equal(t, "Intro", gotSections[0].Title)
}

func TestStoreUpsertDocumentReplacesSections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := domain.DocumentRecord{ID: "d1", Title: "Doc", ImportedAt: time.Now().UTC()}
	require.NoError(t, store.UpsertDocument(ctx, record, []domain.Section{
		{DocumentID: "d1", Level: 1, Title: "Old", ChunkStartOrdinal: 0},
	}))
	require.NoError(t, store.UpsertDocument(ctx, record, []domain.Section{
		{DocumentID: "d1", Level: 1, Title: "New", ChunkStartOrdinal: 0},
	}))

	sections, err := store.Sections(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "New", sections[0].Title)
}

func TestStoreRecentDocuments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, id := range []string{"old", "mid", "new"} {
		record := domain.DocumentRecord{
			ID:         id,
			Title:      id,
			ImportedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.UpsertDocument(ctx, record, nil))
	}

	records, err := store.RecentDocuments(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "mid", records[1].ID)
}

func TestStoreGetDocumentNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

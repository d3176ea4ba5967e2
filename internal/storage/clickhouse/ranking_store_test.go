package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-rank-lab/internal/domain"
	"token-rank-lab/internal/storage"
)

func sampleRun() []*domain.ScoredToken {
	return []*domain.ScoredToken{
		{
			Token: domain.Token{
				FeedID:            "feed_meme",
				FeedName:          "SuperMoonMeme",
				ExternalID:        ptr("So11111111111111111111111111111111111111112"),
				Name:              ptr("Moon"),
				Symbol:            "MEME",
				TotalSupply:       ptr(1000.0),
				CirculatingSupply: ptr(500.0),
			},
			Metrics:    domain.Metrics{Trending: 18, Market: 13.125, Social: 12, Virality: 45},
			FinalScore: 20.49,
		},
		{
			Token:      domain.Token{FeedID: "feed_plain", FeedName: "Feed", Symbol: "PL"},
			Metrics:    domain.Metrics{Trending: 2, Social: 4},
			FinalScore: 1.3,
		},
	}
}

func TestRankingStore_InsertAndGetByRun(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRankingStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, "run1", sampleRun()))

	ranked, err := store.GetByRun(ctx, "run1")
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	first := ranked[0]
	assert.Equal(t, "feed_meme", first.FeedID)
	assert.Equal(t, "MEME", first.Symbol)
	require.NotNil(t, first.Name)
	assert.Equal(t, "Moon", *first.Name)
	require.NotNil(t, first.CirculatingSupply)
	assert.Equal(t, 500.0, *first.CirculatingSupply)
	assert.Equal(t, 45.0, first.Metrics.Virality)
	assert.Equal(t, 20.49, first.FinalScore)

	second := ranked[1]
	assert.Equal(t, "feed_plain", second.FeedID)
	assert.Nil(t, second.Name)
	assert.Nil(t, second.TotalSupply)
}

func TestRankingStore_DuplicateRun(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRankingStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, "run1", sampleRun()))

	err := store.InsertBulk(ctx, "run1", sampleRun())
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestRankingStore_NotFound(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRankingStore(conn)
	ctx := context.Background()

	_, err := store.GetByRun(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetTopN(ctx, "missing", 5)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRankingStore_GetTopN(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRankingStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, "run1", sampleRun()))

	top, err := store.GetTopN(ctx, "run1", 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "feed_meme", top[0].FeedID)
}

func TestRankingStore_ListRuns(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRankingStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, "run_b", sampleRun()))
	require.NoError(t, store.InsertBulk(ctx, "run_a", sampleRun()))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run_a", "run_b"}, runs)
}

func TestRankingStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRankingStore(conn)
	ctx := context.Background()

	assert.ErrorIs(t, store.InsertBulk(ctx, "", sampleRun()), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.InsertBulk(ctx, "run1", nil), storage.ErrInvalidInput)
}

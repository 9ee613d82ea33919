package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animexapp/animex-server/internal/domain"
)

func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	index, err := NewIndex(Options{
		DataPath: t.TempDir(),
		Logger:   nil,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	return index
}

func testAnime(id, slug, titleEN string) *domain.Anime {
	now := time.Now()
	return &domain.Anime{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Slug:      slug,
		TitleEN:   titleEN,
		Genres:    []string{"action"},
		Status:    domain.AnimeStatusOngoing,
	}
}

func TestNewIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndexAndSearchAnime(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexAnime(testAnime("anime-1", "demon-hunter", "Demon Hunter")))
	require.NoError(t, index.IndexAnime(testAnime("anime-2", "space-pirates", "Space Pirates")))

	result, err := index.Search(context.Background(), Params{
		Query: "demon",
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "anime-1", result.Hits[0].ID)
	assert.Equal(t, "demon-hunter", result.Hits[0].Slug)
	assert.Equal(t, "Demon Hunter", result.Hits[0].TitleEN)
}

func TestSearchFuzzyMatch(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexAnime(testAnime("anime-1", "demon-hunter", "Demon Hunter")))

	// One character off should still match.
	result, err := index.Search(context.Background(), Params{
		Query: "demom",
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "anime-1", result.Hits[0].ID)
}

func TestSearchGenreFilter(t *testing.T) {
	index := setupTestIndex(t)

	action := testAnime("anime-1", "demon-hunter", "Demon Hunter")
	romance := testAnime("anime-2", "spring-love", "Spring Love")
	romance.Genres = []string{"romance"}
	require.NoError(t, index.IndexAnimeBatch([]*domain.Anime{action, romance}))

	result, err := index.Search(context.Background(), Params{
		Genres: []string{"romance"},
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "anime-2", result.Hits[0].ID)
}

func TestDeleteAnime(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexAnime(testAnime("anime-1", "demon-hunter", "Demon Hunter")))
	require.NoError(t, index.DeleteAnime("anime-1"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchFacets(t *testing.T) {
	index := setupTestIndex(t)

	a := testAnime("anime-1", "a", "Alpha")
	b := testAnime("anime-2", "b", "Beta")
	b.Genres = []string{"action", "mecha"}
	require.NoError(t, index.IndexAnimeBatch([]*domain.Anime{a, b}))

	result, err := index.Search(context.Background(), Params{
		Limit:         10,
		IncludeFacets: true,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Facets)

	genreCounts := make(map[string]int)
	for _, fc := range result.Facets.Genres {
		genreCounts[fc.Value] = fc.Count
	}
	assert.Equal(t, 2, genreCounts["action"])
	assert.Equal(t, 1, genreCounts["mecha"])
}

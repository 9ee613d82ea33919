package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animexapp/animex-server/internal/domain"
)

func TestAnimeService_CreateAndResolve(t *testing.T) {
	s := newTestStore(t)
	svc := NewAnimeService(s, nil, newTestValidator(), testLogger())
	ctx := context.Background()

	anime, err := svc.Create(ctx, CreateAnimeRequest{
		Slug:    "demon-hunter",
		TitleEN: "Demon Hunter",
		Status:  "ongoing",
		Genres:  []string{"action"},
	})
	require.NoError(t, err)

	// Resolvable by ID and by slug.
	byID, err := svc.Get(ctx, anime.ID, false)
	require.NoError(t, err)
	assert.Equal(t, anime.ID, byID.ID)

	bySlug, err := svc.Get(ctx, "demon-hunter", false)
	require.NoError(t, err)
	assert.Equal(t, anime.ID, bySlug.ID)

	_, err = svc.Get(ctx, "no-such-slug", false)
	require.Error(t, err)
}

func TestAnimeService_CreateCanonicalizesGenresAndTags(t *testing.T) {
	s := newTestStore(t)
	svc := NewAnimeService(s, nil, newTestValidator(), testLogger())

	anime, err := svc.Create(context.Background(), CreateAnimeRequest{
		Slug:    "neon-drift",
		TitleEN: "Neon Drift",
		Status:  "ongoing",
		Genres:  []string{"RomCom", "scifi", "sci_fi"},
		Tags:    []string{"Time Skip", "time_skip", "Mecha"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"romance", "comedy", "sci_fi"}, anime.Genres)
	assert.Equal(t, []string{"time-skip", "mecha"}, anime.Tags)
}

func TestAnimeService_CreateDuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	svc := NewAnimeService(s, nil, newTestValidator(), testLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateAnimeRequest{Slug: "taken", TitleEN: "First", Status: "ongoing"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateAnimeRequest{Slug: "taken", TitleEN: "Second", Status: "ongoing"})
	require.Error(t, err)
}

func TestAnimeService_CreateRejectsBadSlug(t *testing.T) {
	s := newTestStore(t)
	svc := NewAnimeService(s, nil, newTestValidator(), testLogger())

	_, err := svc.Create(context.Background(), CreateAnimeRequest{
		Slug:    "Not A Slug!",
		TitleEN: "Bad",
		Status:  "ongoing",
	})
	require.Error(t, err)
}

func TestAnimeService_GetCountsView(t *testing.T) {
	s := newTestStore(t)
	svc := NewAnimeService(s, nil, newTestValidator(), testLogger())
	ctx := context.Background()

	anime := createTestAnime(t, s, "anime-1", "test-anime")

	_, err := svc.Get(ctx, anime.ID, true)
	require.NoError(t, err)

	// The counter bump is off the read path.
	require.Eventually(t, func() bool {
		got, err := s.GetAnime(ctx, anime.ID)
		return err == nil && got.ViewCount == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAnimeService_ListPagination(t *testing.T) {
	s := newTestStore(t)
	svc := NewAnimeService(s, nil, newTestValidator(), testLogger())
	ctx := context.Background()

	createTestAnime(t, s, "anime-1", "alpha")
	createTestAnime(t, s, "anime-2", "beta")
	createTestAnime(t, s, "anime-3", "gamma")

	list, err := svc.List(ctx, ListParams{Page: 2, Limit: 2, Sort: domain.AnimeSortAToZ})
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Items, 1)

	_, err = svc.List(ctx, ListParams{Sort: "sideways"})
	require.Error(t, err)
}

func TestAnimeService_UpdatePartial(t *testing.T) {
	s := newTestStore(t)
	svc := NewAnimeService(s, nil, newTestValidator(), testLogger())
	ctx := context.Background()

	anime := createTestAnime(t, s, "anime-1", "test-anime")

	title := "Renamed"
	status := "completed"
	updated, err := svc.Update(ctx, anime.ID, UpdateAnimeRequest{
		TitleEN: &title,
		Status:  &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.TitleEN)
	assert.Equal(t, domain.AnimeStatusCompleted, updated.Status)
	// Untouched fields survive.
	assert.Equal(t, anime.Slug, updated.Slug)
	assert.Equal(t, anime.Genres, updated.Genres)
}

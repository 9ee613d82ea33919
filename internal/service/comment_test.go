package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskProfanity(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"great episode", "great episode"},
		{"what the fuck", "what the ****"},
		{"WHAT THE FUCK", "WHAT THE ****"},
		{"holy shit that twist", "holy **** that twist"},
		{"hello", "****o"}, // substring match, same as the web filter
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, maskProfanity(tc.in), "input %q", tc.in)
	}
}

func TestCommentService_CreateMasksContent(t *testing.T) {
	s := newTestStore(t)
	svc := NewCommentService(s, newTestValidator(), testLogger())
	ctx := context.Background()

	user := createTestUser(t, s, "user-1", "u@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")
	episode := createTestEpisode(t, s, "ep-1", anime.ID, 1)

	comment, err := svc.Create(ctx, user.ID, CreateCommentRequest{
		EpisodeID: episode.ID,
		Content:   "this is shit",
	})
	require.NoError(t, err)
	assert.Equal(t, "this is ****", comment.Content)
	assert.Equal(t, user.Username, comment.Username)
	assert.True(t, comment.IsApproved)
}

func TestCommentService_DeleteOwnership(t *testing.T) {
	s := newTestStore(t)
	svc := NewCommentService(s, newTestValidator(), testLogger())
	ctx := context.Background()

	author := createTestUser(t, s, "user-1", "u1@test.com")
	other := createTestUser(t, s, "user-2", "u2@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")
	episode := createTestEpisode(t, s, "ep-1", anime.ID, 1)

	comment, err := svc.Create(ctx, author.ID, CreateCommentRequest{
		EpisodeID: episode.ID,
		Content:   "first",
	})
	require.NoError(t, err)

	// A stranger cannot delete.
	require.Error(t, svc.Delete(ctx, comment.ID, other.ID, false))

	// An admin can.
	require.NoError(t, svc.Delete(ctx, comment.ID, other.ID, true))
}

func TestCommentService_FlagAndApprove(t *testing.T) {
	s := newTestStore(t)
	svc := NewCommentService(s, newTestValidator(), testLogger())
	ctx := context.Background()

	user := createTestUser(t, s, "user-1", "u@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")
	episode := createTestEpisode(t, s, "ep-1", anime.ID, 1)

	comment, err := svc.Create(ctx, user.ID, CreateCommentRequest{
		EpisodeID: episode.ID,
		Content:   "spoilers ahead",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Flag(ctx, comment.ID))

	// Flagged comments stay visible.
	list, err := svc.ListForEpisode(ctx, episode.ID, 1)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].IsFlagged)

	// Rejecting hides it and clears the flag.
	require.NoError(t, svc.Approve(ctx, comment.ID, false))
	list, err = svc.ListForEpisode(ctx, episode.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCommentService_ListAllFlaggedOnly(t *testing.T) {
	s := newTestStore(t)
	svc := NewCommentService(s, newTestValidator(), testLogger())
	ctx := context.Background()

	user := createTestUser(t, s, "user-1", "u@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")
	episode := createTestEpisode(t, s, "ep-1", anime.ID, 1)

	clean, err := svc.Create(ctx, user.ID, CreateCommentRequest{
		EpisodeID: episode.ID,
		Content:   "loved it",
	})
	require.NoError(t, err)

	flagged, err := svc.Create(ctx, user.ID, CreateCommentRequest{
		EpisodeID: episode.ID,
		Content:   "spoilers everywhere",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Flag(ctx, flagged.ID))

	// Unfiltered moderation list carries both, flagged first.
	all, err := svc.ListAll(ctx, false, 1, 20)
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, 2, all.Total)
	assert.Equal(t, flagged.ID, all.Items[0].ID)
	assert.Equal(t, clean.ID, all.Items[1].ID)

	// Flagged-only narrows to the flagged row.
	only, err := svc.ListAll(ctx, true, 1, 20)
	require.NoError(t, err)
	require.Len(t, only.Items, 1)
	assert.Equal(t, 1, only.Total)
	assert.Equal(t, flagged.ID, only.Items[0].ID)
	assert.True(t, only.Items[0].IsFlagged)
}

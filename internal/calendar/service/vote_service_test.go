package service

import (
	"context"
	"testing"
	"time"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVoteService() (VoteService, *fakeVoteRepo) {
	repo := &fakeVoteRepo{}
	catalog := NewEventCatalog(&fakeEventRepo{events: catalogEvents()}, time.UTC, testLogger)
	return NewVoteService(repo, catalog, testLogger), repo
}

func TestVoteService_SubmitOverwritesPreviousVote(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestVoteService()

	first, err := svc.SubmitVote(ctx, "user_1", dto.SubmitVoteRequest{EventID: "e1", Vote: "yes"})
	require.NoError(t, err)
	assert.Equal(t, dto.VoteAggregate{EventID: "e1", Yes: 1, Total: 1}, first.Aggregate)

	second, err := svc.SubmitVote(ctx, "user_1", dto.SubmitVoteRequest{EventID: "e1", Vote: "no"})
	require.NoError(t, err)
	assert.Equal(t, dto.VoteAggregate{EventID: "e1", No: 1, Total: 1}, second.Aggregate)
	assert.Equal(t, first.Vote.ID, second.Vote.ID)

	require.Len(t, repo.votes, 1)
	assert.Equal(t, entity.VoteNo, repo.votes[0].Vote)
}

func TestVoteService_AggregateAcrossUsers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestVoteService()

	for user, vote := range map[string]string{"a": "yes", "b": "yes", "c": "no", "d": "no_comment"} {
		_, err := svc.SubmitVote(ctx, user, dto.SubmitVoteRequest{EventID: "e2", Vote: vote})
		require.NoError(t, err)
	}

	resp, err := svc.GetEventVotes(ctx, "c", "e2")
	require.NoError(t, err)
	assert.Equal(t, dto.VoteAggregate{EventID: "e2", Yes: 2, No: 1, NoComment: 1, Total: 4}, resp.Aggregate)
	require.NotNil(t, resp.UserVote)
	assert.Equal(t, entity.VoteNo, resp.UserVote.Vote)

	resp, err = svc.GetEventVotes(ctx, "z", "e2")
	require.NoError(t, err)
	assert.Nil(t, resp.UserVote)

	votes, err := svc.ListUserVotes(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestVoteService_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestVoteService()

	_, err := svc.SubmitVote(ctx, "", dto.SubmitVoteRequest{EventID: "e1", Vote: "yes"})
	assert.ErrorIs(t, err, ErrMissingIdentity)

	_, err = svc.SubmitVote(ctx, "user_1", dto.SubmitVoteRequest{EventID: "e1"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Missing eventId or vote", vErr.Message)

	_, err = svc.SubmitVote(ctx, "user_1", dto.SubmitVoteRequest{EventID: "e1", Vote: "maybe"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Invalid vote value", vErr.Message)

	_, err = svc.SubmitVote(ctx, "user_1", dto.SubmitVoteRequest{EventID: "unknown", Vote: "yes"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, repo.votes)
}

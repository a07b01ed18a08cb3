package service

import (
	"context"
	"errors"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/logger"

	"gorm.io/gorm"
)

// VoteService records one vote per user per event and recounts tallies.
type VoteService interface {
	SubmitVote(ctx context.Context, userID string, req dto.SubmitVoteRequest) (*dto.SubmitVoteResponse, error)
	GetAggregate(ctx context.Context, eventID string) (dto.VoteAggregate, error)
	GetEventVotes(ctx context.Context, userID, eventID string) (*dto.EventVotesResponse, error)
	ListUserVotes(ctx context.Context, userID string) ([]entity.Vote, error)
}

// NewVoteService creates a new vote service.
func NewVoteService(repo repository.VoteRepository, catalog EventCatalog, log *logger.Logger) VoteService {
	return &voteService{repo: repo, catalog: catalog, logger: log}
}

type voteService struct {
	repo    repository.VoteRepository
	catalog EventCatalog
	logger  *logger.Logger
}

// SubmitVote upserts the caller's vote and returns the recounted aggregate.
func (s *voteService) SubmitVote(ctx context.Context, userID string, req dto.SubmitVoteRequest) (*dto.SubmitVoteResponse, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	if req.EventID == "" || req.Vote == "" {
		return nil, newValidationError("eventId", "Missing eventId or vote")
	}
	value := entity.VoteValue(req.Vote)
	if !value.IsValid() {
		return nil, newValidationError("vote", "Invalid vote value")
	}
	if _, err := s.catalog.Get(ctx, req.EventID); err != nil {
		return nil, err
	}

	vote, err := s.repo.FindByUserAndEvent(ctx, userID, req.EventID)
	switch {
	case err == nil:
		vote.Vote = value
		err = s.repo.Update(ctx, vote)
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote = &entity.Vote{UserID: userID, EventID: req.EventID, Vote: value}
		err = s.repo.Create(ctx, vote)
	}
	if err != nil {
		s.logger.Error("Failed to store vote", logger.ErrorField(err), logger.StringField("event_id", req.EventID))
		return nil, err
	}

	aggregate, err := s.GetAggregate(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	return &dto.SubmitVoteResponse{Vote: vote, Aggregate: aggregate}, nil
}

// GetAggregate recounts every vote for the event.
func (s *voteService) GetAggregate(ctx context.Context, eventID string) (dto.VoteAggregate, error) {
	aggregate := dto.VoteAggregate{EventID: eventID}
	counts, err := s.repo.CountByEvent(ctx, eventID)
	if err != nil {
		return aggregate, err
	}
	for _, c := range counts {
		switch c.Vote {
		case entity.VoteYes:
			aggregate.Yes = c.Count
		case entity.VoteNo:
			aggregate.No = c.Count
		case entity.VoteNoComment:
			aggregate.NoComment = c.Count
		}
	}
	aggregate.Total = aggregate.Yes + aggregate.No + aggregate.NoComment
	return aggregate, nil
}

// GetEventVotes returns the aggregate plus the caller's own vote, if any.
func (s *voteService) GetEventVotes(ctx context.Context, userID, eventID string) (*dto.EventVotesResponse, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	aggregate, err := s.GetAggregate(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventVotesResponse{Aggregate: aggregate}
	vote, err := s.repo.FindByUserAndEvent(ctx, userID, eventID)
	switch {
	case err == nil:
		resp.UserVote = vote
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return resp, nil
}

// ListUserVotes returns every vote the caller has cast.
func (s *voteService) ListUserVotes(ctx context.Context, userID string) ([]entity.Vote, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	return s.repo.FindByUser(ctx, userID)
}

package dto

import "stock-event-calendar/internal/entity"

// SubmitVoteRequest is the body of POST /votes.
type SubmitVoteRequest struct {
	EventID string `json:"eventId"`
	Vote    string `json:"vote"`
}

// VoteAggregate is the recounted tally of every vote cast for one event.
type VoteAggregate struct {
	EventID   string `json:"eventId"`
	Yes       int    `json:"yes"`
	No        int    `json:"no"`
	NoComment int    `json:"no_comment"`
	Total     int    `json:"total"`
}

// SubmitVoteResponse carries the stored vote and the fresh aggregate.
type SubmitVoteResponse struct {
	Vote      *entity.Vote  `json:"vote"`
	Aggregate VoteAggregate `json:"aggregate"`
}

// EventVotesResponse is returned by GET /votes?eventId=.
type EventVotesResponse struct {
	Aggregate VoteAggregate `json:"aggregate"`
	UserVote  *entity.Vote  `json:"userVote"`
}

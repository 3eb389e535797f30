// Copyright (c) 2026 Novella. All rights reserved.

package vote

import (
	"time"

	"github.com/novellaclub/novella/internal/platform/apperr"
)

// Vote is one member's ballot for one suggestion. A member may cast at most
// one vote per suggestion, enforced by a unique constraint on the pair.
type Vote struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	SuggestionID string    `json:"suggestion_id"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	CodeVotingClosed = "VOTING_CLOSED"
	CodeAlreadyVoted = "ALREADY_VOTED"
)

var (
	ErrVotingClosed = apperr.BadRequest(CodeVotingClosed, "Voting is not open for this period")
	ErrAlreadyVoted = apperr.BadRequest(CodeAlreadyVoted, "You have already voted for this suggestion")
)

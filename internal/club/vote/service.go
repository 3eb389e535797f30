// Copyright (c) 2026 Novella. All rights reserved.

package vote

import (
	"context"
	"log/slog"

	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/club/portal"
	"github.com/novellaclub/novella/internal/club/suggestion"
	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/pkg/uuid"
)

// SuggestionFinder resolves the suggestion a ballot targets. Satisfied by
// [suggestion.Service].
type SuggestionFinder interface {
	GetSuggestion(context context.Context, id string) (*suggestion.Suggestion, error)
}

// PortalGate resolves the portal governing a period. Satisfied by
// [portal.Service].
type PortalGate interface {
	GetPortalForPeriod(context context.Context, month, year int, category period.Category) (*portal.PortalStatus, error)
}

type Service struct {
	repo        Repository
	suggestions SuggestionFinder
	portals     PortalGate
	logger      *slog.Logger
}

func NewService(repo Repository, suggestions SuggestionFinder, portals PortalGate, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		suggestions: suggestions,
		portals:     portals,
		logger:      logger,
	}
}

// Cast records one member's vote for a suggestion and returns the
// suggestion's new vote count.
//
// The vote is gated by the portal of the suggestion's own period, not by
// whatever period is current: a ballot for a stale suggestion fails with
// VOTING_CLOSED once that period's portal closes. A missing portal row counts
// as a closed gate.
func (service *Service) Cast(context context.Context, userID, suggestionID string) (int, error) {
	target, err := service.suggestions.GetSuggestion(context, suggestionID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return 0, apperr.NotFound("Suggestion")
		}
		return 0, err
	}

	gate, err := service.portals.GetPortalForPeriod(context, target.Month, target.Year, target.Category)
	if err != nil {
		if apperr.IsNotFound(err) {
			return 0, ErrVotingClosed
		}
		return 0, err
	}
	if !gate.VotingOpen {
		return 0, ErrVotingClosed
	}

	count, err := service.repo.CastVote(context, &Vote{
		ID:           uuid.New(),
		UserID:       userID,
		SuggestionID: suggestionID,
	})
	if err != nil {
		return 0, err
	}

	service.logger.Info("vote_cast",
		slog.String("user_id", userID),
		slog.String("suggestion_id", suggestionID),
		slog.Int("vote_count", count),
	)
	return count, nil
}

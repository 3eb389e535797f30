// Copyright (c) 2026 Novella. All rights reserved.

package suggestion

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/club/portal"
	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/internal/platform/constants"
	"github.com/novellaclub/novella/internal/platform/validate"
	"github.com/novellaclub/novella/pkg/uuid"
)

// PortalGate resolves the portal governing a period. Satisfied by [portal.Service].
type PortalGate interface {
	GetPortalForPeriod(context context.Context, month, year int, category period.Category) (*portal.PortalStatus, error)
}

// PortalCloser shuts both gates of a period after a winner is recorded.
// Satisfied by [portal.Service].
type PortalCloser interface {
	CloseForPeriod(context context.Context, month, year int, category period.Category) error
}

// BookPromoter copies a winning suggestion into the permanent catalog and
// returns the new book's ID. Satisfied by the book service.
type BookPromoter interface {
	PromoteSuggestion(context context.Context, s *Suggestion) (string, error)
}

type Service struct {
	repo     Repository
	portals  PortalGate
	closer   PortalCloser
	promoter BookPromoter
	logger   *slog.Logger
}

func NewService(repo Repository, portals PortalGate, closer PortalCloser, promoter BookPromoter, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		portals:  portals,
		closer:   closer,
		promoter: promoter,
		logger:   logger,
	}
}

// SubmitInput is the member-provided payload of a nomination.
type SubmitInput struct {
	Title    string
	Author   string
	Synopsis string
	ImageURL *string
	Category period.Category
	Month    int
	Year     int
}

// Submit records a nomination.
//
// Preconditions are checked in a fixed order so a member with several
// problems always sees the same first failure: portal gate, then quota, then
// field validation. A missing portal row counts as a closed gate.
func (service *Service) Submit(context context.Context, userID string, input SubmitInput) (*Suggestion, error) {

	// ── 1. Portal gate ────────────────────────────────────────────────────
	gate, err := service.portals.GetPortalForPeriod(context, input.Month, input.Year, input.Category)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrNominationClosed
		}
		return nil, err
	}
	if !gate.NominationOpen {
		return nil, ErrNominationClosed
	}

	normalized := period.Normalize(input.Month, input.Year, input.Category)

	// ── 2. Quota ──────────────────────────────────────────────────────────
	used, err := service.repo.CountForUser(context, userID, normalized, input.Category)
	if err != nil {
		return nil, err
	}
	if used >= Quota {
		return nil, ErrQuotaExceeded
	}

	// ── 3. Field validation ───────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.Required(FieldAuthor, input.Author).MaxLen(FieldAuthor, input.Author, 200)
	validator.MinLen(FieldSynopsis, input.Synopsis, constants.SynopsisMinLen).
		MaxLen(FieldSynopsis, input.Synopsis, constants.SynopsisMaxLen)
	if input.ImageURL != nil {
		validator.URL(FieldImageURL, *input.ImageURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	s := &Suggestion{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    input.Title,
		Author:   input.Author,
		Synopsis: input.Synopsis,
		ImageURL: input.ImageURL,
		Category: input.Category,
		Month:    normalized.Month,
		Year:     normalized.Year,
	}

	if err := service.repo.CreateSuggestion(context, s); err != nil {
		return nil, err
	}

	service.logger.Info("suggestion_submitted",
		slog.String("suggestion_id", s.ID),
		slog.String("user_id", userID),
		slog.Int("month", s.Month),
		slog.Int("year", s.Year),
		slog.String("category", string(s.Category)),
	)
	return s, nil
}

// Leaderboard returns the period's suggestions, most-voted first, ties broken
// by submission time.
func (service *Service) Leaderboard(context context.Context, month, year int, category period.Category) ([]*Suggestion, error) {
	return service.repo.ListForPeriod(context, period.Normalize(month, year, category), category)
}

func (service *Service) GetSuggestion(context context.Context, id string) (*Suggestion, error) {
	return service.repo.GetSuggestion(context, id)
}

func (service *Service) DeleteSuggestion(context context.Context, id string) error {
	if err := service.repo.DeleteSuggestion(context, id); err != nil {
		return err
	}

	service.logger.Warn("suggestion_deleted", slog.String("suggestion_id", id))
	return nil
}

// SelectWinner promotes a suggestion into the permanent catalog and closes
// the period's portal.
//
// The catalog copy is confirmed before the portal close is attempted. If the
// close then fails, the selection is already durable, so the failure is
// surfaced under its own code rather than rolled into a generic error.
func (service *Service) SelectWinner(context context.Context, suggestionID string) (string, error) {
	winner, err := service.repo.GetSuggestion(context, suggestionID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.NotFound("Suggestion")
		}
		return "", err
	}

	bookID, err := service.promoter.PromoteSuggestion(context, winner)
	if err != nil {
		return "", err
	}

	if err := service.closer.CloseForPeriod(context, winner.Month, winner.Year, winner.Category); err != nil {
		service.logger.Error("winner_portal_close_failed",
			slog.String("suggestion_id", winner.ID),
			slog.String("book_id", bookID),
			slog.Any("cause", err),
		)
		return bookID, &apperr.AppError{
			Code:       "SELECTION_INCOMPLETE",
			Message:    "Winner recorded but the portal could not be closed",
			HTTPStatus: http.StatusInternalServerError,
			Cause:      err,
		}
	}

	service.logger.Info("winner_selected",
		slog.String("suggestion_id", winner.ID),
		slog.String("book_id", bookID),
		slog.Int("month", winner.Month),
		slog.Int("year", winner.Year),
		slog.String("category", string(winner.Category)),
	)
	return bookID, nil
}

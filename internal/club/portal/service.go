// Copyright (c) 2026 Novella. All rights reserved.

package portal

import (
	"context"
	"log/slog"

	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/platform/validate"
	"github.com/novellaclub/novella/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListPortals(context context.Context) ([]*PortalStatus, error) {
	return service.repo.ListPortals(context)
}

func (service *Service) GetPortal(context context.Context, id string) (*PortalStatus, error) {
	return service.repo.GetPortal(context, id)
}

// GetPortalForPeriod resolves the portal governing the normalized period of
// the given calendar (month, year).
func (service *Service) GetPortalForPeriod(context context.Context, month, year int, category period.Category) (*PortalStatus, error) {
	return service.repo.GetPortalForPeriod(context, period.Normalize(month, year, category), category)
}

// CreatePortal opens a new (closed) portal row for a period.
//
// Non-fiction months are normalized to the odd pair start before insert, so
// creating a portal for April and for March of the same year collide on the
// same row.
func (service *Service) CreatePortal(context context.Context, month, year int, category period.Category) (*PortalStatus, error) {
	validator := &validate.Validator{}
	validator.Range(FieldMonth, month, 1, 12)
	validator.Range(FieldYear, year, 2000, 2200)
	validator.OneOf(FieldCategory, string(category), string(period.CategoryFiction), string(period.CategoryNonFiction))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	normalized := period.Normalize(month, year, category)

	status := &PortalStatus{
		ID:       uuid.New(),
		Month:    normalized.Month,
		Year:     normalized.Year,
		Category: category,
	}

	if err := service.repo.CreatePortal(context, status); err != nil {
		return nil, err
	}

	service.logger.Info("portal_created",
		slog.Int("month", status.Month),
		slog.Int("year", status.Year),
		slog.String("category", string(status.Category)),
	)
	return status, nil
}

// SetNominationOpen toggles the nomination gate. Opening it closes the
// voting gate atomically.
func (service *Service) SetNominationOpen(context context.Context, id string, open bool) (*PortalStatus, error) {
	status, err := service.repo.SetNominationOpen(context, id, open)
	if err != nil {
		return nil, err
	}

	service.logger.Info("portal_nomination_toggled",
		slog.String("portal_id", id),
		slog.Bool("open", open),
	)
	return status, nil
}

// SetVotingOpen toggles the voting gate. Opening it closes the nomination
// gate atomically.
func (service *Service) SetVotingOpen(context context.Context, id string, open bool) (*PortalStatus, error) {
	status, err := service.repo.SetVotingOpen(context, id, open)
	if err != nil {
		return nil, err
	}

	service.logger.Info("portal_voting_toggled",
		slog.String("portal_id", id),
		slog.Bool("open", open),
	)
	return status, nil
}

// CloseForPeriod closes both gates for the period containing (month, year).
// Used after a winner has been promoted into the catalog.
func (service *Service) CloseForPeriod(context context.Context, month, year int, category period.Category) error {
	normalized := period.Normalize(month, year, category)
	if err := service.repo.ClosePortalForPeriod(context, normalized, category); err != nil {
		return err
	}

	service.logger.Info("portal_closed",
		slog.Int("month", normalized.Month),
		slog.Int("year", normalized.Year),
		slog.String("category", string(category)),
	)
	return nil
}

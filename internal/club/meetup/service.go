// Copyright (c) 2026 Novella. All rights reserved.

package meetup

import (
	"context"
	"log/slog"
	"time"

	"github.com/novellaclub/novella/internal/platform/constants"
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

// ListMeetups returns the schedule, newest event first. Drafts are included
// only when the caller is an admin.
func (service *Service) ListMeetups(context context.Context, includeDrafts bool) ([]*Meetup, error) {
	return service.repo.ListMeetups(context, !includeDrafts)
}

func (service *Service) GetMeetup(context context.Context, id string) (*Meetup, error) {
	return service.repo.GetMeetup(context, id)
}

// CreateInput is the admin-provided payload for a scheduled event.
type CreateInput struct {
	Title         string
	Description   *string
	VenueName     string
	Address       string
	City          string
	Latitude      *float64
	Longitude     *float64
	GoogleMapsURL *string
	EventDate     time.Time
	EndTime       *time.Time
	Month         int
	Year          int
	ImageURL      *string
	IsPublished   bool
}

func (service *Service) CreateMeetup(context context.Context, input CreateInput) (*Meetup, error) {
	if err := validateEvent(input); err != nil {
		return nil, err
	}

	city := input.City
	if city == "" {
		city = constants.MeetupDefaultCity
	}

	m := &Meetup{
		ID:            uuid.New(),
		Title:         input.Title,
		Description:   input.Description,
		VenueName:     input.VenueName,
		Address:       input.Address,
		City:          city,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		GoogleMapsURL: input.GoogleMapsURL,
		EventDate:     input.EventDate,
		EndTime:       input.EndTime,
		Month:         input.Month,
		Year:          input.Year,
		ImageURL:      input.ImageURL,
		IsPublished:   input.IsPublished,
	}

	if err := service.repo.CreateMeetup(context, m); err != nil {
		return nil, err
	}

	service.logger.Info("meetup_created",
		slog.String("meetup_id", m.ID),
		slog.String("venue", m.VenueName),
		slog.Bool("published", m.IsPublished),
	)
	return m, nil
}

// UpdateMeetup replaces a meetup's content fields. The published flag is not
// touched here; it has its own toggle.
func (service *Service) UpdateMeetup(context context.Context, id string, input CreateInput) (*Meetup, error) {
	if err := validateEvent(input); err != nil {
		return nil, err
	}

	m, err := service.repo.GetMeetup(context, id)
	if err != nil {
		return nil, err
	}

	m.Title = input.Title
	m.Description = input.Description
	m.VenueName = input.VenueName
	m.Address = input.Address
	if input.City != "" {
		m.City = input.City
	}
	m.Latitude = input.Latitude
	m.Longitude = input.Longitude
	m.GoogleMapsURL = input.GoogleMapsURL
	m.EventDate = input.EventDate
	m.EndTime = input.EndTime
	m.Month = input.Month
	m.Year = input.Year
	m.ImageURL = input.ImageURL

	if err := service.repo.UpdateMeetup(context, m); err != nil {
		return nil, err
	}

	service.logger.Info("meetup_updated", slog.String("meetup_id", m.ID))
	return m, nil
}

// SetPublished flips member visibility for a meetup.
func (service *Service) SetPublished(context context.Context, id string, published bool) (*Meetup, error) {
	m, err := service.repo.SetPublished(context, id, published)
	if err != nil {
		return nil, err
	}

	service.logger.Info("meetup_publish_toggled",
		slog.String("meetup_id", id),
		slog.Bool("published", published),
	)
	return m, nil
}

func (service *Service) DeleteMeetup(context context.Context, id string) error {
	if err := service.repo.DeleteMeetup(context, id); err != nil {
		return err
	}

	service.logger.Warn("meetup_deleted", slog.String("meetup_id", id))
	return nil
}

func validateEvent(input CreateInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.Required(FieldVenueName, input.VenueName).MaxLen(FieldVenueName, input.VenueName, 200)
	validator.Required(FieldAddress, input.Address)
	validator.Custom(FieldEventDate, input.EventDate.IsZero(), "Event date is required")
	validator.Range(FieldMonth, input.Month, 1, 12)
	validator.Range(FieldYear, input.Year, 2000, 2200)
	if input.GoogleMapsURL != nil {
		validator.URL(FieldGoogleMapsURL, *input.GoogleMapsURL)
	}
	if input.ImageURL != nil {
		validator.URL(FieldImageURL, *input.ImageURL)
	}
	return validator.Err()
}

// Copyright (c) 2026 Novella. All rights reserved.

package book

import (
	"context"
	"log/slog"

	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/club/suggestion"
	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/internal/platform/constants"
	"github.com/novellaclub/novella/internal/platform/validate"
	"github.com/novellaclub/novella/pkg/slug"
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

func (service *Service) ListBooks(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListBooks(context, filter, limit, offset)
}

func (service *Service) GetBookBySlug(context context.Context, s string) (*Book, error) {
	return service.repo.GetBookBySlug(context, s)
}

// CreateInput is the admin-provided payload for a curated catalog entry.
type CreateInput struct {
	Title    string
	Author   string
	Synopsis string
	ImageURL *string
	Category period.Category
	Month    int
	Year     int
}

func (service *Service) CreateBook(context context.Context, input CreateInput) (*Book, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.Required(FieldAuthor, input.Author).MaxLen(FieldAuthor, input.Author, 200)
	validator.MinLen(FieldSynopsis, input.Synopsis, constants.SynopsisMinLen).
		MaxLen(FieldSynopsis, input.Synopsis, constants.SynopsisMaxLen)
	validator.OneOf(FieldCategory, string(input.Category), string(period.CategoryFiction), string(period.CategoryNonFiction))
	validator.Range(FieldMonth, input.Month, 1, 12)
	validator.Range(FieldYear, input.Year, 2000, 2200)
	if input.ImageURL != nil {
		validator.URL(FieldImageURL, *input.ImageURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	normalized := period.Normalize(input.Month, input.Year, input.Category)
	b := &Book{
		ID:       uuid.New(),
		Title:    input.Title,
		Author:   input.Author,
		Synopsis: input.Synopsis,
		ImageURL: input.ImageURL,
		Category: input.Category,
		Month:    normalized.Month,
		Year:     normalized.Year,
	}

	if err := service.create(context, b); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.String("book_id", b.ID),
		slog.String("slug", b.Slug),
	)
	return b, nil
}

// PromoteSuggestion copies a winning suggestion into the catalog as the
// period's selected read and returns the new book's ID.
func (service *Service) PromoteSuggestion(context context.Context, s *suggestion.Suggestion) (string, error) {
	b := &Book{
		ID:         uuid.New(),
		Title:      s.Title,
		Author:     s.Author,
		Synopsis:   s.Synopsis,
		ImageURL:   s.ImageURL,
		Category:   s.Category,
		Month:      s.Month,
		Year:       s.Year,
		IsSelected: true,
	}

	if err := service.create(context, b); err != nil {
		return "", err
	}

	service.logger.Info("suggestion_promoted",
		slog.String("suggestion_id", s.ID),
		slog.String("book_id", b.ID),
		slog.String("slug", b.Slug),
	)
	return b.ID, nil
}

// create inserts the book under a slug derived from its title. On a slug
// collision it retries once with the book's short ID appended.
func (service *Service) create(context context.Context, b *Book) error {
	b.Slug = slug.From(b.Title)

	err := service.repo.CreateBook(context, b)
	if apperr.IsCode(err, "CONFLICT") {
		b.Slug = b.Slug + "-" + b.ID[:8]
		err = service.repo.CreateBook(context, b)
	}
	return err
}

// UpdateInput is the admin-provided payload for editing a catalog entry. The
// slug and the promotion period stay fixed after creation.
type UpdateInput struct {
	Title    string
	Author   string
	Synopsis string
	ImageURL *string
}

func (service *Service) UpdateBook(context context.Context, id string, input UpdateInput) (*Book, error) {
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

	b, err := service.repo.GetBook(context, id)
	if err != nil {
		return nil, err
	}

	b.Title = input.Title
	b.Author = input.Author
	b.Synopsis = input.Synopsis
	b.ImageURL = input.ImageURL

	if err := service.repo.UpdateBook(context, b); err != nil {
		return nil, err
	}

	service.logger.Info("book_updated", slog.String("book_id", b.ID))
	return b, nil
}

func (service *Service) DeleteBook(context context.Context, id string) error {
	if err := service.repo.DeleteBook(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", id))
	return nil
}

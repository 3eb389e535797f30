// Copyright (c) 2026 Novella. All rights reserved.

package book

import (
	"time"

	"github.com/novellaclub/novella/internal/club/period"
)

// Book is a catalog entry. Most rows arrive by promotion of a winning
// suggestion; admins can also curate entries directly.
type Book struct {
	ID         string          `json:"id"`
	Slug       string          `json:"slug"`
	Title      string          `json:"title"`
	Author     string          `json:"author"`
	Synopsis   string          `json:"synopsis"`
	ImageURL   *string         `json:"image_url"`
	Category   period.Category `json:"category"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	IsSelected bool            `json:"is_selected"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  *time.Time      `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated catalog search.
type Filter struct {
	Query    string // ILIKE search against title and author
	Category period.Category
	Selected *bool
}

// Global field names for validation
const (
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldSynopsis = "synopsis"
	FieldImageURL = "image_url"
	FieldCategory = "category"
	FieldMonth    = "month"
	FieldYear     = "year"
)

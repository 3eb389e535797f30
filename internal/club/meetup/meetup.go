// Copyright (c) 2026 Novella. All rights reserved.

// Package meetup manages the club's in-person events.
//
// Admins curate the schedule; members only see rows whose published flag is
// set, so a draft can be prepared long before the event is announced.
package meetup

import "time"

// Meetup is one scheduled club event.
type Meetup struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	VenueName     string     `json:"venue_name"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	GoogleMapsURL *string    `json:"google_maps_url"`
	EventDate     time.Time  `json:"event_date"`
	EndTime       *time.Time `json:"end_time"`
	Month         int        `json:"month"`
	Year          int        `json:"year"`
	ImageURL      *string    `json:"image_url"`
	IsPublished   bool       `json:"is_published"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Global field names for validation
const (
	FieldTitle         = "title"
	FieldVenueName     = "venue_name"
	FieldAddress       = "address"
	FieldEventDate     = "event_date"
	FieldMonth         = "month"
	FieldYear          = "year"
	FieldGoogleMapsURL = "google_maps_url"
	FieldImageURL      = "image_url"
)

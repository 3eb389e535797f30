// Copyright (c) 2026 Novella. All rights reserved.

// Package suggestion implements the nomination ledger.
//
// Members nominate books into the period their portal is open for, capped by
// a per-member quota, and the package serves the leaderboard that voting
// renders. Vote counts are stored denormalized on the suggestion row and are
// only ever changed by the voting engine's atomic increment.
package suggestion

import (
	"time"

	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/internal/platform/constants"
)

// Suggestion is a member's nomination of a book for one reading period.
type Suggestion struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Synopsis  string          `json:"synopsis"`
	ImageURL  *string         `json:"image_url"`
	Category  period.Category `json:"category"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	VoteCount int             `json:"vote_count"`
	CreatedAt time.Time       `json:"created_at"`
}

// Period returns the normalized period the suggestion competes in.
func (s *Suggestion) Period() period.Period {
	return period.Period{Month: s.Month, Year: s.Year}
}

// Global field names for validation
const (
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldSynopsis = "synopsis"
	FieldImageURL = "image_url"
)

// Machine-readable suggestion error codes.
const (
	CodeNominationClosed = "NOMINATION_CLOSED"
	CodeQuotaExceeded    = "QUOTA_EXCEEDED"
)

var (
	// ErrNominationClosed is returned when no portal with an open nomination
	// gate covers the requested period.
	ErrNominationClosed = apperr.BadRequest(CodeNominationClosed, "Nominations are not open for this period")

	// ErrQuotaExceeded is returned when a member has already used all
	// nominations for the period.
	ErrQuotaExceeded = apperr.BadRequest(CodeQuotaExceeded, "Nomination limit reached for this period")
)

// Quota is the number of nominations a member may submit per period and category.
const Quota = constants.SuggestionQuotaPerPeriod

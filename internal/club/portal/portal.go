// Copyright (c) 2026 Novella. All rights reserved.

// Package portal manages the per-period nomination and voting gates.
//
// A portal row exists per (month, year, category). At most one of its two
// flags is open at a time: opening one closes the other inside the same
// storage update, so no interleaving of requests can observe both open.
package portal

import (
	"time"

	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/platform/apperr"
)

// PortalStatus is the state of the nomination/voting gates for one period.
type PortalStatus struct {
	ID             string          `json:"id"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	Category       period.Category `json:"category"`
	NominationOpen bool            `json:"nomination_open"`
	VotingOpen     bool            `json:"voting_open"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Period returns the normalized period the portal governs.
func (p *PortalStatus) Period() period.Period {
	return period.Period{Month: p.Month, Year: p.Year}
}

// Global field names for validation
const (
	FieldMonth    = "month"
	FieldYear     = "year"
	FieldCategory = "category"
)

// Machine-readable portal error codes.
const (
	CodePortalExists = "PORTAL_EXISTS"
)

// ErrPortalExists is returned when a portal already covers the requested period.
var ErrPortalExists = apperr.BadRequest(CodePortalExists, "A portal for this period already exists")

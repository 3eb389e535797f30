// Copyright (c) 2026 Novella. All rights reserved.

// Package period implements the reading-period calendar of the club.
//
// # Overview
//
// Fiction runs on monthly periods. Non-fiction runs on bi-monthly periods
// that always start on an odd month (Jan/Feb, Mar/Apr, ... Nov/Dec), so any
// month inside a pair normalizes to the pair's start month. All suggestion
// and portal rows are keyed by the normalized (month, year) of their period.
package period

import "time"

// Category is the reading track a period belongs to.
type Category string

const (
	CategoryFiction    Category = "fiction"
	CategoryNonFiction Category = "non_fiction"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryFiction || c == CategoryNonFiction
}

// Categories lists all known categories.
func Categories() []Category {
	return []Category{CategoryFiction, CategoryNonFiction}
}

// Period is a normalized (month, year) pair. For non-fiction the month is
// always the odd start month of the bi-monthly pair.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Valid reports whether the period has a calendar month.
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12
}

// Normalize maps any calendar (month, year) onto its period start.
//
// Fiction periods are the month itself. Non-fiction periods start on odd
// months, so an even month folds back onto the preceding odd month:
// Normalize(3, 2025) and Normalize(4, 2025) are both {3, 2025}.
// Normalizing is idempotent.
func Normalize(month, year int, category Category) Period {
	if category == CategoryNonFiction && month%2 == 0 {
		month = month - 1
	}
	return Period{Month: month, Year: year}
}

// Current returns the period containing the given instant.
func Current(category Category, now time.Time) Period {
	return Normalize(int(now.Month()), now.Year(), category)
}

// Next returns the period immediately after p.
//
// Fiction advances one month, non-fiction two. December (and the Nov/Dec
// pair) rolls over into January of the following year.
func Next(p Period, category Category) Period {
	step := 1
	if category == CategoryNonFiction {
		step = 2
	}

	month := p.Month + step
	year := p.Year
	if month > 12 {
		month -= 12
		year++
	}

	return Normalize(month, year, category)
}

// Contains reports whether the calendar (month, year) falls inside period p.
func Contains(p Period, month, year int, category Category) bool {
	return Normalize(month, year, category) == p
}

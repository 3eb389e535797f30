// Copyright (c) 2026 Novella. All rights reserved.

package book

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/novellaclub/novella/internal/club/period"
)

/*
TestListFilter renders the optional catalog filters with schema column
identifiers and sequential placeholders.
*/
func TestListFilter(t *testing.T) {
	selected := true
	clause, args := listFilter(Filter{
		Query:    "sea",
		Category: period.CategoryFiction,
		Selected: &selected,
	}, 1)

	assert.Equal(t, ` AND (title ILIKE $1 OR author ILIKE $1) AND category = $2 AND isselected = $3`, clause)
	assert.Equal(t, []any{"%sea%", period.CategoryFiction, true}, args)
}

/*
TestListFilter_Empty adds nothing when no filter is set.
*/
func TestListFilter_Empty(t *testing.T) {
	clause, args := listFilter(Filter{}, 1)

	assert.Empty(t, clause)
	assert.Empty(t, args)
}

/*
TestListFilter_PlaceholderOffset keeps numbering aligned when earlier query
arguments already occupy placeholders.
*/
func TestListFilter_PlaceholderOffset(t *testing.T) {
	clause, args := listFilter(Filter{Category: period.CategoryNonFiction}, 3)

	assert.Equal(t, ` AND category = $3`, clause)
	assert.Equal(t, []any{period.CategoryNonFiction}, args)
}

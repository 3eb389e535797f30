// Copyright (c) 2026 Novella. All rights reserved.

package suggestion

import (
	"context"

	"github.com/novellaclub/novella/internal/club/period"
)

type Repository interface {
	// ListForPeriod returns the leaderboard for one period: vote count
	// descending, earlier submissions first among ties.
	ListForPeriod(context context.Context, p period.Period, category period.Category) ([]*Suggestion, error)
	GetSuggestion(context context.Context, id string) (*Suggestion, error)
	CountForUser(context context.Context, userID string, p period.Period, category period.Category) (int, error)
	CreateSuggestion(context context.Context, s *Suggestion) error
	DeleteSuggestion(context context.Context, id string) error
}

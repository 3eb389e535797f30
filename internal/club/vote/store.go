// Copyright (c) 2026 Novella. All rights reserved.

package vote

import "context"

type Repository interface {
	// CastVote records the ballot and bumps the suggestion's counter in one
	// transaction, returning the new vote count. A duplicate ballot for the
	// same (user, suggestion) pair returns [ErrAlreadyVoted].
	CastVote(context context.Context, v *Vote) (int, error)
}

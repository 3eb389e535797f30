// Copyright (c) 2026 Novella. All rights reserved.

package vote

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novellaclub/novella/internal/platform/database/schema"
	"github.com/novellaclub/novella/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CastVote inserts the ballot and increments the suggestion's counter inside
// one transaction. The counter update runs against the stored value, so
// concurrent ballots for the same suggestion serialize on the row instead of
// losing increments, and the unique (user, suggestion) constraint rejects a
// member's second ballot before the counter is touched.
func (repository *PostgresRepository) CastVote(context context.Context, v *Vote) (int, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_cast_vote")
	}
	defer tx.Rollback(context)

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s
	`,
		schema.ClubVote.Table,
		schema.ClubVote.ID, schema.ClubVote.UserID, schema.ClubVote.SuggestionID, schema.ClubVote.CreatedAt,
		schema.ClubVote.CreatedAt,
	)
	if err := tx.QueryRow(context, insert, v.ID, v.UserID, v.SuggestionID).Scan(&v.CreatedAt); err != nil {
		if dberr.IsUniqueViolation(err) {
			return 0, ErrAlreadyVoted
		}
		return 0, dberr.Wrap(err, "insert_vote")
	}

	increment := fmt.Sprintf(`
		UPDATE %s SET %s = %s + 1
		WHERE %s = $1
		RETURNING %s
	`,
		schema.ClubSuggestion.Table,
		schema.ClubSuggestion.VoteCount, schema.ClubSuggestion.VoteCount,
		schema.ClubSuggestion.ID,
		schema.ClubSuggestion.VoteCount,
	)
	var count int
	if err := tx.QueryRow(context, increment, v.SuggestionID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "increment_vote_count")
	}

	if err := tx.Commit(context); err != nil {
		return 0, dberr.Wrap(err, "commit_cast_vote")
	}
	return count, nil
}

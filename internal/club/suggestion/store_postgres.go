// Copyright (c) 2026 Novella. All rights reserved.

package suggestion

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/platform/database/schema"
	"github.com/novellaclub/novella/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListForPeriod(context context.Context, p period.Period, category period.Category) ([]*Suggestion, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3
		ORDER BY %s DESC, %s ASC
	`,
		schema.ClubSuggestion.ID, schema.ClubSuggestion.UserID, schema.ClubSuggestion.Title,
		schema.ClubSuggestion.Author, schema.ClubSuggestion.Synopsis, schema.ClubSuggestion.ImageURL,
		schema.ClubSuggestion.Category, schema.ClubSuggestion.Month, schema.ClubSuggestion.Year,
		schema.ClubSuggestion.VoteCount, schema.ClubSuggestion.CreatedAt,
		schema.ClubSuggestion.Table,
		schema.ClubSuggestion.Month, schema.ClubSuggestion.Year, schema.ClubSuggestion.Category,
		schema.ClubSuggestion.VoteCount, schema.ClubSuggestion.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, p.Month, p.Year, category)
	if err != nil {
		return nil, dberr.Wrap(err, "list_suggestions")
	}
	defer rows.Close()

	var suggestions []*Suggestion
	for rows.Next() {
		s := &Suggestion{}
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Title, &s.Author, &s.Synopsis, &s.ImageURL,
			&s.Category, &s.Month, &s.Year, &s.VoteCount, &s.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_suggestion")
		}
		suggestions = append(suggestions, s)
	}

	return suggestions, nil
}

func (repository *PostgresRepository) GetSuggestion(context context.Context, id string) (*Suggestion, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.ClubSuggestion.ID, schema.ClubSuggestion.UserID, schema.ClubSuggestion.Title,
		schema.ClubSuggestion.Author, schema.ClubSuggestion.Synopsis, schema.ClubSuggestion.ImageURL,
		schema.ClubSuggestion.Category, schema.ClubSuggestion.Month, schema.ClubSuggestion.Year,
		schema.ClubSuggestion.VoteCount, schema.ClubSuggestion.CreatedAt,
		schema.ClubSuggestion.Table, schema.ClubSuggestion.ID,
	)
	s := &Suggestion{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&s.ID, &s.UserID, &s.Title, &s.Author, &s.Synopsis, &s.ImageURL,
		&s.Category, &s.Month, &s.Year, &s.VoteCount, &s.CreatedAt,
	)

	return s, dberr.Wrap(err, "get_suggestion")
}

func (repository *PostgresRepository) CountForUser(context context.Context, userID string, p period.Period, category period.Category) (int, error) {
	query := fmt.Sprintf(`
		SELECT count(*) FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3 AND %s = $4
	`,
		schema.ClubSuggestion.Table,
		schema.ClubSuggestion.UserID, schema.ClubSuggestion.Month,
		schema.ClubSuggestion.Year, schema.ClubSuggestion.Category,
	)

	var total int
	if err := repository.db.QueryRow(context, query, userID, p.Month, p.Year, category).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_suggestions_for_user")
	}

	return total, nil
}

func (repository *PostgresRepository) CreateSuggestion(context context.Context, s *Suggestion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, NOW())
		RETURNING %s, %s
	`,
		schema.ClubSuggestion.Table,
		schema.ClubSuggestion.ID, schema.ClubSuggestion.UserID, schema.ClubSuggestion.Title,
		schema.ClubSuggestion.Author, schema.ClubSuggestion.Synopsis, schema.ClubSuggestion.ImageURL,
		schema.ClubSuggestion.Category, schema.ClubSuggestion.Month, schema.ClubSuggestion.Year,
		schema.ClubSuggestion.VoteCount, schema.ClubSuggestion.CreatedAt,
		schema.ClubSuggestion.VoteCount, schema.ClubSuggestion.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.ID, s.UserID, s.Title, s.Author, s.Synopsis, s.ImageURL, s.Category, s.Month, s.Year,
	).Scan(&s.VoteCount, &s.CreatedAt)
	return dberr.Wrap(err, "create_suggestion")
}

func (repository *PostgresRepository) DeleteSuggestion(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ClubSuggestion.Table, schema.ClubSuggestion.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_suggestion")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

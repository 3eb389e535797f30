// Copyright (c) 2026 Novella. All rights reserved.

package book

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/internal/platform/database/schema"
	"github.com/novellaclub/novella/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		schema.ClubBook.ID, schema.ClubBook.Slug, schema.ClubBook.Title, schema.ClubBook.Author,
		schema.ClubBook.Synopsis, schema.ClubBook.ImageURL, schema.ClubBook.Category,
		schema.ClubBook.Month, schema.ClubBook.Year, schema.ClubBook.IsSelected,
		schema.ClubBook.CreatedAt, schema.ClubBook.UpdatedAt,
		schema.ClubBook.Table, schema.ClubBook.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`, schema.ClubBook.Table, schema.ClubBook.DeletedAt)

	filterSQL, filterArgs := listFilter(f, 1)
	query += filterSQL
	countQuery += filterSQL

	countArgs := filterArgs
	args := make([]any, 0, len(filterArgs)+2)
	args = append(args, filterArgs...)

	query += fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $", schema.ClubBook.Year, schema.ClubBook.Month) +
		itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b := &Book{}
		if err := rows.Scan(
			&b.ID, &b.Slug, &b.Title, &b.Author, &b.Synopsis, &b.ImageURL,
			&b.Category, &b.Month, &b.Year, &b.IsSelected, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, total, nil
}

func (repository *PostgresRepository) GetBook(context context.Context, id string) (*Book, error) {
	return repository.getByColumn(context, schema.ClubBook.ID, id)
}

func (repository *PostgresRepository) GetBookBySlug(context context.Context, slug string) (*Book, error) {
	return repository.getByColumn(context, schema.ClubBook.Slug, slug)
}

func (repository *PostgresRepository) getByColumn(context context.Context, column string, value string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.ClubBook.ID, schema.ClubBook.Slug, schema.ClubBook.Title, schema.ClubBook.Author,
		schema.ClubBook.Synopsis, schema.ClubBook.ImageURL, schema.ClubBook.Category,
		schema.ClubBook.Month, schema.ClubBook.Year, schema.ClubBook.IsSelected,
		schema.ClubBook.CreatedAt, schema.ClubBook.UpdatedAt,
		schema.ClubBook.Table, column, schema.ClubBook.DeletedAt,
	)
	b := &Book{}

	err := repository.db.QueryRow(context, query, value).Scan(
		&b.ID, &b.Slug, &b.Title, &b.Author, &b.Synopsis, &b.ImageURL,
		&b.Category, &b.Month, &b.Year, &b.IsSelected, &b.CreatedAt, &b.UpdatedAt,
	)

	return b, dberr.Wrap(err, "get_book")
}

func (repository *PostgresRepository) CreateBook(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.ClubBook.Table,
		schema.ClubBook.ID, schema.ClubBook.Slug, schema.ClubBook.Title, schema.ClubBook.Author,
		schema.ClubBook.Synopsis, schema.ClubBook.ImageURL, schema.ClubBook.Category,
		schema.ClubBook.Month, schema.ClubBook.Year, schema.ClubBook.IsSelected,
		schema.ClubBook.CreatedAt, schema.ClubBook.UpdatedAt,
		schema.ClubBook.CreatedAt, schema.ClubBook.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		b.ID, b.Slug, b.Title, b.Author, b.Synopsis, b.ImageURL, b.Category, b.Month, b.Year, b.IsSelected,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("A book with this slug already exists")
	}
	return dberr.Wrap(err, "create_book")
}

func (repository *PostgresRepository) UpdateBook(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.ClubBook.Table,
		schema.ClubBook.Title, schema.ClubBook.Author, schema.ClubBook.Synopsis, schema.ClubBook.ImageURL,
		schema.ClubBook.UpdatedAt,
		schema.ClubBook.ID, schema.ClubBook.DeletedAt,
		schema.ClubBook.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, b.ID, b.Title, b.Author, b.Synopsis, b.ImageURL).Scan(&b.UpdatedAt)
	return dberr.Wrap(err, "update_book")
}

func (repository *PostgresRepository) DeleteBook(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.ClubBook.Table, schema.ClubBook.DeletedAt, schema.ClubBook.ID, schema.ClubBook.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// listFilter renders the optional WHERE clauses for f with placeholder
// numbering starting at next. Column identifiers come from the schema
// definition like every other query in this file.
func listFilter(f Filter, next int) (string, []any) {
	var clauses string
	var args []any

	appendClause := func(clause string, value any) {
		clauses += fmt.Sprintf(clause, "$"+itos(next+len(args)))
		args = append(args, value)
	}

	if f.Query != "" {
		appendClause(
			` AND (`+schema.ClubBook.Title+` ILIKE %[1]s OR `+schema.ClubBook.Author+` ILIKE %[1]s)`,
			"%"+f.Query+"%",
		)
	}
	if f.Category != "" {
		appendClause(` AND `+schema.ClubBook.Category+` = %s`, f.Category)
	}
	if f.Selected != nil {
		appendClause(` AND `+schema.ClubBook.IsSelected+` = %s`, *f.Selected)
	}

	return clauses, args
}

func itos(i int) string {
	return strconv.Itoa(i)
}

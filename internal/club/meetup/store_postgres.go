// Copyright (c) 2026 Novella. All rights reserved.

package meetup

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
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

func (repository *PostgresRepository) ListMeetups(context context.Context, publishedOnly bool) ([]*Meetup, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`,
		strings.Join(schema.ClubMeetup.Columns(), ", "), schema.ClubMeetup.Table,
	)
	if publishedOnly {
		query += fmt.Sprintf(` WHERE %s = TRUE`, schema.ClubMeetup.IsPublished)
	}
	query += fmt.Sprintf(` ORDER BY %s DESC`, schema.ClubMeetup.EventDate)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_meetups")
	}
	defer rows.Close()

	var meetups []*Meetup
	for rows.Next() {
		m := &Meetup{}
		if err := scanMeetup(rows, m); err != nil {
			return nil, dberr.Wrap(err, "scan_meetup")
		}
		meetups = append(meetups, m)
	}

	return meetups, nil
}

func (repository *PostgresRepository) GetMeetup(context context.Context, id string) (*Meetup, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.ClubMeetup.Columns(), ", "), schema.ClubMeetup.Table, schema.ClubMeetup.ID,
	)

	m := &Meetup{}
	err := scanMeetup(repository.db.QueryRow(context, query, id), m)
	return m, dberr.Wrap(err, "get_meetup")
}

func (repository *PostgresRepository) CreateMeetup(context context.Context, m *Meetup) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.ClubMeetup.Table,
		strings.Join(schema.ClubMeetup.Columns(), ", "),
		schema.ClubMeetup.CreatedAt, schema.ClubMeetup.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.ID, m.Title, m.Description, m.VenueName, m.Address, m.City,
		m.Latitude, m.Longitude, m.GoogleMapsURL, m.EventDate, m.EndTime,
		m.Month, m.Year, m.ImageURL, m.IsPublished,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return dberr.Wrap(err, "create_meetup")
}

func (repository *PostgresRepository) UpdateMeetup(context context.Context, m *Meetup) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
		    %s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.ClubMeetup.Table,
		schema.ClubMeetup.Title, schema.ClubMeetup.Description, schema.ClubMeetup.VenueName,
		schema.ClubMeetup.Address, schema.ClubMeetup.City, schema.ClubMeetup.Latitude,
		schema.ClubMeetup.Longitude, schema.ClubMeetup.GoogleMapsURL, schema.ClubMeetup.EventDate,
		schema.ClubMeetup.EndTime, schema.ClubMeetup.Month, schema.ClubMeetup.Year,
		schema.ClubMeetup.ImageURL, schema.ClubMeetup.UpdatedAt,
		schema.ClubMeetup.ID,
		schema.ClubMeetup.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.ID, m.Title, m.Description, m.VenueName, m.Address, m.City,
		m.Latitude, m.Longitude, m.GoogleMapsURL, m.EventDate, m.EndTime,
		m.Month, m.Year, m.ImageURL,
	).Scan(&m.UpdatedAt)
	return dberr.Wrap(err, "update_meetup")
}

func (repository *PostgresRepository) SetPublished(context context.Context, id string, published bool) (*Meetup, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.ClubMeetup.Table,
		schema.ClubMeetup.IsPublished, schema.ClubMeetup.UpdatedAt,
		schema.ClubMeetup.ID,
		strings.Join(schema.ClubMeetup.Columns(), ", "),
	)

	m := &Meetup{}
	err := scanMeetup(repository.db.QueryRow(context, query, id, published), m)
	return m, dberr.Wrap(err, "publish_meetup")
}

func (repository *PostgresRepository) DeleteMeetup(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ClubMeetup.Table, schema.ClubMeetup.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_meetup")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// scanMeetup reads one row in the Columns() order.
func scanMeetup(row pgx.Row, m *Meetup) error {
	return row.Scan(
		&m.ID, &m.Title, &m.Description, &m.VenueName, &m.Address, &m.City,
		&m.Latitude, &m.Longitude, &m.GoogleMapsURL, &m.EventDate, &m.EndTime,
		&m.Month, &m.Year, &m.ImageURL, &m.IsPublished, &m.CreatedAt, &m.UpdatedAt,
	)
}

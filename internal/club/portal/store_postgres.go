// Copyright (c) 2026 Novella. All rights reserved.

package portal

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

func (repository *PostgresRepository) ListPortals(context context.Context) ([]*PortalStatus, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC, %s DESC, %s ASC
	`,
		schema.ClubPortalStatus.ID, schema.ClubPortalStatus.Month, schema.ClubPortalStatus.Year,
		schema.ClubPortalStatus.Category, schema.ClubPortalStatus.NominationOpen, schema.ClubPortalStatus.VotingOpen,
		schema.ClubPortalStatus.CreatedAt, schema.ClubPortalStatus.UpdatedAt,
		schema.ClubPortalStatus.Table,
		schema.ClubPortalStatus.Year, schema.ClubPortalStatus.Month, schema.ClubPortalStatus.Category,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_portals")
	}
	defer rows.Close()

	var portals []*PortalStatus
	for rows.Next() {
		p := &PortalStatus{}
		if err := rows.Scan(&p.ID, &p.Month, &p.Year, &p.Category, &p.NominationOpen, &p.VotingOpen, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_portal")
		}
		portals = append(portals, p)
	}

	return portals, nil
}

func (repository *PostgresRepository) GetPortal(context context.Context, id string) (*PortalStatus, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.ClubPortalStatus.ID, schema.ClubPortalStatus.Month, schema.ClubPortalStatus.Year,
		schema.ClubPortalStatus.Category, schema.ClubPortalStatus.NominationOpen, schema.ClubPortalStatus.VotingOpen,
		schema.ClubPortalStatus.CreatedAt, schema.ClubPortalStatus.UpdatedAt,
		schema.ClubPortalStatus.Table, schema.ClubPortalStatus.ID,
	)
	p := &PortalStatus{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&p.ID, &p.Month, &p.Year, &p.Category, &p.NominationOpen, &p.VotingOpen, &p.CreatedAt, &p.UpdatedAt,
	)

	return p, dberr.Wrap(err, "get_portal")
}

func (repository *PostgresRepository) GetPortalForPeriod(context context.Context, per period.Period, category period.Category) (*PortalStatus, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3
	`,
		schema.ClubPortalStatus.ID, schema.ClubPortalStatus.Month, schema.ClubPortalStatus.Year,
		schema.ClubPortalStatus.Category, schema.ClubPortalStatus.NominationOpen, schema.ClubPortalStatus.VotingOpen,
		schema.ClubPortalStatus.CreatedAt, schema.ClubPortalStatus.UpdatedAt,
		schema.ClubPortalStatus.Table,
		schema.ClubPortalStatus.Month, schema.ClubPortalStatus.Year, schema.ClubPortalStatus.Category,
	)
	p := &PortalStatus{}

	err := repository.db.QueryRow(context, query, per.Month, per.Year, category).Scan(
		&p.ID, &p.Month, &p.Year, &p.Category, &p.NominationOpen, &p.VotingOpen, &p.CreatedAt, &p.UpdatedAt,
	)

	return p, dberr.Wrap(err, "get_portal_for_period")
}

func (repository *PostgresRepository) CreatePortal(context context.Context, status *PortalStatus) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, false, false, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.ClubPortalStatus.Table,
		schema.ClubPortalStatus.ID, schema.ClubPortalStatus.Month, schema.ClubPortalStatus.Year,
		schema.ClubPortalStatus.Category, schema.ClubPortalStatus.NominationOpen, schema.ClubPortalStatus.VotingOpen,
		schema.ClubPortalStatus.CreatedAt, schema.ClubPortalStatus.UpdatedAt,
		schema.ClubPortalStatus.CreatedAt, schema.ClubPortalStatus.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, status.ID, status.Month, status.Year, status.Category).
		Scan(&status.CreatedAt, &status.UpdatedAt)
	if err != nil {
		// unique(month, year, category) guards the one-portal-per-period rule
		if dberr.IsUniqueViolation(err) {
			return ErrPortalExists
		}
		return dberr.Wrap(err, "create_portal")
	}

	return nil
}

func (repository *PostgresRepository) SetNominationOpen(context context.Context, id string, open bool) (*PortalStatus, error) {
	// Opening nomination force-closes voting inside the same UPDATE, so
	// both gates can never be observed open together.
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2,
		    %s = CASE WHEN $2 THEN false ELSE %s END,
		    %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s, %s, %s, %s, %s, %s
	`,
		schema.ClubPortalStatus.Table,
		schema.ClubPortalStatus.NominationOpen,
		schema.ClubPortalStatus.VotingOpen, schema.ClubPortalStatus.VotingOpen,
		schema.ClubPortalStatus.UpdatedAt,
		schema.ClubPortalStatus.ID,
		schema.ClubPortalStatus.ID, schema.ClubPortalStatus.Month, schema.ClubPortalStatus.Year,
		schema.ClubPortalStatus.Category, schema.ClubPortalStatus.NominationOpen, schema.ClubPortalStatus.VotingOpen,
		schema.ClubPortalStatus.CreatedAt, schema.ClubPortalStatus.UpdatedAt,
	)

	p := &PortalStatus{}
	err := repository.db.QueryRow(context, query, id, open).Scan(
		&p.ID, &p.Month, &p.Year, &p.Category, &p.NominationOpen, &p.VotingOpen, &p.CreatedAt, &p.UpdatedAt,
	)

	return p, dberr.Wrap(err, "set_nomination_open")
}

func (repository *PostgresRepository) SetVotingOpen(context context.Context, id string, open bool) (*PortalStatus, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2,
		    %s = CASE WHEN $2 THEN false ELSE %s END,
		    %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s, %s, %s, %s, %s, %s
	`,
		schema.ClubPortalStatus.Table,
		schema.ClubPortalStatus.VotingOpen,
		schema.ClubPortalStatus.NominationOpen, schema.ClubPortalStatus.NominationOpen,
		schema.ClubPortalStatus.UpdatedAt,
		schema.ClubPortalStatus.ID,
		schema.ClubPortalStatus.ID, schema.ClubPortalStatus.Month, schema.ClubPortalStatus.Year,
		schema.ClubPortalStatus.Category, schema.ClubPortalStatus.NominationOpen, schema.ClubPortalStatus.VotingOpen,
		schema.ClubPortalStatus.CreatedAt, schema.ClubPortalStatus.UpdatedAt,
	)

	p := &PortalStatus{}
	err := repository.db.QueryRow(context, query, id, open).Scan(
		&p.ID, &p.Month, &p.Year, &p.Category, &p.NominationOpen, &p.VotingOpen, &p.CreatedAt, &p.UpdatedAt,
	)

	return p, dberr.Wrap(err, "set_voting_open")
}

func (repository *PostgresRepository) ClosePortalForPeriod(context context.Context, per period.Period, category period.Category) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = false, %s = false, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s = $3
	`,
		schema.ClubPortalStatus.Table,
		schema.ClubPortalStatus.NominationOpen, schema.ClubPortalStatus.VotingOpen, schema.ClubPortalStatus.UpdatedAt,
		schema.ClubPortalStatus.Month, schema.ClubPortalStatus.Year, schema.ClubPortalStatus.Category,
	)

	cmd, err := repository.db.Exec(context, query, per.Month, per.Year, category)
	if err != nil {
		return dberr.Wrap(err, "close_portal_for_period")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

// Package jobsite gives read access to job site addresses, scoped by company.
package jobsite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// JobSite is a project location owned by a company.
type JobSite struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
}

// SQLRepository stores job sites in duckdb.
type SQLRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (r *SQLRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS job_sites (
			id VARCHAR PRIMARY KEY,
			company_id VARCHAR NOT NULL,
			name VARCHAR,
			address VARCHAR
		);
	`)

	return err
}

// Save inserts or replaces job sites.
func (r *SQLRepository) Save(ctx context.Context, sites []JobSite) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() { _ = tx.Rollback() }()

	for _, s := range sites {
		if s.ID == "" || s.CompanyID == "" {
			return fmt.Errorf("job site %q: id and company_id are required", s.ID)
		}

		query, args, err := r.sb.
			Insert("job_sites").
			Options("OR REPLACE").
			Columns("id", "company_id", "name", "address").
			Values(s.ID, s.CompanyID, s.Name, s.Address).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("saving job site %s: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

// Address returns the address of the job site, false when the site does not
// exist for companyID or has no address.
func (r *SQLRepository) Address(ctx context.Context, jobSiteID, companyID string) (string, bool, error) {
	query, args, err := r.sb.
		Select("address").
		From("job_sites").
		Where(sq.Eq{"id": jobSiteID, "company_id": companyID}).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var address sql.NullString

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&address)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("querying job site %s: %w", jobSiteID, err)
	}

	a := strings.TrimSpace(address.String)

	return a, a != "", nil
}

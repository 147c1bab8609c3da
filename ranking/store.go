// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package ranking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// SQLPreferenceStore keeps user and company preferences in duckdb.
type SQLPreferenceStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewSQLPreferenceStore(db *sql.DB) *SQLPreferenceStore {
	return &SQLPreferenceStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (s *SQLPreferenceStore) CreateSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS user_settings (
			user_id VARCHAR PRIMARY KEY,
			supplier_preference VARCHAR NOT NULL
		);

		CREATE TABLE IF NOT EXISTS company_settings (
			company_id VARCHAR PRIMARY KEY,
			supplier_preference VARCHAR NOT NULL
		);
	`)

	return err
}

func (s *SQLPreferenceStore) UserPreference(ctx context.Context, userID string) (string, bool, error) {
	return s.get(ctx, "user_settings", "user_id", userID)
}

func (s *SQLPreferenceStore) CompanyPreference(ctx context.Context, companyID string) (string, bool, error) {
	return s.get(ctx, "company_settings", "company_id", companyID)
}

func (s *SQLPreferenceStore) SetUserPreference(ctx context.Context, userID string, p Preference) error {
	return s.set(ctx, "user_settings", "user_id", userID, p)
}

func (s *SQLPreferenceStore) SetCompanyPreference(ctx context.Context, companyID string, p Preference) error {
	return s.set(ctx, "company_settings", "company_id", companyID, p)
}

func (s *SQLPreferenceStore) get(ctx context.Context, table, column, id string) (string, bool, error) {
	query, args, err := s.sb.
		Select("supplier_preference").
		From(table).
		Where(sq.Eq{column: id}).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var raw string

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("querying %s: %w", table, err)
	}

	return raw, true, nil
}

func (s *SQLPreferenceStore) set(ctx context.Context, table, column, id string, p Preference) error {
	query, args, err := s.sb.
		Insert(table).
		Options("OR REPLACE").
		Columns(column, "supplier_preference").
		Values(id, string(p)).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("writing %s: %w", table, err)
	}

	return nil
}

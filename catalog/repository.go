// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jcodagnone/chantier/ranking"
	"github.com/jcodagnone/chantier/supplier"
	"github.com/jcodagnone/chantier/textutil"
)

// Repository runs the ordered, limited match query. tokens are already
// normalized and never empty.
type Repository interface {
	Search(ctx context.Context, tokens []string, st ranking.Strategy, limit int) ([]Product, error)
}

// SQLRepository stores products in duckdb next to their normalized name and
// sku, computed with textutil.Normalize so both sides of the match agree.
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
		CREATE TABLE IF NOT EXISTS products (
			supplier VARCHAR NOT NULL,
			sku VARCHAR NOT NULL,
			name VARCHAR NOT NULL,
			name_norm VARCHAR NOT NULL,
			sku_norm VARCHAR NOT NULL,
			image_url VARCHAR,
			price BIGINT,
			unit VARCHAR,
			category VARCHAR,
			PRIMARY KEY (supplier, sku)
		);
	`)

	return err
}

// SaveProducts inserts or replaces products in a single transaction.
func (r *SQLRepository) SaveProducts(ctx context.Context, products []Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() { _ = tx.Rollback() }()

	for i := range products {
		p := &products[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("product %d (%s): %w", i, p.SKU, err)
		}

		query, args, err := r.sb.
			Insert("products").
			Options("OR REPLACE").
			Columns("supplier", "sku", "name", "name_norm", "sku_norm", "image_url", "price", "unit", "category").
			Values(string(p.Supplier), p.SKU, p.Name, textutil.Normalize(p.Name), textutil.Normalize(p.SKU),
				p.ImageURL, nullablePrice(p.Price), p.Unit, p.Category).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("saving product %s: %w", p.SKU, err)
		}
	}

	return tx.Commit()
}

func nullablePrice(price *int64) any {
	if price == nil {
		return nil
	}

	return *price
}

// Count returns the number of stored products.
func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n)

	return n, err
}

func (r *SQLRepository) Search(ctx context.Context, tokens []string, st ranking.Strategy, limit int) ([]Product, error) {
	if len(tokens) == 0 {
		return nil, errors.New("search needs at least one token")
	}

	b := r.sb.
		Select("name", "sku", "image_url", "price", "unit", "category", "supplier").
		From("products").
		Where(MatchPredicate(tokens))

	query, args, err := ordered(b, tokens, st).Limit(uint64(limit)).ToSql() // #nosec G115 - limit is clamped
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}

	for rows.Next() {
		var (
			p                        Product
			imageURL, unit, category sql.NullString
			price                    sql.NullInt64
			supplierID               string
		)

		if err := rows.Scan(&p.Name, &p.SKU, &imageURL, &price, &unit, &category, &supplierID); err != nil {
			return nil, err
		}

		p.ImageURL = imageURL.String
		p.Unit = unit.String
		p.Category = category.String
		p.Supplier = supplier.Supplier(supplierID)

		if price.Valid {
			p.Price = &price.Int64
		}

		products = append(products, p)
	}

	return products, rows.Err()
}

// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jcodagnone/chantier/spatial"
)

// h3Resolution is the cell size stored next to each geocode, about 5 km² per
// cell, enough to group job sites by neighbourhood.
const h3Resolution = 7

// SQLCache persists geocodes in the `geocodes` table so several processes
// sharing a database file also share resolutions.
type SQLCache struct {
	db *sql.DB
}

// NewSQLCache returns a cache backed by db. Call CreateSchema first.
func NewSQLCache(db *sql.DB) *SQLCache {
	return &SQLCache{db: db}
}

func (c *SQLCache) CreateSchema() error {
	// DuckDB needs to load the spatial extension
	if _, err := c.db.Exec(`INSTALL spatial; LOAD spatial;`); err != nil {
		return fmt.Errorf("loading spatial extension: %w", err)
	}

	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS geocodes (
			cache_key VARCHAR PRIMARY KEY,
			point POINT_2D NOT NULL,
			h3_res7 UBIGINT,
			geocoded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating geocodes table: %w", err)
	}

	return nil
}

func (c *SQLCache) Get(ctx context.Context, key string) (spatial.Point, bool, error) {
	var p spatial.Point

	err := c.db.QueryRowContext(ctx, `SELECT point FROM geocodes WHERE cache_key = ?`, key).Scan(&p)
	if errors.Is(err, sql.ErrNoRows) {
		return spatial.Point{}, false, nil
	}

	if err != nil {
		return spatial.Point{}, false, fmt.Errorf("reading geocode %s: %w", key, err)
	}

	return p, true, nil
}

func (c *SQLCache) Put(ctx context.Context, key string, p spatial.Point) error {
	cell, err := p.Cell(h3Resolution)
	if err != nil {
		return err
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO geocodes (cache_key, point, h3_res7, geocoded_at)
		VALUES (?, ST_Point(?, ?), ?, ?)
	`, key, p.Lng, p.Lat, int64(cell), time.Now())
	if err != nil {
		return fmt.Errorf("storing geocode %s: %w", key, err)
	}

	return nil
}

// Count returns the number of stored geocodes.
func (c *SQLCache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM geocodes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting geocodes: %w", err)
	}

	return n, nil
}

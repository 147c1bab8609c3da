// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package jobsite

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *SQLRepository {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLRepository(db)
	require.NoError(t, repo.CreateSchema())
	require.NoError(t, repo.Save(context.Background(), []JobSite{
		{ID: "js-1", CompanyID: "acme", Name: "Tour A", Address: "1000 rue Sherbrooke Ouest, Montréal"},
		{ID: "js-2", CompanyID: "acme", Name: "Entrepôt", Address: "   "},
		{ID: "js-3", CompanyID: "globex", Name: "Chalet"},
	}))

	return repo
}

func TestAddress(t *testing.T) {
	repo := setupRepository(t)

	tests := []struct {
		name    string
		site    string
		company string
		want    string
		found   bool
	}{
		{"found", "js-1", "acme", "1000 rue Sherbrooke Ouest, Montréal", true},
		{"blank address", "js-2", "acme", "", false},
		{"null address", "js-3", "globex", "", false},
		{"other company", "js-1", "globex", "", false},
		{"unknown", "js-404", "acme", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := repo.Address(context.Background(), tt.site, tt.company)
			require.NoError(t, err)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveRequiresCompany(t *testing.T) {
	repo := setupRepository(t)

	err := repo.Save(context.Background(), []JobSite{{ID: "js-9"}})
	assert.Error(t, err)
}

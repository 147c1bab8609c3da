// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jcodagnone/chantier/catalog"
	"github.com/jcodagnone/chantier/config"
	"github.com/jcodagnone/chantier/search"
	"github.com/jcodagnone/chantier/supplier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Addr: "localhost:0", Mode: "test"},
		DB:     config.DBConfig{Path: filepath.Join(t.TempDir(), "db", "chantier.duckdb")},
		Geocode: config.GeocodeConfig{
			APIKey:    "test-key",
			Country:   "CA",
			Timeout:   time.Second,
			Cache:     config.CacheMemory,
			CacheSize: 16,
		},
		Search: config.SearchConfig{DefaultLimit: 12, MaxLimit: 48, RankedSuppliers: 2},
	}
	require.NoError(t, cfg.Validate())

	return cfg
}

func seededApp(t *testing.T) *app {
	t.Helper()

	cfg := testConfig(t)
	require.NoError(t, seedDatabase(context.Background(), cfg, "testdata/seed.json"))

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	return a
}

func skus(products []catalog.Product) []string {
	ret := make([]string, len(products))
	for i, p := range products {
		ret[i] = p.SKU
	}

	return ret
}

func TestSeedDatabase(t *testing.T) {
	a := seededApp(t)
	ctx := context.Background()

	n, err := a.products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	address, ok, err := a.jobSites.Address(ctx, "js-1", "acme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, address, "Sherbrooke")

	raw, ok, err := a.prefs.CompanyPreference(ctx, "globex")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fastest", raw)
}

func TestSeededSearchCheapest(t *testing.T) {
	a := seededApp(t)

	got, err := a.service.Search(context.Background(),
		search.Tenant{UserID: "u-1", CompanyID: "acme"},
		search.Request{Query: "boite 4x4", Limit: 12})
	require.NoError(t, err)

	// "Autre boite" has no 4x4, the PVC box is cheapest
	want := []string{"WES-BX442", "NED-BX44M", "LUM-BX44"}
	if diff := cmp.Diff(want, skus(got)); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestSeededSearchFastestWithoutCoordinates(t *testing.T) {
	a := seededApp(t)

	// js-3 has no address, so suppliers keep the declared order
	got, err := a.service.Search(context.Background(),
		search.Tenant{UserID: "u-fast", CompanyID: "acme"},
		search.Request{Query: "nmd90 14/2", JobSiteID: "js-3", Limit: 12})
	require.NoError(t, err)

	want := []string{"LUM-NMD142", "NED-NMD142", "WES-NMD142"}
	if diff := cmp.Diff(want, skus(got)); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestSeededNearestBranchWithoutJobSite(t *testing.T) {
	a := seededApp(t)

	branches, ok := a.directory.Branches(supplier.Nedco)
	require.True(t, ok)

	got := a.service.NearestBranch(context.Background(), search.Tenant{UserID: "u-1", CompanyID: "acme"}, "nedco", "")
	require.NotNil(t, got)
	assert.Equal(t, branches[0].Name, got.Name)
	assert.Nil(t, got.DistanceKm)
}

func TestFormatPrice(t *testing.T) {
	price := int64(1234599)
	assert.Equal(t, "12,345.99 $", formatPrice(&price))
	assert.Equal(t, "n/a", formatPrice(nil))
}

// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/jcodagnone/chantier/catalog"
	"github.com/jcodagnone/chantier/config"
	"github.com/jcodagnone/chantier/geocode"
	"github.com/jcodagnone/chantier/jobsite"
	"github.com/jcodagnone/chantier/ranking"
	"github.com/jcodagnone/chantier/search"
	"github.com/jcodagnone/chantier/supplier"
)

// app holds the wired components shared by serve, search and branches.
type app struct {
	db        *sql.DB
	directory *supplier.Directory
	products  *catalog.SQLRepository
	jobSites  *jobsite.SQLRepository
	prefs     *ranking.SQLPreferenceStore
	resolver  *geocode.Resolver
	locator   *supplier.Locator
	service   *search.Service
}

func openDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return db, nil
}

func loadDirectory(cfg *config.Config) (*supplier.Directory, error) {
	if cfg.Branches.File == "" {
		return supplier.DefaultDirectory()
	}

	return supplier.LoadDirectory(cfg.Branches.File)
}

// newApp opens the database, makes sure every table exists and wires the
// search pipeline.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	directory, err := loadDirectory(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading branches: %w", err)
	}

	db, err := openDatabase(cfg.DB.Path)
	if err != nil {
		return nil, err
	}

	a := &app{
		db:        db,
		directory: directory,
		products:  catalog.NewSQLRepository(db),
		jobSites:  jobsite.NewSQLRepository(db),
		prefs:     ranking.NewSQLPreferenceStore(db),
	}

	for _, create := range []func() error{a.products.CreateSchema, a.jobSites.CreateSchema, a.prefs.CreateSchema} {
		if err := create(); err != nil {
			db.Close()

			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	cache, err := newGeocodeCache(cfg, db)
	if err != nil {
		db.Close()

		return nil, err
	}

	a.resolver = geocode.NewResolver(a.jobSites, newGeocoder(ctx, cfg), cache, cfg.Geocode.Timeout)
	a.locator = supplier.NewLocator(directory, a.resolver)
	a.service = search.NewService(
		ranking.NewSelector(a.prefs, a.locator, cfg.Search.RankedSuppliers),
		catalog.NewRanker(a.products, cfg.Search.MaxLimit),
		a.locator,
	)

	return a, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func newGeocodeCache(cfg *config.Config, db *sql.DB) (geocode.Cache, error) {
	if cfg.Geocode.Cache == config.CacheDuckDB {
		cache := geocode.NewSQLCache(db)
		if err := cache.CreateSchema(); err != nil {
			return nil, fmt.Errorf("creating geocode cache: %w", err)
		}

		log.Println("📦 Geocode cache: duckdb")

		return cache, nil
	}

	log.Printf("📦 Geocode cache: memory (%d entries)", cfg.Geocode.CacheSize)

	return geocode.NewMemoryCache(cfg.Geocode.CacheSize, cfg.Geocode.CacheTTL), nil
}

// newGeocoder looks for an API key in the configuration, then in
// GOOGLE_MAPS_API_KEY, then through Application Default Credentials. Without
// one, job sites are never located and "fastest" keeps the default order.
func newGeocoder(ctx context.Context, cfg *config.Config) geocode.Geocoder {
	apiKey := cfg.Geocode.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	}

	if apiKey == "" {
		log.Println("GOOGLE_MAPS_API_KEY is not set. Attempting to retrieve via ADC...")

		var err error

		apiKey, err = geocode.APIKeyFromADC(ctx, cfg.Geocode.ADCProject, cfg.Geocode.ADCKeyName)
		if err != nil {
			log.Printf("⚠️  Failed to retrieve API key via ADC: %v", err)
			log.Println("⚠️  Geocoding disabled, supplier distance ranking will use the default order")

			return geocode.Disabled{Reason: "no Google Maps API key"}
		}

		log.Println("✅ Successfully retrieved Google Maps API Key via ADC")
	}

	log.Printf("📍 Geocoding: Google Maps (country %s)", cfg.Geocode.Country)

	opts := geocode.GoogleMapsOptions{
		APIKey:    apiKey,
		Country:   cfg.Geocode.Country,
		UserAgent: userAgent(),
		Rate:      cfg.Geocode.Rate,
		Burst:     cfg.Geocode.Burst,
	}

	if cfg.Geocode.TraceHTTP {
		opts.Trace = os.Stderr
	}

	return geocode.NewGoogleMapsGeocoder(opts)
}

// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jcodagnone/chantier/catalog"
	"github.com/jcodagnone/chantier/config"
	"github.com/jcodagnone/chantier/jobsite"
	"github.com/jcodagnone/chantier/ranking"
	"github.com/jcodagnone/chantier/textutil"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const seedBatchSize = 100

// seedData is the layout of cmd/testdata/seed.json.
type seedData struct {
	Products    []catalog.Product `json:"products"`
	JobSites    []jobsite.JobSite `json:"job_sites"`
	Preferences struct {
		Users     map[string]ranking.Preference `json:"users"`
		Companies map[string]ranking.Preference `json:"companies"`
	} `json:"preferences"`
}

func newSeedCmd() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Seeds the database with data from cmd/testdata/seed.json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			file := "cmd/testdata/seed.json"
			if len(args) > 0 {
				file = args[0]
			}

			if !keep {
				// start from a clean database
				_ = os.Remove(cfg.DB.Path)
				_ = os.Remove(cfg.DB.Path + ".wal")
			}

			return seedDatabase(cmd.Context(), cfg, file)
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "keep existing rows instead of recreating the database")

	return cmd
}

func init() {
	rootCmd.AddCommand(newSeedCmd())
}

func readSeed(file string) (*seedData, error) {
	data, err := os.ReadFile(file) // #nosec G304 - file is provided by admin
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file, err)
	}

	var seed seedData
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", file, err)
	}

	return &seed, nil
}

func seedDatabase(ctx context.Context, cfg *config.Config, file string) error {
	seed, err := readSeed(file)
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	products := catalog.NewSQLRepository(db)
	jobSites := jobsite.NewSQLRepository(db)
	prefs := ranking.NewSQLPreferenceStore(db)

	for _, create := range []func() error{products.CreateSchema, jobSites.CreateSchema, prefs.CreateSchema} {
		if err := create(); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if err := saveProducts(ctx, products, seed.Products); err != nil {
		return err
	}

	if err := jobSites.Save(ctx, seed.JobSites); err != nil {
		return fmt.Errorf("failed to save job sites: %w", err)
	}

	for user, p := range seed.Preferences.Users {
		if err := prefs.SetUserPreference(ctx, user, p); err != nil {
			return err
		}
	}

	for company, p := range seed.Preferences.Companies {
		if err := prefs.SetCompanyPreference(ctx, company, p); err != nil {
			return err
		}
	}

	n, err := products.Count(ctx)
	if err != nil {
		return err
	}

	log.Printf("✅ Database seeded: %s products, %d job sites, %d preferences",
		textutil.FormatInt(int64(n)),
		len(seed.JobSites),
		len(seed.Preferences.Users)+len(seed.Preferences.Companies),
	)

	return nil
}

func saveProducts(ctx context.Context, repo *catalog.SQLRepository, products []catalog.Product) error {
	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(products),
			progressbar.OptionSetDescription("Loading products"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for start := 0; start < len(products); start += seedBatchSize {
		batch := products[start:min(start+seedBatchSize, len(products))]
		if err := repo.SaveProducts(ctx, batch); err != nil {
			return fmt.Errorf("failed to save products: %w", err)
		}

		if bar == nil {
			log.Printf("Loaded %d/%d products", start+len(batch), len(products))
		} else if err := bar.Add(len(batch)); err != nil {
			return fmt.Errorf("updating progress bar: %w", err)
		}
	}

	return nil
}

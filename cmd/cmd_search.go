// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/jcodagnone/chantier/catalog"
	"github.com/jcodagnone/chantier/search"
	"github.com/jcodagnone/chantier/textutil"
	"github.com/spf13/cobra"
)

var searchOptions struct {
	tenant    search.Tenant
	jobSiteID string
	limit     int
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches the catalog the way the API does",
	Long: `Runs a product search for a user and company, ranked by their supplier
preference. With --job-site, "fastest" preferences order suppliers by distance.

$ chantier search "boite 4x4" --user u-1 --company acme --job-site js-1
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		limit := cfg.Search.DefaultLimit
		if cmd.Flags().Changed("limit") {
			limit = searchOptions.limit
		}

		products, err := a.service.Search(cmd.Context(), searchOptions.tenant, search.Request{
			Query:     strings.Join(args, " "),
			JobSiteID: searchOptions.jobSiteID,
			Limit:     limit,
		})
		if err != nil {
			return err
		}

		printProducts(products)

		return nil
	},
}

func formatPrice(p *int64) string {
	if p == nil {
		return "n/a"
	}

	return fmt.Sprintf("%s.%02d $", textutil.FormatInt(*p/100), *p%100)
}

func printProducts(products []catalog.Product) {
	if len(products) == 0 {
		fmt.Println("No products found.")

		return
	}

	a, b, c, d := strings.Repeat("─", 10), strings.Repeat("─", 14), strings.Repeat("─", 48), strings.Repeat("─", 12)
	fmt.Printf("╭─%-10s─┬─%-14s─┬─%-48s─┬─%12s─╮\n", a, b, c, d)
	fmt.Printf("│ %-10s │ %-14s │ %-48s │ %12s │\n", "Supplier", "SKU", "Name", "Price")
	fmt.Printf("├─%-10s─┼─%-14s─┼─%-48s─┼─%12s─┤\n", a, b, c, d)

	for _, p := range products {
		fmt.Printf("│ %-10s │ %-14s │ %-48s │ %12s │\n", p.Supplier, truncate(p.SKU, 14), truncate(p.Name, 48), formatPrice(p.Price))
	}

	fmt.Printf("╰─%-10s─┴─%-14s─┴─%-48s─┴─%12s─╯\n", a, b, c, d)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

func init() {
	flags := searchCmd.Flags()
	flags.StringVar(&searchOptions.tenant.UserID, "user", "", "user ID")
	flags.StringVar(&searchOptions.tenant.CompanyID, "company", "", "company ID")
	flags.StringVar(&searchOptions.jobSiteID, "job-site", "", "job site ID")
	flags.IntVar(&searchOptions.limit, "limit", 0, "maximum number of results (search.default_limit)")

	rootCmd.AddCommand(searchCmd)
}

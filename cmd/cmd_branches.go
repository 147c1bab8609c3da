// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/jcodagnone/chantier/supplier"
	"github.com/spf13/cobra"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "Supplier branch directory",
}

func supplierArg(_ *cobra.Command, args []string) error {
	for _, arg := range args {
		if _, err := supplier.Parse(arg); err != nil {
			return err
		}
	}

	return nil
}

var branchesListCmd = &cobra.Command{
	Use:   "list [supplier]",
	Short: "Lists the configured branches",
	Args:  cobra.MatchAll(cobra.MaximumNArgs(1), supplierArg),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir, err := loadDirectory(cfg)
		if err != nil {
			return err
		}

		suppliers := supplier.All()
		if len(args) > 0 {
			s, _ := supplier.Parse(args[0])
			suppliers = []supplier.Supplier{s}
		}

		a, b, c := strings.Repeat("─", 10), strings.Repeat("─", 28), strings.Repeat("─", 20)
		fmt.Printf("╭─%-10s─┬─%-28s─┬─%-20s─╮\n", a, b, c)
		fmt.Printf("│ %-10s │ %-28s │ %-20s │\n", "Supplier", "Branch", "Coordinates")
		fmt.Printf("├─%-10s─┼─%-28s─┼─%-20s─┤\n", a, b, c)

		for _, s := range suppliers {
			branches, _ := dir.Branches(s)
			for _, br := range branches {
				fmt.Printf("│ %-10s │ %-28s │ %-20s │\n", s, truncate(br.Name, 28), br.Point())
			}
		}

		fmt.Printf("╰─%-10s─┴─%-28s─┴─%-20s─╯\n", a, b, c)

		return nil
	},
}

var nearestOptions struct {
	jobSiteID string
	companyID string
}

var branchesNearestCmd = &cobra.Command{
	Use:   "nearest <supplier>",
	Short: "Shows the branch closest to a job site",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), supplierArg),
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

		s, _ := supplier.Parse(args[0])

		b, ok := a.locator.NearestBranch(cmd.Context(), s, nearestOptions.jobSiteID, nearestOptions.companyID)
		if !ok {
			fmt.Printf("%s has no branches configured\n", s)

			return nil
		}

		if b.DistanceKm == nil {
			fmt.Printf("%s\t%s\n", b.Name, b.Address)
		} else {
			fmt.Printf("%s\t%s\t%.1f km\n", b.Name, b.Address, *b.DistanceKm)
		}

		return nil
	},
}

func init() {
	branchesNearestCmd.Flags().StringVar(&nearestOptions.jobSiteID, "job-site", "", "job site ID")
	branchesNearestCmd.Flags().StringVar(&nearestOptions.companyID, "company", "", "company owning the job site")

	rootCmd.AddCommand(branchesCmd)
	branchesCmd.AddCommand(branchesListCmd)
	branchesCmd.AddCommand(branchesNearestCmd)
}

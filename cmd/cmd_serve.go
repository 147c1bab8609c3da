// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/chantier/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the search API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		gin.SetMode(cfg.Server.Mode)

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := server.NewServer(a.service, a.directory, server.Options{
			Addr:         cfg.Server.Addr,
			DefaultLimit: cfg.Search.DefaultLimit,
			MaxLimit:     cfg.Search.MaxLimit,
		})

		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (server.addr)")
	cobra.CheckErr(v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr")))

	rootCmd.AddCommand(serveCmd)
}

// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/jcodagnone/chantier/config"
	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "chantier",
	Short: "supplier aware product search for electrical contractors",
	Long: `
chantier searches the catalogs of electrical supply distributors and ranks the
results either by price or by how close each distributor's nearest branch is to
the job site.

Settings are read from chantier.yaml (., ./config or /etc/chantier), then from
CHANTIER_* environment variables (CHANTIER_GEOCODE_API_KEY, CHANTIER_DB_PATH…),
then from flags.
`,
	SilenceUsage: true,
}

var (
	Version = "dev"
	v       = config.New()
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "path to the duckdb database (db.path)")
	flags.String("branches", "", "branch directory JSON file (branches.file)")

	cobra.CheckErr(v.BindPFlag("db.path", flags.Lookup("db")))
	cobra.CheckErr(v.BindPFlag("branches.file", flags.Lookup("branches")))
}

// loadConfig decodes the configuration once flags are parsed.
func loadConfig() (*config.Config, error) {
	return config.Load(v)
}

func userAgent() string {
	return fmt.Sprintf("chantier/%s (+https://github.com/jcodagnone/chantier)", Version)
}

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

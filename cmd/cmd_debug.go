// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jcodagnone/chantier/textutil"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugNormalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Shows how queries and catalog text are normalized",
	Long: `Reads one line at a time and prints it normalized, followed by its tokens.

$ echo "Boîte  4 X 4" | chantier debug normalize
Boîte  4 X 4	boite 4x4	[boite 4x4]
`,
	RunE: func(_ *cobra.Command, _ []string) error {
		input := os.Stdin
		if isatty.IsTerminal(input.Fd()) {
			fmt.Fprintln(os.Stderr, "Enter text to normalize, one per line…")
		}

		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			line := scanner.Text()
			fmt.Printf("%s\t%s\t[%s]\n", line, textutil.Normalize(line), strings.Join(textutil.Tokenize(line), " "))
		}

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugNormalizeCmd)
}

// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jcodagnone/chantier/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}

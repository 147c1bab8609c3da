// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

// Package supplier holds the supplier catalog, their physical branches and
// the distance based ordering used by "fastest" ranking.
package supplier

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownSupplier is returned when parsing an identifier that is not declared.
var ErrUnknownSupplier = errors.New("unknown supplier")

// Supplier identifies a distributor products can be ordered from.
type Supplier string

const (
	Lumen     Supplier = "lumen"
	Nedco     Supplier = "nedco"
	Westburne Supplier = "westburne"
)

// declared is the catalog order, the default priority when nothing better is known.
var declared = []Supplier{Lumen, Nedco, Westburne}

// All returns the declared suppliers in catalog order.
func All() []Supplier {
	return slices.Clone(declared)
}

// Parse returns the supplier named s, ignoring case and surrounding spaces.
func Parse(s string) (Supplier, error) {
	candidate := Supplier(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(declared, candidate) {
		return candidate, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSupplier, s)
}

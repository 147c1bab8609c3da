// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog searches supplier products by normalized text and orders
// them according to a ranking.Strategy.
package catalog

import (
	"errors"
	"fmt"

	"github.com/jcodagnone/chantier/supplier"
)

// ErrQueryFailed wraps any storage failure while searching.
var ErrQueryFailed = errors.New("product query failed")

// Product is a catalog entry. Price is in cents, nil when the supplier does
// not publish one.
type Product struct {
	Name     string            `json:"name"`
	SKU      string            `json:"sku"`
	ImageURL string            `json:"image_url"`
	Price    *int64            `json:"price"`
	Unit     string            `json:"unit"`
	Category string            `json:"category"`
	Supplier supplier.Supplier `json:"supplier"`
}

// Validate checks the fields required to index p.
func (p *Product) Validate() error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}

	if p.SKU == "" {
		errs = append(errs, errors.New("sku is empty"))
	}

	if _, err := supplier.Parse(string(p.Supplier)); err != nil {
		errs = append(errs, err)
	}

	if p.Price != nil && *p.Price < 0 {
		errs = append(errs, fmt.Errorf("negative price %d", *p.Price))
	}

	return errors.Join(errs...)
}

// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package ranking

import (
	"context"

	"github.com/jcodagnone/chantier/supplier"
)

// DefaultRankedSuppliers is how many suppliers get their own tie-break
// bucket. The rest share the last one.
const DefaultRankedSuppliers = 2

// SupplierOrderer sorts suppliers by proximity to a job site.
type SupplierOrderer interface {
	Order(ctx context.Context, jobSiteID, companyID string) []supplier.Supplier
}

// Strategy is the ordering a product search must apply. Suppliers is only set
// for Fastest: Suppliers[i] ranks i, any supplier not listed ranks after all
// of them.
type Strategy struct {
	Preference Preference
	Suppliers  []supplier.Supplier
}

// Rank returns the tie-break bucket of s.
func (st Strategy) Rank(s supplier.Supplier) int {
	for i, candidate := range st.Suppliers {
		if candidate == s {
			return i
		}
	}

	return len(st.Suppliers)
}

// Selector picks the Strategy of a request.
type Selector struct {
	store   PreferenceStore
	orderer SupplierOrderer
	ranked  int
}

// NewSelector creates a selector keeping the first ranked suppliers of the
// distance order as buckets. Zero or less keeps all of them.
func NewSelector(store PreferenceStore, orderer SupplierOrderer, ranked int) *Selector {
	return &Selector{store: store, orderer: orderer, ranked: ranked}
}

// Select resolves the preference of the user and, for Fastest, the supplier
// priority for the job site. Only preference store failures are returned.
func (s *Selector) Select(ctx context.Context, userID, companyID, jobSiteID string) (Strategy, error) {
	p, err := ResolvePreference(ctx, s.store, userID, companyID)
	if err != nil {
		return Strategy{}, err
	}

	if p != Fastest {
		return Strategy{Preference: p}, nil
	}

	order := s.orderer.Order(ctx, jobSiteID, companyID)
	if s.ranked > 0 && len(order) > s.ranked {
		order = order[:s.ranked]
	}

	return Strategy{Preference: p, Suppliers: order}, nil
}

// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

// Package search wires text matching, strategy selection and branch lookup
// into the two requests served to tenants.
package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jcodagnone/chantier/catalog"
	"github.com/jcodagnone/chantier/ranking"
	"github.com/jcodagnone/chantier/supplier"
	"github.com/jcodagnone/chantier/textutil"
)

// MinQueryLength is the shortest trimmed query, in characters, worth searching.
const MinQueryLength = 2

// Tenant identifies who is asking. It is established upstream.
type Tenant struct {
	UserID    string
	CompanyID string
	Role      string
}

// Request is a product search.
type Request struct {
	Query     string
	JobSiteID string
	Limit     int
}

type StrategySelector interface {
	Select(ctx context.Context, userID, companyID, jobSiteID string) (ranking.Strategy, error)
}

type ProductRanker interface {
	Search(ctx context.Context, query string, st ranking.Strategy, limit int) ([]catalog.Product, error)
}

type BranchLocator interface {
	NearestBranch(ctx context.Context, s supplier.Supplier, jobSiteID, companyID string) (*supplier.NearestBranch, bool)
}

// Service answers product searches and nearest branch lookups.
type Service struct {
	selector StrategySelector
	ranker   ProductRanker
	locator  BranchLocator
}

func NewService(selector StrategySelector, ranker ProductRanker, locator BranchLocator) *Service {
	return &Service{selector: selector, ranker: ranker, locator: locator}
}

// Search returns the ranked products for req. Queries that are too short or
// have no tokens return an empty list before any lookup. Only storage failures
// are returned as errors; missing coordinates just change the ordering.
func (s *Service) Search(ctx context.Context, t Tenant, req Request) ([]catalog.Product, error) {
	q := strings.TrimSpace(req.Query)
	if utf8.RuneCountInString(q) < MinQueryLength || len(textutil.Tokenize(q)) == 0 {
		return []catalog.Product{}, nil
	}

	st, err := s.selector.Select(ctx, t.UserID, t.CompanyID, req.JobSiteID)
	if err != nil {
		return nil, fmt.Errorf("selecting ranking strategy: %w", err)
	}

	return s.ranker.Search(ctx, q, st, req.Limit)
}

// NearestBranch returns the branch of supplierID closest to the job site, or
// nil when the supplier is unknown or has no branches.
func (s *Service) NearestBranch(ctx context.Context, t Tenant, supplierID, jobSiteID string) *supplier.NearestBranch {
	sup, err := supplier.Parse(supplierID)
	if err != nil {
		return nil
	}

	b, ok := s.locator.NearestBranch(ctx, sup, jobSiteID, t.CompanyID)
	if !ok {
		return nil
	}

	return b
}

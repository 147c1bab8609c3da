// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jcodagnone/chantier/ranking"
	"github.com/jcodagnone/chantier/textutil"
)

const (
	DefaultLimit = 12
	MaxLimit     = 48
)

// ClampLimit forces n into [1, maxLimit].
func ClampLimit(n, maxLimit int) int {
	return max(1, min(n, maxLimit))
}

// ParseLimit reads a requested result count. Absent or non numeric values
// yield def, anything else is clamped.
func ParseLimit(raw string, def, maxLimit int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ClampLimit(def, maxLimit)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return ClampLimit(def, maxLimit)
	}

	return ClampLimit(n, maxLimit)
}

// Ranker answers product searches.
type Ranker struct {
	repo     Repository
	maxLimit int
}

func NewRanker(repo Repository, maxLimit int) *Ranker {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}

	return &Ranker{repo: repo, maxLimit: maxLimit}
}

// Search returns at most limit products matching every token of query,
// ordered by st. A query without tokens returns an empty list without
// touching the repository.
func (r *Ranker) Search(ctx context.Context, query string, st ranking.Strategy, limit int) ([]Product, error) {
	tokens := textutil.Tokenize(query)
	if len(tokens) == 0 {
		return []Product{}, nil
	}

	products, err := r.repo.Search(ctx, tokens, st, ClampLimit(limit, r.maxLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	return products, nil
}

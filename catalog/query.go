// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jcodagnone/chantier/ranking"
)

// MatchPredicate requires every token to be a substring of the normalized
// name or of the normalized sku.
func MatchPredicate(tokens []string) sq.And {
	pred := make(sq.And, 0, len(tokens))
	for _, t := range tokens {
		pred = append(pred, sq.Or{
			sq.Expr("contains(name_norm, ?)", t),
			sq.Expr("contains(sku_norm, ?)", t),
		})
	}

	return pred
}

// prefixRank puts names starting with the first token ahead of those that
// merely contain it.
const prefixRank = "CASE WHEN starts_with(name_norm, ?) THEN 0 ELSE 1 END"

// supplierRank maps each listed supplier to its index, everybody else to
// len(suppliers).
func supplierRank(st ranking.Strategy) (string, []any) {
	clause := "CASE supplier"
	args := make([]any, 0, len(st.Suppliers))

	for i, s := range st.Suppliers {
		clause += " WHEN ? THEN " + strconv.Itoa(i)
		args = append(args, string(s))
	}

	clause += " ELSE " + strconv.Itoa(len(st.Suppliers)) + " END"

	return clause, args
}

// ordered appends the ORDER BY of st. name and sku close every strategy so
// results are fully deterministic.
func ordered(b sq.SelectBuilder, tokens []string, st ranking.Strategy) sq.SelectBuilder {
	switch st.Preference {
	case ranking.Fastest:
		if len(st.Suppliers) > 0 {
			clause, args := supplierRank(st)
			b = b.OrderByClause(clause, args...)
		}
	default:
		b = b.OrderBy("price IS NULL", "price ASC")
	}

	return b.
		OrderByClause(prefixRank, tokens[0]).
		OrderBy("name ASC", "sku ASC")
}

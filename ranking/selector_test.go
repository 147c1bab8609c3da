// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/jcodagnone/chantier/supplier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderer struct {
	order []supplier.Supplier
	calls int
}

func (f *fakeOrderer) Order(_ context.Context, _, _ string) []supplier.Supplier {
	f.calls++

	return append([]supplier.Supplier(nil), f.order...)
}

func TestSelectCheapestSkipsSupplierOrder(t *testing.T) {
	orderer := &fakeOrderer{order: supplier.All()}
	sel := NewSelector(&fakeStore{}, orderer, DefaultRankedSuppliers)

	st, err := sel.Select(context.Background(), "u", "c", "js-1")
	require.NoError(t, err)
	assert.Equal(t, Strategy{Preference: Cheapest}, st)
	assert.Equal(t, 0, orderer.calls)
}

func TestSelectFastestKeepsTwoBuckets(t *testing.T) {
	store := &fakeStore{companies: map[string]string{"c": "fastest"}}
	orderer := &fakeOrderer{order: []supplier.Supplier{supplier.Westburne, supplier.Lumen, supplier.Nedco}}
	sel := NewSelector(store, orderer, DefaultRankedSuppliers)

	st, err := sel.Select(context.Background(), "u", "c", "js-1")
	require.NoError(t, err)
	assert.Equal(t, Fastest, st.Preference)
	assert.Equal(t, []supplier.Supplier{supplier.Westburne, supplier.Lumen}, st.Suppliers)

	assert.Equal(t, 0, st.Rank(supplier.Westburne))
	assert.Equal(t, 1, st.Rank(supplier.Lumen))
	assert.Equal(t, 2, st.Rank(supplier.Nedco))
}

func TestSelectFastestUncapped(t *testing.T) {
	store := &fakeStore{users: map[string]string{"u": "fastest"}}
	orderer := &fakeOrderer{order: []supplier.Supplier{supplier.Nedco, supplier.Westburne, supplier.Lumen}}
	sel := NewSelector(store, orderer, 0)

	st, err := sel.Select(context.Background(), "u", "c", "")
	require.NoError(t, err)
	assert.Equal(t, orderer.order, st.Suppliers)
	assert.Equal(t, 2, st.Rank(supplier.Lumen))
}

func TestSelectPropagatesStoreFailure(t *testing.T) {
	sel := NewSelector(&fakeStore{err: errors.New("io")}, &fakeOrderer{}, DefaultRankedSuppliers)

	_, err := sel.Select(context.Background(), "u", "c", "")
	assert.Error(t, err)
}

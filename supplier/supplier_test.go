// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package supplier

import (
	"context"
	"testing"

	"github.com/jcodagnone/chantier/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Supplier
		err   bool
	}{
		{"lumen", Lumen, false},
		{" Nedco ", Nedco, false},
		{"WESTBURNE", Westburne, false},
		{"home depot", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.err {
				require.ErrorIs(t, err, ErrUnknownSupplier)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0] = "mutated"

	assert.Equal(t, []Supplier{Lumen, Nedco, Westburne}, All())
}

func TestDefaultDirectory(t *testing.T) {
	dir, err := DefaultDirectory()
	require.NoError(t, err)

	for _, s := range All() {
		branches, ok := dir.Branches(s)
		require.True(t, ok, s)
		assert.NotEmpty(t, branches)
	}
}

func TestParseDirectoryErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"lumen": [`},
		{"unknown supplier", `{"acme": [{"name": "x", "lat": 1, "lng": 1}]}`},
		{"empty name", `{"lumen": [{"name": "", "lat": 1, "lng": 1}]}`},
		{"latitude", `{"lumen": [{"name": "x", "lat": 91, "lng": 1}]}`},
		{"longitude", `{"lumen": [{"name": "x", "lat": 1, "lng": -181}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDirectory([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseDirectorySkipsEmptyLists(t *testing.T) {
	dir, err := ParseDirectory([]byte(`{"lumen": [], "nedco": [{"name": "N", "lat": 45, "lng": -73}]}`))
	require.NoError(t, err)

	_, ok := dir.Branches(Lumen)
	assert.False(t, ok)

	_, _, ok = dir.Nearest(Lumen, spatial.Point{Lat: 45, Lng: -73})
	assert.False(t, ok)
}

const testBranches = `{
  "lumen": [
    {"name": "Lumen Far", "address": "far", "lat": 46.0, "lng": -73.0},
    {"name": "Lumen Near", "address": "near", "lat": 45.51, "lng": -73.61}
  ],
  "nedco": [
    {"name": "Nedco Mid", "address": "mid", "lat": 45.6, "lng": -73.6}
  ],
  "westburne": [
    {"name": "Westburne Close", "address": "close", "lat": 45.5, "lng": -73.6}
  ]
}`

type fakeCoordinates struct {
	points map[string]spatial.Point
	calls  int
}

func (f *fakeCoordinates) Resolve(_ context.Context, jobSiteID, companyID string) (spatial.Point, bool) {
	f.calls++
	p, ok := f.points[companyID+"/"+jobSiteID]

	return p, ok
}

func newLocator(t *testing.T, data string) (*Locator, *fakeCoordinates) {
	t.Helper()

	dir, err := ParseDirectory([]byte(data))
	require.NoError(t, err)

	coords := &fakeCoordinates{points: map[string]spatial.Point{
		"acme/js-1": {Lat: 45.5, Lng: -73.6},
	}}

	return NewLocator(dir, coords), coords
}

func TestNearestBranchWithCoordinates(t *testing.T) {
	l, _ := newLocator(t, testBranches)

	got, ok := l.NearestBranch(context.Background(), Lumen, "js-1", "acme")
	require.True(t, ok)
	assert.Equal(t, "Lumen Near", got.Name)
	assert.Equal(t, "near", got.Address)
	require.NotNil(t, got.DistanceKm)
	assert.Equal(t, 1.4, *got.DistanceKm)
}

func TestNearestBranchFallsBackToFirstBranch(t *testing.T) {
	l, coords := newLocator(t, testBranches)

	got, ok := l.NearestBranch(context.Background(), Lumen, "", "acme")
	require.True(t, ok)
	assert.Equal(t, &NearestBranch{Name: "Lumen Far", Address: "far"}, got)
	assert.Equal(t, 0, coords.calls, "no job site, no lookup")

	got, ok = l.NearestBranch(context.Background(), Lumen, "js-404", "acme")
	require.True(t, ok)
	assert.Equal(t, "Lumen Far", got.Name)
	assert.Nil(t, got.DistanceKm)
}

func TestNearestBranchUnknownSupplier(t *testing.T) {
	l, _ := newLocator(t, `{"lumen": [{"name": "L", "lat": 45, "lng": -73}]}`)

	got, ok := l.NearestBranch(context.Background(), Nedco, "js-1", "acme")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestOrder(t *testing.T) {
	l, _ := newLocator(t, testBranches)

	t.Run("declared order without job site", func(t *testing.T) {
		assert.Equal(t, []Supplier{Lumen, Nedco, Westburne}, l.Order(context.Background(), "", "acme"))
	})

	t.Run("declared order when unresolved", func(t *testing.T) {
		assert.Equal(t, []Supplier{Lumen, Nedco, Westburne}, l.Order(context.Background(), "js-404", "acme"))
	})

	t.Run("by distance", func(t *testing.T) {
		assert.Equal(t, []Supplier{Westburne, Lumen, Nedco}, l.Order(context.Background(), "js-1", "acme"))
	})

	t.Run("other company cannot see the job site", func(t *testing.T) {
		assert.Equal(t, []Supplier{Lumen, Nedco, Westburne}, l.Order(context.Background(), "js-1", "globex"))
	})
}

func TestOrderSuppliersWithoutBranchesGoLast(t *testing.T) {
	l, _ := newLocator(t, `{
	  "nedco": [{"name": "N", "lat": 45.9, "lng": -73.6}],
	  "westburne": [{"name": "W", "lat": 45.5, "lng": -73.6}]
	}`)

	assert.Equal(t, []Supplier{Westburne, Nedco, Lumen}, l.OrderFrom(spatial.Point{Lat: 45.5, Lng: -73.6}))
}

func TestOrderTiesKeepDeclaredOrder(t *testing.T) {
	l, _ := newLocator(t, `{
	  "westburne": [{"name": "W", "lat": 45.5, "lng": -73.6}],
	  "nedco": [{"name": "N", "lat": 45.5, "lng": -73.6}],
	  "lumen": [{"name": "L", "lat": 45.5, "lng": -73.6}]
	}`)

	assert.Equal(t, []Supplier{Lumen, Nedco, Westburne}, l.OrderFrom(spatial.Point{Lat: 45.0, Lng: -73.0}))
}

// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package supplier

import (
	"context"
	"math"
	"slices"

	"github.com/jcodagnone/chantier/spatial"
)

// Coordinates resolves a job site to a point. A false result is a normal
// outcome and triggers the fallback policies below.
type Coordinates interface {
	Resolve(ctx context.Context, jobSiteID, companyID string) (spatial.Point, bool)
}

// NearestBranch is the answer to a nearest branch lookup. DistanceKm is only
// set when the job site could be located.
type NearestBranch struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// Locator answers branch and supplier proximity questions for job sites.
type Locator struct {
	directory   *Directory
	coordinates Coordinates
}

func NewLocator(directory *Directory, coordinates Coordinates) *Locator {
	return &Locator{directory: directory, coordinates: coordinates}
}

// NearestBranch returns the branch of s closest to the job site. Without a job
// site, or when it cannot be located, the first listed branch is returned
// without a distance. It returns false when s has no branches at all.
func (l *Locator) NearestBranch(ctx context.Context, s Supplier, jobSiteID, companyID string) (*NearestBranch, bool) {
	branches, ok := l.directory.Branches(s)
	if !ok {
		return nil, false
	}

	fallback := &NearestBranch{Name: branches[0].Name, Address: branches[0].Address}

	if jobSiteID == "" {
		return fallback, true
	}

	p, ok := l.coordinates.Resolve(ctx, jobSiteID, companyID)
	if !ok {
		return fallback, true
	}

	branch, distance, _ := l.directory.Nearest(s, p)
	rounded := math.Round(distance*10) / 10

	return &NearestBranch{
		Name:       branch.Name,
		Address:    branch.Address,
		DistanceKm: &rounded,
	}, true
}

// Order returns every declared supplier sorted by the distance from the job
// site to its nearest branch. Without coordinates the declared order is kept.
// Suppliers without branches go last, ties keep the declared order.
func (l *Locator) Order(ctx context.Context, jobSiteID, companyID string) []Supplier {
	order := All()
	if jobSiteID == "" {
		return order
	}

	p, ok := l.coordinates.Resolve(ctx, jobSiteID, companyID)
	if !ok {
		return order
	}

	return l.OrderFrom(p)
}

// OrderFrom sorts the declared suppliers by distance from p.
func (l *Locator) OrderFrom(p spatial.Point) []Supplier {
	order := All()

	distances := make(map[Supplier]float64, len(order))
	for _, s := range order {
		distances[s] = math.Inf(1)
		if _, d, ok := l.directory.Nearest(s, p); ok {
			distances[s] = d
		}
	}

	slices.SortStableFunc(order, func(a, b Supplier) int {
		da, db := distances[a], distances[b]

		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return 0
		}
	})

	return order
}

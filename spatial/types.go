// Copyright 2025 The Chantier Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"math"

	"github.com/uber/h3-go/v4"
)

const (
	earthRadius   = 6371e3 // meters
	EarthRadiusKm = earthRadius / 1000
)

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// Scan implements the sql.Scanner interface for database deserialization.
func (p *Point) Scan(value interface{}) error {
	if value == nil {
		p.Lat, p.Lng = 0, 0

		return nil
	}

	switch v := value.(type) {
	case []byte:
		// The format from DuckDB is "POINT (lng lat)"
		_, err := fmt.Sscanf(string(v), "POINT (%f %f)", &p.Lng, &p.Lat)

		return err
	case string:
		_, err := fmt.Sscanf(v, "POINT (%f %f)", &p.Lng, &p.Lat)

		return err
	case map[string]interface{}:
		x, okX := v["x"].(float64)
		y, okY := v["y"].(float64)

		if !okX || !okY {
			return fmt.Errorf("spatial: invalid map for point: expected 'x' and 'y' float64 fields, got %+v", v)
		}

		p.Lng = x
		p.Lat = y

		return nil
	default:
		return fmt.Errorf("spatial: unsupported type for Point scan: %T", value)
	}
}

// Cell returns the H3 cell containing p at the given resolution.
func (p Point) Cell(res int) (h3.Cell, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), res)
	if err != nil {
		return 0, fmt.Errorf("converting to h3 cell at res %d: %w", res, err)
	}

	return cell, nil
}

// DistanceKm is the great-circle distance in kilometers between two
// coordinates given in decimal degrees.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Nearest scans points and returns the index of the one closest to (lat, lng)
// together with its distance in kilometers. The first of several equally
// distant points wins. It returns -1 when points is empty.
func Nearest(points []Point, lat, lng float64) (int, float64) {
	best, bestDistance := -1, math.Inf(1)

	for i, p := range points {
		d := DistanceKm(lat, lng, p.Lat, p.Lng)
		if d < bestDistance {
			best, bestDistance = i, d
		}
	}

	if best < 0 {
		return -1, 0
	}

	return best, bestDistance
}

// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"

	"github.com/jcodagnone/chantier/spatial"
)

// GeocodingResult represents a geocoding result from any provider.
type GeocodingResult struct {
	Point       spatial.Point
	Confidence  string // high, medium, low
	Provider    string
	DisplayName string
}

// Geocoder resolves a free text address into a single result.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodingResult, error)
}

// Disabled stands in for a provider when no credentials are available. Every
// lookup fails, so "fastest" ranking keeps the declared supplier order.
type Disabled struct {
	Reason string
}

func (d Disabled) Geocode(context.Context, string) (*GeocodingResult, error) {
	return nil, &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "geocoding disabled: " + d.Reason}
}

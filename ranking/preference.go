// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

// Package ranking decides how a product search is ordered: by price, or by
// how close each supplier's nearest branch is to the job site.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPreference is returned when a stored preference is not recognized.
var ErrInvalidPreference = errors.New("invalid supplier preference")

// Preference selects the ranking strategy.
type Preference string

const (
	Cheapest Preference = "cheapest"
	Fastest  Preference = "fastest"

	// DefaultPreference applies when neither the user nor the company chose one.
	DefaultPreference = Cheapest
)

// ParsePreference validates s, ignoring case and surrounding spaces.
func ParsePreference(s string) (Preference, error) {
	switch p := Preference(strings.ToLower(strings.TrimSpace(s))); p {
	case Cheapest, Fastest:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPreference, s)
	}
}

// PreferenceStore reads preferences owned by the settings pages.
type PreferenceStore interface {
	UserPreference(ctx context.Context, userID string) (string, bool, error)
	CompanyPreference(ctx context.Context, companyID string) (string, bool, error)
}

// ResolvePreference returns the user's preference, falling back to the
// company default and then to DefaultPreference. Unrecognized stored values
// are skipped as if unset.
func ResolvePreference(ctx context.Context, store PreferenceStore, userID, companyID string) (Preference, error) {
	if userID != "" {
		raw, ok, err := store.UserPreference(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("reading user preference: %w", err)
		}

		if p, err := ParsePreference(raw); ok && err == nil {
			return p, nil
		}
	}

	if companyID != "" {
		raw, ok, err := store.CompanyPreference(ctx, companyID)
		if err != nil {
			return "", fmt.Errorf("reading company preference: %w", err)
		}

		if p, err := ParsePreference(raw); ok && err == nil {
			return p, nil
		}
	}

	return DefaultPreference, nil
}

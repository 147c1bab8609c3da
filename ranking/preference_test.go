// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	users     map[string]string
	companies map[string]string
	err       error
}

func (f *fakeStore) UserPreference(_ context.Context, userID string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}

	p, ok := f.users[userID]

	return p, ok, nil
}

func (f *fakeStore) CompanyPreference(_ context.Context, companyID string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}

	p, ok := f.companies[companyID]

	return p, ok, nil
}

func TestParsePreference(t *testing.T) {
	p, err := ParsePreference(" Fastest ")
	require.NoError(t, err)
	assert.Equal(t, Fastest, p)

	_, err = ParsePreference("closest")
	assert.ErrorIs(t, err, ErrInvalidPreference)
}

func TestResolvePreference(t *testing.T) {
	store := &fakeStore{
		users: map[string]string{
			"u-fast":   "fastest",
			"u-cheap":  "cheapest",
			"u-broken": "whatever",
		},
		companies: map[string]string{
			"c-fast":   "fastest",
			"c-broken": "",
		},
	}

	tests := []struct {
		name    string
		user    string
		company string
		want    Preference
	}{
		{"default", "u-none", "c-none", Cheapest},
		{"company default", "u-none", "c-fast", Fastest},
		{"user overrides company", "u-cheap", "c-fast", Cheapest},
		{"user without company", "u-fast", "c-none", Fastest},
		{"invalid user value falls back to company", "u-broken", "c-fast", Fastest},
		{"invalid company value falls back to default", "u-none", "c-broken", Cheapest},
		{"no tenant", "", "", Cheapest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePreference(context.Background(), store, tt.user, tt.company)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePreferenceStoreFailure(t *testing.T) {
	boom := errors.New("database is locked")

	_, err := ResolvePreference(context.Background(), &fakeStore{err: boom}, "u", "c")
	assert.ErrorIs(t, err, boom)
}

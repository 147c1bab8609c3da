// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package supplier

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jcodagnone/chantier/spatial"
)

//go:embed branches.json
var defaultBranches []byte

// Branch is a physical pickup location of a supplier.
type Branch struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Point returns the branch coordinates.
func (b Branch) Point() spatial.Point {
	return spatial.Point{Lat: b.Lat, Lng: b.Lng}
}

// Directory is the read only, per supplier ordered list of branches.
type Directory struct {
	branches map[Supplier][]Branch
	points   map[Supplier][]spatial.Point
}

// DefaultDirectory returns the directory bundled with the binary.
func DefaultDirectory() (*Directory, error) {
	return ParseDirectory(defaultBranches)
}

// LoadDirectory loads a branch directory from a JSON file.
func LoadDirectory(filepath string) (*Directory, error) {
	data, err := os.ReadFile(filepath) // #nosec G304 - filepath is provided by admin
	if err != nil {
		return nil, fmt.Errorf("reading branches file: %w", err)
	}

	return ParseDirectory(data)
}

// ParseDirectory parses `{"<supplier>": [{"name", "address", "lat", "lng"}, ...]}`.
// The order of each list is kept, its first entry is the supplier's default branch.
func ParseDirectory(data []byte) (*Directory, error) {
	var raw map[string][]Branch
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing branches JSON: %w", err)
	}

	dir := &Directory{
		branches: make(map[Supplier][]Branch, len(raw)),
		points:   make(map[Supplier][]spatial.Point, len(raw)),
	}

	for name, branches := range raw {
		s, err := Parse(name)
		if err != nil {
			return nil, err
		}

		if len(branches) == 0 {
			continue
		}

		points := make([]spatial.Point, len(branches))

		for i, b := range branches {
			if err := validateBranch(b); err != nil {
				return nil, fmt.Errorf("%s branch %d: %w", s, i, err)
			}

			points[i] = b.Point()
		}

		dir.branches[s] = branches
		dir.points[s] = points
	}

	return dir, nil
}

func validateBranch(b Branch) error {
	var errs []error

	if b.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}

	if b.Lat < -90 || b.Lat > 90 {
		errs = append(errs, fmt.Errorf("latitude %f out of range", b.Lat))
	}

	if b.Lng < -180 || b.Lng > 180 {
		errs = append(errs, fmt.Errorf("longitude %f out of range", b.Lng))
	}

	return errors.Join(errs...)
}

// Branches returns the branches of s, false when none are configured.
func (d *Directory) Branches(s Supplier) ([]Branch, bool) {
	b, ok := d.branches[s]

	return b, ok
}

// Nearest returns the branch of s closest to p and its distance in km.
func (d *Directory) Nearest(s Supplier, p spatial.Point) (Branch, float64, bool) {
	idx, distance := spatial.Nearest(d.points[s], p.Lat, p.Lng)
	if idx < 0 {
		return Branch{}, 0, false
	}

	return d.branches[s][idx], distance, true
}

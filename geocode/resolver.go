// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jcodagnone/chantier/spatial"
	"golang.org/x/sync/singleflight"
)

var errNoAddress = errors.New("job site has no address")

// DefaultLookupTimeout bounds a shared lookup when no timeout is configured.
const DefaultLookupTimeout = 5 * time.Second

// JobSites gives access to job site addresses, scoped by company.
type JobSites interface {
	Address(ctx context.Context, jobSiteID, companyID string) (string, bool, error)
}

// Resolver turns a job site into coordinates. Lookups never fail: any problem
// (unknown site, empty address, provider error, timeout) yields no coordinates
// and is retried on the next call because only successes are cached.
type Resolver struct {
	jobSites JobSites
	geocoder Geocoder
	cache    Cache
	timeout  time.Duration
	group    singleflight.Group
}

// NewResolver creates a resolver. timeout bounds each lookup (job site address
// plus provider round trip). Lookups are detached from the caller's context,
// deadline included, so zero or less means DefaultLookupTimeout.
func NewResolver(jobSites JobSites, geocoder Geocoder, cache Cache, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}

	return &Resolver{
		jobSites: jobSites,
		geocoder: geocoder,
		cache:    cache,
		timeout:  timeout,
	}
}

// Job site IDs are unique, the company only keeps tenants from reading each
// other's entries.
func cacheKey(jobSiteID, companyID string) string {
	return companyID + "/" + jobSiteID
}

// Resolve returns the coordinates of jobSiteID, or false when they cannot be
// determined right now.
func (r *Resolver) Resolve(ctx context.Context, jobSiteID, companyID string) (spatial.Point, bool) {
	if jobSiteID == "" {
		return spatial.Point{}, false
	}

	key := cacheKey(jobSiteID, companyID)

	p, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		log.Printf("⚠️  Geocode cache read for job site %s failed: %v", jobSiteID, err)
	} else if ok {
		return p, true
	}

	// Concurrent misses for the same key share one lookup. The lookup outlives
	// any single caller so one cancelled request doesn't fail the others.
	ch := r.group.DoChan(key, func() (any, error) {
		return r.lookup(context.WithoutCancel(ctx), key, jobSiteID, companyID)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return spatial.Point{}, false
		}

		p, ok := res.Val.(spatial.Point)

		return p, ok
	case <-ctx.Done():
		log.Printf("⚠️  Gave up waiting for job site %s coordinates: %v", jobSiteID, ctx.Err())

		return spatial.Point{}, false
	}
}

func (r *Resolver) lookup(ctx context.Context, key, jobSiteID, companyID string) (spatial.Point, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	address, ok, err := r.jobSites.Address(ctx, jobSiteID, companyID)
	if err != nil {
		log.Printf("⚠️  Looking up job site %s failed: %v", jobSiteID, err)

		return spatial.Point{}, err
	}

	if !ok {
		return spatial.Point{}, errNoAddress
	}

	result, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		switch {
		case IsRateLimitError(err), IsQuotaExceededError(err):
			log.Printf("🚦 Geocoding provider is throttling, job site %s ranks without proximity: %v", jobSiteID, err)
		default:
			log.Printf("⚠️  Geocoding job site %s failed (%s): %v", jobSiteID, TypeOf(err), err)
		}

		return spatial.Point{}, err
	}

	if err := r.cache.Put(ctx, key, result.Point); err != nil {
		log.Printf("⚠️  Geocode cache write for job site %s failed: %v", jobSiteID, err)
	}

	return result.Point, nil
}

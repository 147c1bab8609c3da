// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jcodagnone/chantier/spatial"
	"github.com/jcodagnone/chantier/utils/httputils"
	"golang.org/x/time/rate"
)

const defaultGoogleMapsURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleMapsOptions configures a GoogleMapsGeocoder.
type GoogleMapsOptions struct {
	APIKey string

	// Country restricts results to one ISO 3166-1 alpha-2 country.
	Country string

	// BaseURL overrides the geocoding endpoint, mostly for tests.
	BaseURL string

	UserAgent string

	// Rate and Burst bound outgoing requests per second. Zero disables the limit.
	Rate  float64
	Burst int

	// Trace receives a dump of each request and response when not nil.
	Trace io.Writer
}

// GoogleMapsGeocoder uses Google Maps Geocoding API.
type GoogleMapsGeocoder struct {
	apiKey     string
	country    string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGoogleMapsGeocoder creates a new Google Maps geocoder.
func NewGoogleMapsGeocoder(opts GoogleMapsOptions) *GoogleMapsGeocoder {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultGoogleMapsURL
	}

	userAgent := "chantier/unknown"
	if opts.UserAgent != "" {
		userAgent = opts.UserAgent
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), max(opts.Burst, 1))
	}

	transport := &httputils.AppendRequestHeadersRoundTripper{
		Headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		Transport: &httputils.LoggingRoundTripper{
			Writer:       opts.Trace,
			DumpBody:     true,
			RedactParams: []string{"key"},
			Transport:    http.DefaultTransport,
		},
	}

	return &GoogleMapsGeocoder{
		apiKey:  opts.APIKey,
		country: strings.ToUpper(opts.Country),
		baseURL: baseURL,
		httpClient: &http.Client{
			// callers bound each lookup with their own context deadline
			Timeout:   10 * time.Second,
			Transport: transport,
		},
		limiter: limiter,
	}
}

type googleMapsResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, etc.
	ErrorMessage string `json:"error_message"`
}

// Geocode resolves address to the first result returned by Google Maps,
// restricted to the configured country.
func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, address string) (*GeocodingResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "empty address"}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, classifyTransportError(err)
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	if g.country != "" {
		params.Set("components", "country:"+g.country)
		params.Set("region", strings.ToLower(g.country))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "building request", Err: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ClassifyHTTPError(resp.StatusCode)
	}

	var gmResp googleMapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gmResp); err != nil {
		return nil, &GeocodingError{Type: ErrorTypeInvalidResponse, Message: "decoding response", Err: err}
	}

	if gmResp.Status != "OK" {
		geoErr := ClassifyStatus(gmResp.Status)
		if gmResp.ErrorMessage != "" {
			geoErr.Message = fmt.Sprintf("%s (%s)", geoErr.Message, gmResp.ErrorMessage)
		}

		return nil, geoErr
	}

	if len(gmResp.Results) == 0 {
		return nil, &GeocodingError{Type: ErrorTypeNotFound, Message: "no results found for address"}
	}

	result := gmResp.Results[0]

	confidence := "low"

	switch result.Geometry.LocationType {
	case "ROOFTOP", "RANGE_INTERPOLATED":
		confidence = "high"
	case "GEOMETRIC_CENTER":
		confidence = "medium"
	}

	return &GeocodingResult{
		Point: spatial.Point{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		},
		Confidence:  confidence,
		Provider:    "google_maps",
		DisplayName: result.FormattedAddress,
	}, nil
}

package geofy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	geocodeAttempts = 3
	geocodeTimeout  = 10 * time.Second
)

// geocodeBackoff is the fixed delay between reverse-geocoding attempts.
// Package variable so tests don't sleep for real.
var geocodeBackoff = time.Second

// ReverseGeocode resolves a coordinate to a country via the injected
// Geocoder. Transient failures are retried up to 3 times with a fixed
// 1-second backoff; after that the call degrades to nil. It never
// returns an error to the caller — the geotag stage either has a country
// or it doesn't.
func (cfg *Config) ReverseGeocode(ctx context.Context, coord GeoCoordinate) *Place {
	if cfg.Geocoder == nil || !coord.Valid() {
		return nil
	}

	for attempt := 1; attempt <= geocodeAttempts; attempt++ {
		place, err := cfg.Geocoder.Reverse(ctx, coord.Lat, coord.Lon)
		if err == nil {
			if place == nil || place.CountryName == "" {
				return nil
			}
			return place
		}

		slog.Warn("geofy: reverse geocode failed",
			"attempt", attempt, "lat", coord.Lat, "lon", coord.Lon, "error", err.Error())

		if attempt == geocodeAttempts {
			break
		}
		select {
		case <-time.After(geocodeBackoff):
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}

// NominatimGeocoder reverse-geocodes against a Nominatim-compatible
// endpoint (the public instance or a self-hosted one).
type NominatimGeocoder struct {
	URL        string       // base URL, e.g. "https://nominatim.openstreetmap.org"
	HTTPClient *http.Client // nil = http.DefaultClient
	UserAgent  string       // Nominatim requires an identifying UA
}

// nominatimResponse is the subset of the jsonv2 reverse payload we read.
type nominatimResponse struct {
	Error   string `json:"error"`
	Address struct {
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Reverse implements Geocoder.
func (g *NominatimGeocoder) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	client := g.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("zoom", "3") // country level

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.URL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geofy: nominatim status %d", resp.StatusCode)
	}

	const maxBody = 64 * 1024
	var body nominatimResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&body); err != nil {
		return nil, fmt.Errorf("geofy: nominatim decode: %w", err)
	}
	if body.Error != "" {
		return nil, fmt.Errorf("geofy: nominatim: %s", body.Error)
	}
	if body.Address.Country == "" {
		return nil, nil // open water etc. — no country, not an error
	}

	return &Place{
		CountryCode: body.Address.CountryCode,
		CountryName: body.Address.Country,
	}, nil
}

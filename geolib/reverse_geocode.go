package geolib

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ReverseGeocodeBasedOnCoords resolves coordinates into a postal
// address and adds it to the current location. Address components are
// stored by their type labels, administrative_area_level_1 and locality
// become region_name and city.
//
// If geocoding service reports an error, *GeocodeError is returned
// with the location known so far. If service is not accessible at all,
// *NetworkError is returned and it carries no location.
func (r *GeoResolver) ReverseGeocodeBasedOnCoords(ctx context.Context,
	coords Coordinates,
	apiKey string) (*GeoRecord, error) {
	latlng := formatCoordinate(coords.Latitude) + "," + formatCoordinate(coords.Longitude)

	var (
		jsonResponse geocodeResponse
		cached       bool
	)

	// a response is reusable only for the same service and the same key
	cacheKey := r.geocodeURL + "\x00" + apiKey + "\x00" + latlng

	if r.cache != nil {
		jsonResponse, cached = r.cache.get(cacheKey)
	}

	if cached {
		r.geocodeStats.Cached()
	} else {
		resp, err := r.requestGeocode(ctx, latlng, apiKey)
		r.geocodeStats.Used(err)

		if err != nil {
			return nil, err
		}

		jsonResponse = resp
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	geo := r.state.Geo()
	source := r.state.GeoSource()

	if geo == nil {
		geo = newCoordinatesRecord(coords)
		source = GeoSourceUser
	}

	if jsonResponse.ErrorMessage != "" {
		return nil, &GeocodeError{
			Geo:     geo,
			Message: jsonResponse.ErrorMessage,
		}
	}

	if len(jsonResponse.Results) == 0 {
		return nil, &GeocodeError{
			Geo:     geo,
			Message: ErrNoGeocodeResults.Error(),
			Err:     ErrNoGeocodeResults,
		}
	}

	if r.cache != nil && !cached {
		r.cache.set(cacheKey, jsonResponse)
	}

	geo = jsonResponse.Enrich(geo)

	r.state.SetGeo(geo, source)

	return geo, nil
}

func (r *GeoResolver) requestGeocode(ctx context.Context, latlng, apiKey string) (geocodeResponse, error) {
	jsonResponse := geocodeResponse{}

	u, err := url.Parse(r.geocodeURL)
	if err != nil {
		return jsonResponse, r.networkError(r.geocodeURL, fmt.Errorf("incorrect url: %w", err))
	}

	query := u.Query()

	query.Set("latlng", latlng)
	query.Set("key", apiKey)

	u.RawQuery = query.Encode()

	resp, err := r.request(ctx, u.String(), r.geocodeURL, "application/json")
	if err != nil {
		return jsonResponse, err
	}

	defer flushResponse(resp.Body)

	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&jsonResponse); err != nil {
		return jsonResponse, r.networkError(r.geocodeURL, fmt.Errorf("cannot parse a response: %w", err))
	}

	return jsonResponse, nil
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

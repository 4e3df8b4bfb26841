package geolib

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// flexString accepts both JSON strings and numbers. Some IP geolocation
// services return zip codes as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var value string

		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("cannot parse a string: %w", err)
		}

		*f = flexString(value)

		return nil
	}

	var value json.Number

	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("cannot parse a number: %w", err)
	}

	*f = flexString(value.String())

	return nil
}

type freegeoipResponse struct {
	IP          string     `json:"ip"`
	CountryName string     `json:"country_name"`
	RegionName  string     `json:"region_name"`
	City        string     `json:"city"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	ZipCode     flexString `json:"zip_code"`
}

func (f *freegeoipResponse) GeoRecord() *GeoRecord {
	return &GeoRecord{
		Country:    f.CountryName,
		RegionName: f.RegionName,
		City:       f.City,
		PostalCode: string(f.ZipCode),
		Latitude:   f.Latitude,
		Longitude:  f.Longitude,
	}
}

type geocodeAddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type geocodeResult struct {
	FormattedAddress  string                    `json:"formatted_address"`
	AddressComponents []geocodeAddressComponent `json:"address_components"`
}

type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Results      []geocodeResult `json:"results"`
}

// Enrich copies a record and fills it with an address of the first
// result. Later components overwrite earlier ones if they share the
// same key.
func (g *geocodeResponse) Enrich(geo *GeoRecord) *GeoRecord {
	rv := geo.Clone()
	if rv == nil {
		rv = &GeoRecord{}
	}

	result := g.Results[0]

	rv.FormattedAddress = result.FormattedAddress

	for _, component := range result.AddressComponents {
		if len(component.Types) == 0 {
			continue
		}

		key := component.Types[0]

		switch key {
		case "administrative_area_level_1":
			key = "region_name"
		case "locality":
			key = "city"
		}

		rv.Set(key, component.LongName)
	}

	return rv
}

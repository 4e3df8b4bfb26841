package geolib

import "encoding/json"

// GeoSource tells which path has populated a current GeoRecord.
type GeoSource string

const (
	// GeoSourceNone means that nothing is resolved yet.
	GeoSourceNone GeoSource = ""

	// GeoSourceIP means that a record is based on IP address of the
	// user. This is a coarse location.
	GeoSourceIP GeoSource = "ip"

	// GeoSourceUser means that a record is based on coordinates given by
	// platform. This is a precise location.
	GeoSourceUser GeoSource = "user"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Position is a response of Geolocator.
type Position struct {
	Coords Coordinates `json:"coords"`
}

// GeoRecord is a partial set of geographic attributes of the user. Any
// field could be absent: empty strings and nil coordinates mean that
// a source has no such data.
//
// Components contains address components of reverse geocoding which
// have no dedicated field. A key is a type label of the component, like
// 'route' or 'administrative_area_level_2'.
type GeoRecord struct {
	Country          string
	RegionName       string
	City             string
	PostalCode       string
	FormattedAddress string
	Latitude         *float64
	Longitude        *float64
	Components       map[string]string
}

// Clone returns a deep copy of the record.
func (g *GeoRecord) Clone() *GeoRecord {
	if g == nil {
		return nil
	}

	rv := *g

	if g.Latitude != nil {
		lat := *g.Latitude
		rv.Latitude = &lat
	}

	if g.Longitude != nil {
		lng := *g.Longitude
		rv.Longitude = &lng
	}

	if g.Components != nil {
		rv.Components = make(map[string]string, len(g.Components))

		for k, v := range g.Components {
			rv.Components[k] = v
		}
	}

	return &rv
}

// Set sets an attribute by its key. Known keys are mapped to fields,
// everything else goes to Components.
func (g *GeoRecord) Set(key, value string) {
	switch key {
	case "country":
		g.Country = value
	case "region_name":
		g.RegionName = value
	case "city":
		g.City = value
	case "postal_code":
		g.PostalCode = value
	case "formatted_address":
		g.FormattedAddress = value
	default:
		if g.Components == nil {
			g.Components = map[string]string{}
		}

		g.Components[key] = value
	}
}

// MarshalJSON renders a record as a flat JSON object. Absent
// attributes are omitted.
func (g *GeoRecord) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}

	rv := make(map[string]interface{}, len(g.Components)+7)

	for k, v := range g.Components {
		rv[k] = v
	}

	setString := func(key, value string) {
		if value != "" {
			rv[key] = value
		}
	}

	setString("country", g.Country)
	setString("region_name", g.RegionName)
	setString("city", g.City)
	setString("postal_code", g.PostalCode)
	setString("formatted_address", g.FormattedAddress)

	if g.Latitude != nil {
		rv["latitude"] = *g.Latitude
	}

	if g.Longitude != nil {
		rv["longitude"] = *g.Longitude
	}

	return json.Marshal(rv)
}

// UserGeoResult is a result of GeoResolver.RequestAndSetGeoFromUser.
//
// If platform has given coordinates, Error is empty and Geo is a
// precise location. Otherwise Geo is an IP-based location and Error
// contains a reason why precise location was unavailable.
type UserGeoResult struct {
	Geo   *GeoRecord `json:"geo"`
	Error string     `json:"error,omitempty"`
}

// Degraded tells if result has fallen back to IP-based location.
func (u UserGeoResult) Degraded() bool {
	return u.Error != ""
}

func newCoordinatesRecord(coords Coordinates) *GeoRecord {
	lat := coords.Latitude
	lng := coords.Longitude

	return &GeoRecord{
		Latitude:  &lat,
		Longitude: &lng,
	}
}

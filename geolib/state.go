package geolib

// ResolverState is a session-scoped state of GeoResolver. It is a plain
// value: GeoResolver owns its own copy and guards it.
type ResolverState struct {
	ip           string
	geoWithIPURL string
	geo          *GeoRecord
	geoSource    GeoSource
}

// IP returns a known public IP address of the user.
func (r ResolverState) IP() string {
	return r.ip
}

func (r *ResolverState) SetIP(ip string) {
	r.ip = ip
}

// GeoWithIPURL returns IP-qualified URL of IP geolocation service.
func (r ResolverState) GeoWithIPURL() string {
	return r.geoWithIPURL
}

func (r *ResolverState) SetGeoWithIPURL(url string) {
	r.geoWithIPURL = url
}

func (r ResolverState) Geo() *GeoRecord {
	return r.geo
}

func (r ResolverState) GeoSource() GeoSource {
	return r.geoSource
}

// SetGeo sets a record together with its source. They always go in
// pairs.
func (r *ResolverState) SetGeo(geo *GeoRecord, source GeoSource) {
	r.geo = geo
	r.geoSource = source
}

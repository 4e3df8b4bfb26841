// This package provides a set of structs and functions which are used
// to find out where the current user is.
//
// geolib is core of the georesolver project. You can treat the rest of
// the application as an _example_ on how to use this library: how to
// build an HTTP client, how to pass a platform geolocation capability
// and how to render results.
//
// GeoResolver is a main entity of the geolib. It resolves data in 3
// steps, each of them is lazy and cached:
//
//    1. Public IP address of the user (ipify).
//    2. Coarse location based on this IP address (freegeoip).
//    3. Precise location, if platform allows to get coordinates. These
//       coordinates are reverse-geocoded into a postal address with
//       Google Geocoding API if API key is given.
//
// If platform refuses to give coordinates, GeoResolver falls back to
// IP-based location and annotates a result with a reason.
//
// GeoResolver is intended to live as long as a user session lives. It
// does not persist anything, does not retry failed requests and does
// not deduplicate concurrent calls.
package geolib

// Georesolver is a tool to find out where the current user is.
//
// It works in 3 steps: it detects a public IP address, resolves this
// address into coarse location and, if platform can give precise
// coordinates, resolves them into a postal address. If coordinates are
// unavailable, a result based on IP address is returned together with
// a reason.
//
// Tool itself is organized into 2 logical parts:
//
// Geolib
//
// geolib is a main package of the application which contains
// GeoResolver struct and all logic related to location resolving. It
// has no idea about a platform: geolocation capability is pluggable.
//
// Locators
//
// This package has a set of geolocation capability implementations:
// static coordinates, always denied geolocation and an adapter for
// plain functions.
//
// A main package itself is an example of how to wire both geolib and
// locators. This is a CLI which prints results as JSON.
package main

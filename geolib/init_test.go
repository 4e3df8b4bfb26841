package geolib_test

import (
	"context"
	"net/http"

	"github.com/9seconds/georesolver/geolib"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	freegeoipResponseOk = `{
  "ip": "123.456.789",
  "country_code": "CC",
  "country_name": "Country",
  "region_code": "ST",
  "region_name": "State",
  "city": "City",
  "zip_code": 12345,
  "time_zone": "America/Phoenix",
  "latitude": 33.333333,
  "longitude": 111.1111111,
  "metro_code": 0
}`

	geocodeResponseOk = `{
  "results": [{
    "types": ["locality", "political"],
    "formatted_address": "Winnetka, IL, USA",
    "address_components": [{
      "long_name": "Winnetka",
      "short_name": "Winnetka",
      "types": ["locality", "political"]
    }, {
      "long_name": "Illinois",
      "short_name": "IL",
      "types": ["administrative_area_level_1", "political"]
    }, {
      "long_name": "United States",
      "short_name": "US",
      "types": ["country", "political"]
    }],
    "geometry": {
      "location": [-87.7417070, 42.1083080],
      "location_type": "APPROXIMATE"
    },
    "place_id": "ChIJW8Va5TnED4gRY91Ng47qy3Q"
  }],
  "status": "OK"
}`
)

func floatPtr(value float64) *float64 {
	return &value
}

func freegeoipGeo() *geolib.GeoRecord {
	return &geolib.GeoRecord{
		Country:    "Country",
		RegionName: "State",
		City:       "City",
		PostalCode: "12345",
		Latitude:   floatPtr(33.333333),
		Longitude:  floatPtr(111.1111111),
	}
}

func coordinatesGeo() *geolib.GeoRecord {
	return &geolib.GeoRecord{
		Latitude:  floatPtr(33),
		Longitude: floatPtr(111),
	}
}

type GeolocatorMock struct {
	mock.Mock
}

func (m *GeolocatorMock) CurrentPosition(ctx context.Context) (geolib.Position, error) {
	args := m.Called(ctx)

	return args.Get(0).(geolib.Position), args.Error(1)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(endpoint string, err error) {
	m.Called(endpoint, err)
}

func (m *LoggerMock) GeolocationError(err error) {
	m.Called(err)
}

type MockedResolverTestSuite struct {
	suite.Suite

	http           geolib.HTTPClient
	geolocatorMock *GeolocatorMock
	loggerMock     *LoggerMock
	r              *geolib.GeoResolver
}

func (suite *MockedResolverTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedResolverTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedResolverTestSuite) SetupTest() {
	suite.http = geolib.NewHTTPClient(&http.Client{}, "test-agent", 0, 0)
	suite.geolocatorMock = &GeolocatorMock{}
	suite.loggerMock = &LoggerMock{}
	suite.r = geolib.NewGeoResolver(suite.http,
		suite.geolocatorMock,
		geolib.WithLogger(suite.loggerMock))
}

func (suite *MockedResolverTestSuite) TearDownTest() {
	httpmock.Reset()

	suite.geolocatorMock.AssertExpectations(suite.T())
	suite.loggerMock.AssertExpectations(suite.T())
}

func (suite *MockedResolverTestSuite) SetState(ip, geoWithIPURL string, geo *geolib.GeoRecord, source geolib.GeoSource) {
	state := geolib.ResolverState{}

	state.SetIP(ip)
	state.SetGeoWithIPURL(geoWithIPURL)
	state.SetGeo(geo, source)

	suite.r.Restore(state)
}

package locators_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/9seconds/georesolver/geolib"
	"github.com/9seconds/georesolver/locators"
	"github.com/stretchr/testify/suite"
)

type IntegrationResolverTestSuite struct {
	suite.Suite

	http geolib.HTTPClient
}

func (suite *IntegrationResolverTestSuite) SetupTest() {
	suite.http = geolib.NewHTTPClient(&http.Client{Timeout: 10 * time.Second},
		"test-agent", 100*time.Millisecond, 1)
}

func (suite *IntegrationResolverTestSuite) TestGetIP() {
	r := geolib.NewGeoResolver(suite.http, locators.NewDenied(""))
	ip, err := r.GetIP(context.Background())

	suite.NoError(err)
	suite.NotEmpty(ip)
}

func (suite *IntegrationResolverTestSuite) TestStaticWithoutKey() {
	loc, _ := locators.NewStatic(42.108308, -87.741707)
	r := geolib.NewGeoResolver(suite.http, loc)

	result, err := r.RequestAndSetGeoFromUser(context.Background(), "")

	suite.NoError(err)
	suite.False(result.Degraded())
	suite.Equal(42.108308, *result.Geo.Latitude)
}

func TestIntegrationResolver(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipped because of the short mode")
		return
	}

	suite.Run(t, &IntegrationResolverTestSuite{})
}

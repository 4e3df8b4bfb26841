package geolib

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type httpClient struct {
	userAgent   string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if err := h.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("cannot wait for a rate limiter: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		if resp != nil {
			flushResponse(resp.Body)
		}

		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		flushResponse(resp.Body)

		return nil, fmt.Errorf("netloc has responded with %s", resp.Status)
	}

	return resp, nil
}

// NewHTTPClient prepares a new HTTP client, wraps it with rate limiter,
// sets a user agent etc.
//
// Please see https://pkg.go.dev/golang.org/x/time/rate to get a meaning
// of rate limiter parameters. If rateLimiterInterval is 0, then rate
// limiter is disabled.
//
// A timeout is taken from a given http.Client.
func NewHTTPClient(client *http.Client,
	userAgent string,
	rateLimiterInterval time.Duration,
	rateLimitBurst int) HTTPClient {
	limit := rate.Inf

	if rateLimiterInterval > 0 {
		limit = rate.Every(rateLimiterInterval)
	}

	if rateLimitBurst < 1 {
		rateLimitBurst = 1
	}

	return httpClient{
		userAgent:   userAgent,
		client:      client,
		rateLimiter: rate.NewLimiter(limit, rateLimitBurst),
	}
}

func flushResponse(body io.ReadCloser) {
	io.Copy(ioutil.Discard, body) // nolint: errcheck
	body.Close()
}

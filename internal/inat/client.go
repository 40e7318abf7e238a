// Package inat is a client for the public iNaturalist observations API.
package inat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public, unauthenticated observations endpoint.
const DefaultBaseURL = "https://api.inaturalist.org"

const observationsPath = "/v1/observations"

// Client handles communication with the iNaturalist API.
// Each call is a single best-effort GET with no retries; the caller decides
// whether to re-invoke on failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new iNaturalist API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: slog.Default(),
	}
}

// WithLogger sets a custom logger for the client.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// Observations issues one GET against the observations endpoint and decodes
// the response. Failures are typed: *TransportError, *StatusError, ErrNoData
// or *DecodeError. A decode failure discards the whole batch; no partial
// result list is ever returned.
func (c *Client) Observations(ctx context.Context, query url.Values) (*ObservationResponse, error) {
	reqURL, err := c.buildObservationsURL(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	c.logger.DebugContext(ctx, "fetching observations",
		slog.String("url", reqURL),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "inat-events/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "iNaturalist request failed",
			slog.String("error", err.Error()),
			slog.String("url", reqURL),
		)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Body is captured for diagnostics only, never surfaced to the caller.
		body, _ := io.ReadAll(resp.Body)
		c.logger.ErrorContext(ctx, "iNaturalist returned non-2xx status",
			slog.Int("status_code", resp.StatusCode),
			slog.String("response_body", string(body)),
		)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if len(body) == 0 {
		return nil, ErrNoData
	}

	var result ObservationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.ErrorContext(ctx, "failed to decode observations response",
			slog.String("error", err.Error()),
		)
		return nil, &DecodeError{Err: err}
	}

	c.logger.DebugContext(ctx, "observations fetched",
		slog.Int("result_count", len(result.Results)),
		slog.Int("total_results", result.TotalResults),
	)

	return &result, nil
}

// buildObservationsURL constructs the full request URL with query parameters.
func (c *Client) buildObservationsURL(query url.Values) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path = observationsPath
	base.RawQuery = query.Encode()

	return base.String(), nil
}

// Package client is a typed HTTP client for the pool table finder API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultRequestSource = "go-client"
)

// ErrLocationExists matches the error returned when the venue was already submitted.
var ErrLocationExists = errors.New("location already exists")

type Client struct {
	BaseURL       *url.URL
	HTTPClient    *http.Client
	RequestSource string
}

func NewClient(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base URL")
	}
	return &Client{
		BaseURL: u,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
		RequestSource: defaultRequestSource,
	}, nil
}

type Location struct {
	ID              int64     `json:"id"`
	ExternalPlaceID string    `json:"external_place_id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	PoolTableCount  int       `json:"pool_table_count"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateLocationRequest struct {
	ExternalPlaceID string  `json:"external_place_id"`
	Name            string  `json:"name"`
	Address         string  `json:"address"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	PoolTableCount  int     `json:"pool_table_count,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

type Marker struct {
	ID       int64 `json:"id"`
	Position struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"position"`
	Title string `json:"title"`
	Icon  struct {
		URL    string `json:"url"`
		Size   int    `json:"size"`
		Anchor struct {
			X int `json:"x"`
			Y int `json:"y"`
		} `json:"anchor"`
	} `json:"icon"`
	Popup string `json:"popup"`
}

type MarkerSet struct {
	Zoom     int      `json:"zoom"`
	Tier     string   `json:"tier"`
	IconSize int      `json:"icon_size"`
	Markers  []Marker `json:"markers"`
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type markersQuery struct {
	Zoom int `url:"zoom,omitempty"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrLocationExists && e.StatusCode == http.StatusConflict
}

func (c *Client) GetLocations(ctx context.Context) ([]Location, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/locations", nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create locations request")
	}

	var locations []Location
	if err := c.do(req, &locations); err != nil {
		return nil, errors.Wrap(err, "fetch locations")
	}
	return locations, nil
}

// CreateLocation submits a venue. A duplicate submission returns an error
// matching ErrLocationExists.
func (c *Client) CreateLocation(ctx context.Context, in CreateLocationRequest) (*Location, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/locations", nil, in)
	if err != nil {
		return nil, errors.Wrap(err, "create location request")
	}

	var created Location
	if err := c.do(req, &created); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message == "" {
			apiErr.Message = "Failed to create location"
		}
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetMarkers(ctx context.Context, zoom int) (*MarkerSet, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/markers", markersQuery{Zoom: zoom}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create markers request")
	}

	var set MarkerSet
	if err := c.do(req, &set); err != nil {
		return nil, errors.Wrap(err, "fetch markers")
	}
	return &set, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create health request")
	}

	var h Health
	if err := c.do(req, &h); err != nil {
		return nil, errors.Wrap(err, "check health")
	}
	return &h, nil
}

func (c *Client) buildURL(endpoint string, queryParams interface{}) (string, error) {
	rel, err := url.Parse(endpoint)
	if err != nil {
		return "", errors.Wrap(err, "parse endpoint")
	}
	u := c.BaseURL.ResolveReference(rel)

	if queryParams != nil {
		v, err := query.Values(queryParams)
		if err != nil {
			return "", errors.Wrap(err, "encode query parameters")
		}
		u.RawQuery = v.Encode()
	}
	return u.String(), nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, queryParams, body interface{}) (*http.Request, error) {
	reqURL, err := c.buildURL(endpoint, queryParams)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.RequestSource != "" {
		req.Header.Set("X-Request-Source", c.RequestSource)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, v interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "execute HTTP request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		bodyBytes, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(bodyBytes, apiErr); err != nil {
			apiErr.Message = string(bodyBytes)
		}
		return apiErr
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}

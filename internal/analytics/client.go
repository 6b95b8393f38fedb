package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// ErrUpstreamStatus indicates the analytics backend answered with a
// non-success status.
var ErrUpstreamStatus = errors.New("analytics: upstream returned error status")

const requestTimeout = 15 * time.Second

// Client fetches typed analytics payloads over bearer-token-authenticated
// GET requests. Concurrent fetches for the same report type are collapsed
// through singleflight before hitting the cache or the network.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *Cache
	group      singleflight.Group
}

// NewClient constructs an analytics client. Cache is optional.
func NewClient(baseURL, token string, cache *Cache) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("analytics: base URL required")
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      cache,
	}, nil
}

// newPayload allocates the typed payload for a report type.
func newPayload(t report.Type) (any, error) {
	switch t {
	case report.TypeExpense:
		return &report.ExpenseAnalytics{}, nil
	case report.TypeAttendance:
		return &report.AttendanceAnalytics{}, nil
	case report.TypeTask:
		return &report.TaskAnalytics{}, nil
	case report.TypeTravel:
		return &report.TravelAnalytics{}, nil
	case report.TypePerformance:
		return &report.PerformanceAnalytics{}, nil
	case report.TypeLeave:
		return &report.LeaveAnalytics{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", report.ErrUnsupportedType, t)
	}
}

// Fetch returns the decoded analytics payload for the report type. The
// result is always one of the typed payload pointers, never raw JSON.
func (c *Client) Fetch(ctx context.Context, t report.Type) (any, error) {
	key := "analytics:" + string(t)
	v, err, _ := c.group.Do(key, func() (any, error) {
		dest, err := newPayload(t)
		if err != nil {
			return nil, err
		}
		err = c.cache.FetchJSON(ctx, key, dest, func(ctx context.Context) (interface{}, error) {
			return c.fetchRemote(ctx, t)
		})
		if err != nil {
			return nil, err
		}
		return dest, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *Client) fetchRemote(ctx context.Context, t report.Type) (any, error) {
	url := fmt.Sprintf("%s/pdf-reports/%s", c.baseURL, t)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analytics: fetch %s: %w", t, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s %d: %s", ErrUpstreamStatus, t, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	dest, err := newPayload(t)
	if err != nil {
		return nil, err
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return nil, fmt.Errorf("analytics: decode %s payload: %w", t, err)
	}
	return dest, nil
}

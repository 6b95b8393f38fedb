// Package export renders composed HTML documents into PDF bytes through a
// Gotenberg endpoint.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrRenderTimeout indicates the rendering request exceeded the configured timeout.
	ErrRenderTimeout = errors.New("export: render timeout")
	// ErrRenderInvalidResponse indicates Gotenberg returned a non-success status code.
	ErrRenderInvalidResponse = errors.New("export: invalid render response")
	// ErrRenderTooSmall indicates the generated PDF was below the minimum expected size.
	ErrRenderTooSmall = errors.New("export: pdf below minimum size")
)

const (
	pdfMinSizeBytes   = 512
	pdfMaxRetry       = 2
	pdfRequestTimeout = 30 * time.Second
)

// paperOptions are the Letter-size print settings sent with every render.
var paperOptions = map[string]string{
	"paperWidth":   "8.5",
	"paperHeight":  "11",
	"marginTop":    "0.5",
	"marginBottom": "0.5",
	"marginLeft":   "0.5",
	"marginRight":  "0.5",
	"waitDelay":    "100",
}

// Client converts HTML documents to PDF via the Gotenberg API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	retries    int
	timeout    time.Duration
	minSize    int
}

// NewClient constructs a render client for the given Gotenberg endpoint.
func NewClient(endpoint string) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("export: gotenberg endpoint required")
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: pdfRequestTimeout},
		retries:    pdfMaxRetry,
		timeout:    pdfRequestTimeout,
		minSize:    pdfMinSizeBytes,
	}, nil
}

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// Ping checks whether the Gotenberg service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("export: gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

// RenderHTML converts a complete HTML document into PDF bytes. Transient
// failures (5xx, network errors, timeouts, undersized output) are retried a
// bounded number of times; client errors fail immediately.
func (c *Client) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("export: render client not initialised")
	}
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "report.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}
	for field, value := range paperOptions {
		if err := writer.WriteField(field, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	payload := body.Bytes()
	contentType := writer.FormDataContentType()
	attempts := c.retries + 1
	var lastErr error
	for i := 0; i < attempts; i++ {
		attemptCtx := ctx
		var cancel context.CancelFunc
		if c.timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, c.timeout)
		}
		req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint+"/forms/chromium/convert/html", bytes.NewReader(payload))
		if err != nil {
			if cancel != nil {
				cancel()
			}
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if cancel != nil {
				cancel()
			}
			if ne := classifyNetError(err); ne != nil {
				lastErr = ne
			} else {
				lastErr = err
			}
			continue
		}
		data, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if cancel != nil {
			cancel()
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("%w: status %d", ErrRenderInvalidResponse, resp.StatusCode)
			continue
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("%w: status %d: %s", ErrRenderInvalidResponse, resp.StatusCode, truncate(data, 512))
		}
		if readErr != nil {
			lastErr = readErr
			continue
		}
		if len(data) < c.minSize {
			lastErr = ErrRenderTooSmall
			continue
		}
		return data, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: exhausted attempts", ErrRenderInvalidResponse)
	}
	return nil, fmt.Errorf("export: render failed after %d attempts: %w", attempts, lastErr)
}

func classifyNetError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrRenderTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrRenderTimeout
	}
	return err
}

func truncate(data []byte, max int) string {
	if len(data) > max {
		data = data[:max]
	}
	return string(data)
}

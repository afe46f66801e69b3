package ambient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Ambient Weather REST API root.
	DefaultBaseURL = "https://api.ambientweather.net/v1/"

	// MaxRecords is the largest limit the API accepts for device data and the
	// limit used when none is given.
	MaxRecords = 288

	// RequestTimeout bounds a single request including reading the body.
	RequestTimeout = 2 * time.Minute

	// ConnectTimeout bounds connection establishment.
	ConnectTimeout = 20 * time.Second
)

// Client handles Ambient Weather API communication
type Client struct {
	baseURL        string
	applicationKey string
	apiKey         string
	httpClient     *http.Client
	logger         *slog.Logger
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new Ambient Weather API client. Both keys are issued at
// https://ambientweather.net/account and are sent as query parameters on
// every request.
func NewClient(applicationKey, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:        DefaultBaseURL,
		applicationKey: applicationKey,
		apiKey:         apiKey,
		httpClient:     newHTTPClient(),
		logger:         slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = strings.TrimRight(c.baseURL, "/") + "/"

	return c
}

// WithBaseURL points the client at a different API root
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// newHTTPClient builds the shared transport: HTTP/1.1 only, bounded dial,
// default redirect policy.
func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: ConnectTimeout,
		TLSNextProto:        map[string]func(string, *tls.Conn) http.RoundTripper{},
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{Transport: transport}
}

// ListDevices returns the devices registered to the account.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	body, err := c.doRequest(ctx, c.requestURL("devices"))
	if err != nil {
		return nil, err
	}

	var devices []Device
	if err := json.Unmarshal(body, &devices); err != nil {
		return nil, fmt.Errorf("failed to decode devices: %w", err)
	}

	return devices, nil
}

// QueryDeviceData returns the most recent MaxRecords records for a device.
func (c *Client) QueryDeviceData(ctx context.Context, macAddress string) ([]DataRecord, error) {
	return c.QueryDeviceDataWithLimit(ctx, macAddress, MaxRecords)
}

// QueryDeviceDataWithLimit returns up to limit of the most recent records for a device.
func (c *Client) QueryDeviceDataWithLimit(ctx context.Context, macAddress string, limit int) ([]DataRecord, error) {
	return c.QueryDeviceDataUntil(ctx, macAddress, limit, "")
}

// QueryDeviceDataUntil returns up to limit records for a device ending at
// endDate. An empty endDate leaves the parameter off and the API answers
// with the latest records.
func (c *Client) QueryDeviceDataUntil(ctx context.Context, macAddress string, limit int, endDate string) ([]DataRecord, error) {
	params := []queryParam{{"limit", fmt.Sprintf("%d", limit)}}
	if endDate != "" {
		params = append(params, queryParam{"endDate", endDate})
	}

	body, err := c.doRequest(ctx, c.requestURL("devices/"+url.PathEscape(macAddress), params...))
	if err != nil {
		return nil, err
	}

	var payloads []dataRecordPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("failed to decode device data: %w", err)
	}

	records := make([]DataRecord, 0, len(payloads))
	for _, p := range payloads {
		records = append(records, newDataRecord(p, macAddress))
	}

	return records, nil
}

type queryParam struct {
	key   string
	value string
}

// requestURL renders base+path with the credentials first and params after
// them, in the given order.
func (c *Client) requestURL(path string, params ...queryParam) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString(path)
	b.WriteString("?applicationKey=")
	b.WriteString(url.QueryEscape(c.applicationKey))
	b.WriteString("&apiKey=")
	b.WriteString(url.QueryEscape(c.apiKey))
	for _, p := range params {
		b.WriteString("&")
		b.WriteString(p.key)
		b.WriteString("=")
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// doRequest performs a GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// keep the keys out of error strings
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = req.URL.Path
		}
		c.logger.Debug("ambient request failed", "path", req.URL.Path, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("ambient request",
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

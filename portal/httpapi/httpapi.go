// Package httpapi implements portal.Backend against the licensing REST API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/portalcc/licensetui/portal"
)

const userAgent = "licensetui/1"

// Client talks JSON to the licensing API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, logger *slog.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the "message" field of the response body, if any.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s: server returned status %d", e.Method, e.Path, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return portal.ErrNotFound
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return portal.ErrUnauthorized
	case e.StatusCode >= 500:
		return portal.ErrUnavailable
	}
	return nil
}

// flexID accepts ids sent either as JSON strings or numbers.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = flexID(n.String())
	return nil
}

type schoolRecord struct {
	ID                flexID `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Licenses          int    `json:"licenses"`
	AllLicensesActive bool   `json:"allLicensesActive"`
}

type schoolDetail struct {
	SchoolName string `json:"schoolName"`
	Email      string `json:"email"`
}

type licenseRecord struct {
	ID         flexID  `json:"id"`
	Status     string  `json:"status"`
	ExpiryDate string  `json:"expiryDate"`
	DeviceName *string `json:"deviceName"`
}

type renewRequest struct {
	ExpiryDate string `json:"expiryDate"`
}

type addLicensesRequest struct {
	NumLicenses int `json:"numLicenses"`
}

type errorBody struct {
	Message string `json:"message"`
}

// parseExpiry accepts RFC 3339 timestamps and plain dates.
func parseExpiry(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

func (r licenseRecord) toLicense() (portal.License, error) {
	if r.ID == "" {
		return portal.License{}, fmt.Errorf("license without id: %w", portal.ErrMalformedRecord)
	}
	expiry, err := parseExpiry(r.ExpiryDate)
	if err != nil {
		return portal.License{}, fmt.Errorf("license %s: bad expiryDate %q: %w", r.ID, r.ExpiryDate, portal.ErrMalformedRecord)
	}
	var device string
	if r.DeviceName != nil {
		device = *r.DeviceName
	}
	return portal.License{
		ID:         string(r.ID),
		Status:     r.Status,
		ExpiryDate: expiry,
		DeviceName: device,
	}, nil
}

func schoolPath(schoolID string) string {
	return "/schools/" + url.PathEscape(schoolID)
}

func licensePath(schoolID, licenseID string) string {
	return schoolPath(schoolID) + "/licenses/" + url.PathEscape(licenseID)
}

func (c *Client) ListSchools(ctx context.Context) ([]portal.School, error) {
	var records []schoolRecord
	if err := c.doRequest(ctx, http.MethodGet, "/schools/admin", nil, &records); err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	schools := make([]portal.School, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("school %q without id: %w", r.Name, portal.ErrMalformedRecord)
		}
		schools = append(schools, portal.School{
			ID:                string(r.ID),
			Name:              r.Name,
			Email:             r.Email,
			LicenseCount:      r.Licenses,
			AllLicensesActive: r.AllLicensesActive,
		})
	}
	return schools, nil
}

func (c *Client) GetSchool(ctx context.Context, schoolID string) (portal.School, error) {
	var d schoolDetail
	if err := c.doRequest(ctx, http.MethodGet, schoolPath(schoolID), nil, &d); err != nil {
		return portal.School{}, fmt.Errorf("failed to get school %s: %w", schoolID, err)
	}
	return portal.School{ID: schoolID, Name: d.SchoolName, Email: d.Email}, nil
}

func (c *Client) CreateSchool(ctx context.Context, s portal.NewSchool) error {
	if err := c.doRequest(ctx, http.MethodPost, "/schools/admin", s, nil); err != nil {
		return fmt.Errorf("failed to create school: %w", err)
	}
	return nil
}

func (c *Client) DeleteSchool(ctx context.Context, schoolID string) error {
	if err := c.doRequest(ctx, http.MethodDelete, schoolPath(schoolID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete school %s: %w", schoolID, err)
	}
	return nil
}

func (c *Client) ListLicenses(ctx context.Context, schoolID string) ([]portal.License, error) {
	var records []licenseRecord
	if err := c.doRequest(ctx, http.MethodGet, schoolPath(schoolID)+"/licenses", nil, &records); err != nil {
		return nil, fmt.Errorf("failed to list licenses of %s: %w", schoolID, err)
	}
	licenses := make([]portal.License, 0, len(records))
	for _, r := range records {
		l, err := r.toLicense()
		if err != nil {
			return nil, err
		}
		licenses = append(licenses, l)
	}
	return licenses, nil
}

func (c *Client) UpdateLicenseExpiry(ctx context.Context, schoolID, licenseID string, expiry time.Time) error {
	req := renewRequest{ExpiryDate: expiry.UTC().Format(time.RFC3339)}
	if err := c.doRequest(ctx, http.MethodPut, licensePath(schoolID, licenseID), req, nil); err != nil {
		return fmt.Errorf("failed to renew license %s: %w", licenseID, err)
	}
	return nil
}

func (c *Client) DeleteLicense(ctx context.Context, schoolID, licenseID string) error {
	if err := c.doRequest(ctx, http.MethodDelete, licensePath(schoolID, licenseID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete license %s: %w", licenseID, err)
	}
	return nil
}

func (c *Client) AddLicenses(ctx context.Context, schoolID string, count int) error {
	req := addLicensesRequest{NumLicenses: count}
	if err := c.doRequest(ctx, http.MethodPost, schoolPath(schoolID)+"/licenses/admin", req, nil); err != nil {
		return fmt.Errorf("failed to add %d licenses to %s: %w", count, schoolID, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, reqBody, respBody any) error {
	var bodyReader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %w", portal.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	c.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Message
		}
		return apiErr
	}

	if respBody == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, respBody); err != nil {
		return fmt.Errorf("failed to decode response: %w: %w", portal.ErrMalformedRecord, err)
	}
	return nil
}

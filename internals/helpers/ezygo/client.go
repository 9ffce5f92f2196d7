package ezygo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

/* ==========================
   Ezygo portal client
========================== */

const defaultBaseURL = "https://production.api.ezygo.app/api/v1"

// ErrUnauthorized means the portal rejected the stored token (or credentials);
// the user has to re-link their account.
var ErrUnauthorized = errors.New("ezygo: portal rejected credentials")

type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *CircuitBreaker
}

// NewClient builds a portal client. baseURL may be empty to use the production
// portal; every client carries its own circuit breaker.
func NewClient(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		breaker: NewCircuitBreaker(),
	}
}

// Login exchanges portal credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{
		Username: username,
		Password: password,
		Stay:     true,
	}, &resp)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.AccessToken) == "" {
		return "", fmt.Errorf("ezygo: login response without access token")
	}
	return resp.AccessToken, nil
}

// Courses fetches the user's enrolled courses.
func (c *Client) Courses(ctx context.Context, token string) ([]Course, error) {
	var out []Course
	if err := c.do(ctx, http.MethodGet, "/institutionuser/courses/withusers", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AttendanceReport fetches the detailed per-session report for an academic
// period. Empty year/semester means the portal's current defaults.
func (c *Client) AttendanceReport(ctx context.Context, token, year, semester string) (*AttendanceReport, error) {
	path := "/attendancereports/institutionuser/detailed"
	q := url.Values{}
	if year != "" {
		q.Set("academic_year", year)
	}
	if semester != "" {
		q.Set("semester", semester)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out AttendanceReport
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetDefaultAcademicPeriod pushes the default year/semester to the portal so
// subsequent report fetches line up with what the user sees there.
func (c *Client) SetDefaultAcademicPeriod(ctx context.Context, token, year, semester string) error {
	return c.do(ctx, http.MethodPost, "/institutionuser/settings", token, academicPeriodRequest{
		AcademicYear: year,
		Semester:     semester,
	}, nil)
}

// do runs one portal request through the circuit breaker. 401/403 counts as a
// credential problem, not an upstream outage, so it does not trip the breaker.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	if err := c.breaker.Allow(); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ezygo: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("ezygo: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.ReportFailure()
		return fmt.Errorf("ezygo: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.breaker.ReportSuccess()
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		c.breaker.ReportFailure()
		return fmt.Errorf("ezygo: %s %s: portal returned %d", method, path, resp.StatusCode)
	case resp.StatusCode >= 400:
		c.breaker.ReportSuccess()
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("ezygo: %s %s: %s", method, path, apiErr.Message)
		}
		return fmt.Errorf("ezygo: %s %s: portal returned %d", method, path, resp.StatusCode)
	}

	c.breaker.ReportSuccess()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ezygo: decode %s response: %w", path, err)
	}
	return nil
}

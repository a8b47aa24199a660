// Package client talks to the remote workload API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/faculty-workload/internal/domain"
	"github.com/spec-kit/faculty-workload/internal/observability"
	apperrors "github.com/spec-kit/faculty-workload/pkg/util/errorutil"
)

// Endpoint paths relative to the API base URL.
const (
	PathWorkload  = "/workload"
	PathInsights  = "/insights"
	PathHealth    = "/health"
	PathExportPDF = "/export-pdf"
)

// InvalidFormatMessage is reported when the workload payload is neither an
// array nor an error object.
const InvalidFormatMessage = "Invalid data format received"

const maxBodyBytes = 32 << 20

// Client calls the workload API. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records upstream call counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New builds a client for baseURL, e.g. http://localhost:5000/api.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchWorkload loads every workload record.
func (c *Client) FetchWorkload(ctx context.Context) ([]domain.WorkloadRecord, error) {
	body, _, err := c.do(ctx, http.MethodGet, PathWorkload, nil)
	if err != nil {
		return nil, err
	}
	return DecodeWorkload(body)
}

// FetchInsights loads the summary and recommendations.
func (c *Client) FetchInsights(ctx context.Context) (*domain.Insights, error) {
	body, _, err := c.do(ctx, http.MethodGet, PathInsights, nil)
	if err != nil {
		return nil, err
	}
	if msg, ok := errorMessage(body); ok {
		return nil, apperrors.NewUpstreamError(msg, nil)
	}
	var insights domain.Insights
	if err := json.Unmarshal(body, &insights); err != nil {
		return nil, apperrors.NewInvalidUpstreamResponse("Invalid insights response", err)
	}
	if insights.Recommendations == nil {
		insights.Recommendations = []string{}
	}
	return &insights, nil
}

// CheckHealth returns the liveness payload. Its shape is not interpreted.
func (c *Client) CheckHealth(ctx context.Context) (map[string]any, error) {
	body, _, err := c.do(ctx, http.MethodGet, PathHealth, nil)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{}
	if len(bytes.TrimSpace(body)) == 0 {
		return payload, nil
	}
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.NewInvalidUpstreamResponse("Invalid health response", err)
	}
	if obj, ok := raw.(map[string]any); ok {
		return obj, nil
	}
	payload["payload"] = raw
	return payload, nil
}

// ExportPDF posts records to the report endpoint and returns the PDF bytes.
func (c *Client) ExportPDF(ctx context.Context, records []domain.WorkloadRecord) ([]byte, error) {
	if records == nil {
		records = []domain.WorkloadRecord{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("encode export payload: %w", err))
	}
	body, contentType, err := c.do(ctx, http.MethodPost, PathExportPDF, payload)
	if err != nil {
		return nil, err
	}
	if strings.Contains(contentType, "json") {
		if msg, ok := errorMessage(body); ok {
			return nil, apperrors.NewUpstreamError(msg, nil)
		}
		return nil, apperrors.NewInvalidUpstreamResponse("Expected a PDF document", nil)
	}
	if len(body) == 0 {
		return nil, apperrors.NewInvalidUpstreamResponse("Empty report received", nil)
	}
	return body, nil
}

// ReportFileName names a downloaded report after the UTC date of t.
func ReportFileName(t time.Time) string {
	return "Faculty_Workload_Report_" + t.UTC().Format("2006-01-02") + ".pdf"
}

// DecodeWorkload classifies a workload payload: an array is data, an object
// with an error field is an upstream error, anything else is malformed.
func DecodeWorkload(body []byte) ([]domain.WorkloadRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, apperrors.NewInvalidUpstreamResponse("Empty response from workload api", nil)
	}
	if !json.Valid(trimmed) {
		return nil, apperrors.NewInvalidUpstreamResponse("Invalid JSON response", nil)
	}
	if trimmed[0] == '[' {
		records := []domain.WorkloadRecord{}
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, apperrors.NewInvalidUpstreamResponse(InvalidFormatMessage, err)
		}
		return records, nil
	}
	if msg, ok := errorMessage(trimmed); ok {
		return nil, apperrors.NewUpstreamError(msg, nil)
	}
	return nil, apperrors.NewInvalidUpstreamResponse(InvalidFormatMessage, nil)
}

// Message converts a client error into the text shown in place of data.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		return err.Error()
	}
	if de.Code == "UPSTREAM_UNAVAILABLE" && de.Err != nil {
		return "Network error: " + de.Err.Error()
	}
	return de.Message
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, string, error) {
	start := time.Now()
	body, contentType, err := c.roundTrip(ctx, method, path, payload)
	c.metrics.RecordUpstream(strings.TrimPrefix(path, "/"), err == nil, time.Since(start))
	if err != nil {
		c.logger.Warn("workload api call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, "", err
	}
	c.logger.Debug("workload api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return body, contentType, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte) ([]byte, string, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, "", apperrors.NewInternalError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/pdf, application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", apperrors.NewUpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", apperrors.NewUpstreamUnavailable(fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg, ok := errorMessage(body); ok {
			return nil, "", apperrors.NewUpstreamError(msg, nil)
		}
		return nil, "", apperrors.NewUpstreamError(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, snippet(body)), nil)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// errorMessage extracts the error field of an object payload.
func errorMessage(body []byte) (string, bool) {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(body), &envelope); err != nil || len(envelope.Error) == 0 {
		return "", false
	}
	if string(envelope.Error) == "null" {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(envelope.Error, &msg); err == nil {
		return msg, true
	}
	return string(envelope.Error), true
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200]
	}
	return s
}

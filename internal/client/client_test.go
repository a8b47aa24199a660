package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/spec-kit/faculty-workload/internal/domain"
	"github.com/spec-kit/faculty-workload/internal/observability"
	apperrors "github.com/spec-kit/faculty-workload/pkg/util/errorutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

const sampleWorkload = `[
  {"faculty":"Dr. Alice Smith","department":"Computer Science","data_type":"Demo","subject":"Data Structures",
   "year":"2nd Year","section":"A","teaching_hours":6,"lab_hours":2,"evaluation":"High","workload_score":12.0,
   "status":"Overloaded","faculty_total_workload":21.0,"dept_average":15.0},
  {"faculty":"Dr. Carol Davis","department":"Mathematics","data_type":"Demo","subject":"Calculus I",
   "teaching_hours":8,"status":"Underutilized"}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *observability.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	metrics := observability.NewMetrics()
	return New(srv.URL+"/api/", 2*time.Second, WithMetrics(metrics)), metrics
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de.Code
}

func TestFetchWorkload(t *testing.T) {
	c, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/workload", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, sampleWorkload)
	})

	records, err := c.FetchWorkload(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.StatusOverloaded, records[0].Status)
	assert.Equal(t, 12.0, records[0].WorkloadScore)
	assert.Equal(t, "2nd Year", records[0].Year)
	assert.Zero(t, records[1].WorkloadScore)
	assert.Equal(t, int64(1), metrics.Snapshot()["upstream"]["workload|ok"])
}

func TestDecodeWorkload(t *testing.T) {
	records, err := DecodeWorkload([]byte(" [] "))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	_, err = DecodeWorkload([]byte(`{"error":"Sheet not found"}`))
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_ERROR", domainCode(t, err))
	assert.Equal(t, "Sheet not found", Message(err))

	_, err = DecodeWorkload([]byte(`{"rows":[]}`))
	require.Error(t, err)
	assert.Equal(t, "INVALID_UPSTREAM_RESPONSE", domainCode(t, err))
	assert.Equal(t, InvalidFormatMessage, Message(err))

	_, err = DecodeWorkload([]byte(`42`))
	assert.Equal(t, InvalidFormatMessage, Message(err))

	_, err = DecodeWorkload([]byte(`<html>`))
	assert.Equal(t, "INVALID_UPSTREAM_RESPONSE", domainCode(t, err))

	_, err = DecodeWorkload(nil)
	assert.Equal(t, "INVALID_UPSTREAM_RESPONSE", domainCode(t, err))
}

func TestFetchWorkloadHTTPError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.FetchWorkload(context.Background())
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_ERROR", domainCode(t, err))
	assert.Equal(t, "HTTP 500: boom", Message(err))
}

func TestFetchWorkloadTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	_, err := c.FetchWorkload(context.Background())
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", domainCode(t, err))
	assert.Contains(t, Message(err), "Network error")
}

func TestFetchInsights(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/insights", r.URL.Path)
		_, _ = io.WriteString(w, `{"summary":"Two departments overloaded"}`)
	})

	insights, err := c.FetchInsights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Two departments overloaded", insights.Summary)
	assert.NotNil(t, insights.Recommendations)
	assert.Empty(t, insights.Recommendations)
}

func TestFetchInsightsErrorObject(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":"quota exceeded"}`)
	})

	_, err := c.FetchInsights(context.Background())
	require.Error(t, err)
	assert.Equal(t, "quota exceeded", Message(err))
}

func TestCheckHealth(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = io.WriteString(w, `{"status":"healthy"}`)
	})

	payload, err := c.CheckHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", payload["status"])
}

func TestExportPDF(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/export-pdf", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got []domain.WorkloadRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Len(t, got, 1)

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, "%PDF-1.4 report")
	})

	pdf, err := c.ExportPDF(context.Background(), []domain.WorkloadRecord{{Faculty: "A"}})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 report", string(pdf))
}

func TestExportPDFJSONError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"error":"renderer offline"}`)
	})

	_, err := c.ExportPDF(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "renderer offline", Message(err))
}

func TestReportFileName(t *testing.T) {
	ts := time.Date(2026, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "Faculty_Workload_Report_2026-03-10.pdf", ReportFileName(ts))
}

func TestMessagePlainError(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

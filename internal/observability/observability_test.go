package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/faculty-workload/internal/config"
)

func TestNewLoggerFallsBackOnBadLevel(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "loud"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/dashboard/overview", "GET", 200, time.Millisecond)
	m.RecordRequest("/dashboard/overview", "GET", 200, time.Millisecond)
	m.RecordError("/dashboard/export", "GET", "UPSTREAM_UNAVAILABLE")
	m.RecordUpstream("workload", false, time.Second)
	m.RecordUpstream("workload", true, 250*time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap["requests"]["/dashboard/overview|GET|200"])
	assert.Equal(t, int64(1), snap["errors"]["/dashboard/export|GET|UPSTREAM_UNAVAILABLE"])
	assert.Equal(t, int64(1), snap["upstream"]["workload|error"])
	assert.Equal(t, int64(1), snap["upstream"]["workload|ok"])
	assert.Equal(t, int64(2), snap["request_latency_ms"]["/dashboard/overview|GET"])
	assert.Equal(t, int64(1250), snap["upstream_latency_ms"]["workload"])

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/", "GET", 200, 0)
	assert.Nil(t, nilMetrics.Snapshot())
}

func TestRequestLoggerRecordsRequests(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, int64(1), m.Snapshot()["requests"]["/ping|GET|200"])
}

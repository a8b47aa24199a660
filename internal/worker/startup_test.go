package worker

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/faculty-workload/internal/client"
	"github.com/spec-kit/faculty-workload/internal/events"
	"github.com/spec-kit/faculty-workload/internal/service"
)

func TestLoadOnStart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/workload":
			_, _ = io.WriteString(w, `[{"faculty":"A","department":"X","workload_score":4,"status":"Balanced"}]`)
		default:
			_, _ = io.WriteString(w, `{"error":"No insights available"}`)
		}
	}))
	defer srv.Close()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher()
	StartActivityLogger(service.NewActivityLogger(dispatcher, logger))
	StartActivityLogger(nil)

	svc := service.NewDashboardService(service.DashboardDependencies{
		API:        client.New(srv.URL, time.Second),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	select {
	case <-LoadOnStart(context.Background(), svc, logger):
	case <-time.After(5 * time.Second):
		t.Fatal("initial load did not finish")
	}

	assert.Len(t, svc.Snapshot().Records, 1)
	entries := logs.FilterMessage("initial load finished").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "No insights available", entries[0].ContextMap()["insights_error"])
	assert.Equal(t, 1, logs.FilterMessage("WorkloadLoaded").Len())
}

package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/faculty-workload/internal/service"
)

// StartActivityLogger registers the activity log handlers.
func StartActivityLogger(activity *service.ActivityLogger) {
	if activity == nil {
		return
	}
	activity.RegisterHandlers()
}

// LoadOnStart performs the initial workload and insights load in the
// background. The returned channel closes when the load finishes.
func LoadOnStart(ctx context.Context, dashboard *service.DashboardService, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		load, _, insightsErr := dashboard.RefreshAll(ctx)
		fields := []zap.Field{
			zap.Uint64("generation", load.Generation),
			zap.Int("records", len(load.Records)),
		}
		if load.Error != "" {
			fields = append(fields, zap.String("error", load.Error))
		}
		if insightsErr != "" {
			fields = append(fields, zap.String("insights_error", insightsErr))
		}
		logger.Info("initial load finished", fields...)
	}()
	return done
}

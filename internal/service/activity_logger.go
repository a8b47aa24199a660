package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/faculty-workload/internal/events"
)

// ActivityLogger writes dashboard events to the structured log.
type ActivityLogger struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityLogger creates the subscriber.
func NewActivityLogger(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityLogger {
	return &ActivityLogger{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *ActivityLogger) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventWorkloadLoaded, a.handleWorkloadLoaded)
	a.dispatcher.Subscribe(events.EventWorkloadLoadFailed, a.handleWorkloadLoadFailed)
	a.dispatcher.Subscribe(events.EventLoadSuperseded, a.handleLoadSuperseded)
	a.dispatcher.Subscribe(events.EventInsightsLoaded, a.handleDebug)
	a.dispatcher.Subscribe(events.EventReportExported, a.handleReportExported)
}

func (a *ActivityLogger) handleWorkloadLoaded(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.WorkloadLoadedPayload)
	a.logger.Info("WorkloadLoaded",
		zap.Uint64("generation", event.Generation),
		zap.Int("records", payload.Records),
		zap.Int("departments", payload.Departments))
	if len(payload.StatusConflicts) > 0 {
		a.logger.Warn("faculty records disagree on status; using last seen",
			zap.Uint64("generation", event.Generation),
			zap.Strings("faculty", payload.StatusConflicts))
	}
	if payload.UnknownStatus > 0 {
		a.logger.Warn("records with unrecognised status are not tallied",
			zap.Uint64("generation", event.Generation),
			zap.Int("records", payload.UnknownStatus))
	}
	return nil
}

func (a *ActivityLogger) handleWorkloadLoadFailed(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.WorkloadLoadFailedPayload)
	a.logger.Warn("WorkloadLoadFailed",
		zap.Uint64("generation", event.Generation),
		zap.String("message", payload.Message))
	return nil
}

func (a *ActivityLogger) handleLoadSuperseded(_ context.Context, event events.Event) error {
	a.logger.Info("WorkloadLoadSuperseded", zap.Uint64("generation", event.Generation))
	return nil
}

func (a *ActivityLogger) handleReportExported(_ context.Context, event events.Event) error {
	a.logger.Info("ReportExported", zap.Uint64("generation", event.Generation), zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityLogger) handleDebug(_ context.Context, event events.Event) error {
	a.logger.Debug(string(event.Type), zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	return nil
}

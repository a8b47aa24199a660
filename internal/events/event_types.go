package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventWorkloadLoaded     EventType = "workload_loaded"
	EventWorkloadLoadFailed EventType = "workload_load_failed"
	EventLoadSuperseded     EventType = "workload_load_superseded"
	EventInsightsLoaded     EventType = "insights_loaded"
	EventReportExported     EventType = "report_exported"
)

// Event represents something that happened on the dashboard.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Generation uint64      `json:"generation,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, generation uint64, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Generation: generation,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// WorkloadLoadedPayload payload.
type WorkloadLoadedPayload struct {
	Records         int      `json:"records"`
	Departments     int      `json:"departments"`
	StatusConflicts []string `json:"status_conflicts,omitempty"`
	UnknownStatus   int      `json:"unknown_status,omitempty"`
}

// WorkloadLoadFailedPayload payload.
type WorkloadLoadFailedPayload struct {
	Message string `json:"message"`
}

// InsightsLoadedPayload payload.
type InsightsLoadedPayload struct {
	Recommendations int `json:"recommendations"`
}

// ReportExportedPayload payload.
type ReportExportedPayload struct {
	FileName string `json:"file_name"`
	Records  int    `json:"records"`
	Bytes    int    `json:"bytes"`
}

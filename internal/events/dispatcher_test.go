package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventWorkloadLoaded, func(_ context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("first failed")
	})
	d.Subscribe(EventWorkloadLoaded, func(_ context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventReportExported, func(_ context.Context, e Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), New(EventWorkloadLoaded, 4, WorkloadLoadedPayload{Records: 2}))
	assert.EqualError(t, err, "first failed")
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestNewStampsEvent(t *testing.T) {
	e := New(EventLoadSuperseded, 9, nil)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, uint64(9), e.Generation)
	assert.False(t, e.Timestamp.IsZero())
}

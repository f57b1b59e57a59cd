package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"farmstay/internal/domain/shared/events"
)

// EventRecord is a serialized domain event waiting to be published.
type EventRecord struct {
	ID         string
	Name       string
	Payload    []byte
	OccurredAt time.Time
	Aggregate  string
}

// Outbox buffers event records inside a command's scope; Flush is called by
// the bus middleware after commit.
type Outbox interface {
	Add(ctx context.Context, record EventRecord) error
	Flush(ctx context.Context) error
}

// Record serializes and buffers the aggregate's pending events.
func Record(ctx context.Context, box Outbox, evs []events.DomainEvent) error {
	if box == nil || len(evs) == 0 {
		return nil
	}
	for _, ev := range evs {
		payload, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		rec := EventRecord{
			ID:         uuid.NewString(),
			Name:       ev.EventName(),
			Payload:    payload,
			OccurredAt: ev.OccurredAt(),
			Aggregate:  ev.AggregateID(),
		}
		if err := box.Add(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Drain moves an aggregate's pending events into the outbox and clears them.
func Drain(ctx context.Context, box Outbox, recorder interface {
	PendingEvents() []events.DomainEvent
	ClearEvents()
}) error {
	evs := recorder.PendingEvents()
	recorder.ClearEvents()
	return Record(ctx, box, evs)
}

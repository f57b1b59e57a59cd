package kafka

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	appoutbox "farmstay/internal/app/outbox"
)

// PublishingOutbox buffers event records during a command and pushes them to
// Kafka on Flush. Publishing happens after the storage transaction commits,
// so a broker outage delays events but never rolls back state.
type PublishingOutbox struct {
	Producer    *Producer
	TopicPrefix string
	Logger      *slog.Logger

	mu      sync.Mutex
	records []appoutbox.EventRecord
}

func NewPublishingOutbox(producer *Producer, topicPrefix string, logger *slog.Logger) *PublishingOutbox {
	return &PublishingOutbox{Producer: producer, TopicPrefix: topicPrefix, Logger: logger}
}

func (o *PublishingOutbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *PublishingOutbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	pending := o.records
	o.records = nil
	o.mu.Unlock()

	for _, rec := range pending {
		if o.Producer == nil {
			if o.Logger != nil {
				o.Logger.Warn("outbox: no producer, dropping event", "event", rec.Name, "aggregate", rec.Aggregate)
			}
			continue
		}
		headers := map[string]string{
			"event_id":   rec.ID,
			"event_name": rec.Name,
		}
		if err := o.Producer.Publish(ctx, o.topicFor(rec.Name), rec.Aggregate, rec.Payload, headers); err != nil {
			if o.Logger != nil {
				o.Logger.Error("outbox: publish failed", "event", rec.Name, "error", err)
			}
			return err
		}
	}
	return nil
}

// topicFor maps "availability.days_marked" to "availability.events.v1".
func (o *PublishingOutbox) topicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	topic := base + ".events.v1"
	if o.TopicPrefix != "" {
		topic = o.TopicPrefix + "." + topic
	}
	return topic
}

var _ appoutbox.Outbox = (*PublishingOutbox)(nil)

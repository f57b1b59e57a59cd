package farms

import (
	"time"

	"farmstay/internal/domain/identity"
)

type FarmCreatedEvent struct {
	FarmID FarmID          `json:"farm_id"`
	Owner  identity.UserID `json:"owner_id"`
	At     time.Time       `json:"at"`
}

func (e FarmCreatedEvent) EventName() string     { return "farms.created" }
func (e FarmCreatedEvent) AggregateID() string   { return string(e.FarmID) }
func (e FarmCreatedEvent) OccurredAt() time.Time { return e.At }

type FarmUpdatedEvent struct {
	FarmID FarmID    `json:"farm_id"`
	At     time.Time `json:"at"`
}

func (e FarmUpdatedEvent) EventName() string     { return "farms.updated" }
func (e FarmUpdatedEvent) AggregateID() string   { return string(e.FarmID) }
func (e FarmUpdatedEvent) OccurredAt() time.Time { return e.At }

package availability

import (
	"time"

	"farmstay/internal/domain/farms"
	"farmstay/internal/domain/shared/dayrange"
)

// DaysMarkedEvent is published after a bulk availability edit commits.
type DaysMarkedEvent struct {
	FarmID farms.FarmID `json:"farm_id"`
	From   dayrange.Day `json:"from"`
	To     dayrange.Day `json:"to"`
	Open   bool         `json:"open"`
	Days   int          `json:"days"`
	At     time.Time    `json:"at"`
}

func (e DaysMarkedEvent) EventName() string     { return "availability.days_marked" }
func (e DaysMarkedEvent) AggregateID() string   { return string(e.FarmID) }
func (e DaysMarkedEvent) OccurredAt() time.Time { return e.At }

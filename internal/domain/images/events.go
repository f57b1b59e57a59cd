package images

import (
	"time"

	"farmstay/internal/domain/farms"
)

type ImageUploadedEvent struct {
	FarmID  farms.FarmID `json:"farm_id"`
	ImageID ImageID      `json:"image_id"`
	URL     string       `json:"url"`
	Primary bool         `json:"primary"`
	At      time.Time    `json:"at"`
}

func (e ImageUploadedEvent) EventName() string     { return "images.uploaded" }
func (e ImageUploadedEvent) AggregateID() string   { return string(e.FarmID) }
func (e ImageUploadedEvent) OccurredAt() time.Time { return e.At }

type PrimaryChangedEvent struct {
	FarmID  farms.FarmID `json:"farm_id"`
	ImageID ImageID      `json:"image_id"`
	At      time.Time    `json:"at"`
}

func (e PrimaryChangedEvent) EventName() string     { return "images.primary_changed" }
func (e PrimaryChangedEvent) AggregateID() string   { return string(e.FarmID) }
func (e PrimaryChangedEvent) OccurredAt() time.Time { return e.At }

type ImageRemovedEvent struct {
	FarmID  farms.FarmID `json:"farm_id"`
	ImageID ImageID      `json:"image_id"`
	At      time.Time    `json:"at"`
}

func (e ImageRemovedEvent) EventName() string     { return "images.removed" }
func (e ImageRemovedEvent) AggregateID() string   { return string(e.FarmID) }
func (e ImageRemovedEvent) OccurredAt() time.Time { return e.At }

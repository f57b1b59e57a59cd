package images

import (
	"context"
	"errors"
	"time"

	"farmstay/internal/domain/farms"
)

var ErrImageNotFound = errors.New("images: image not found")

type ImageID string

// Image references an uploaded photo of a farm. The blob itself lives in
// external storage; only the URL is kept here. Per farm, zero or one image
// carries the primary flag.
type Image struct {
	ID        ImageID
	FarmID    farms.FarmID
	URL       string
	Primary   bool
	CreatedAt time.Time
}

type Repository interface {
	ByFarm(ctx context.Context, farmID farms.FarmID) ([]Image, error)
	Add(ctx context.Context, img Image) error

	// Remove deletes the record and returns it so callers can clean up
	// the blob. ErrImageNotFound when the id does not belong to the farm.
	Remove(ctx context.Context, farmID farms.FarmID, id ImageID) (Image, error)

	// SetPrimary clears any previous primary of the farm and marks the
	// given image, as one atomic operation: a concurrent reader never
	// observes zero or two primaries mid-flight. ErrImageNotFound when
	// the id does not belong to the farm.
	SetPrimary(ctx context.Context, farmID farms.FarmID, id ImageID) error
}

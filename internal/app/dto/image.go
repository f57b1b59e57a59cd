package dto

import (
	"time"

	domainimages "farmstay/internal/domain/images"
)

type Image struct {
	ID        string    `json:"id"`
	FarmID    string    `json:"farm_id"`
	URL       string    `json:"url"`
	Primary   bool      `json:"primary"`
	CreatedAt time.Time `json:"created_at"`
}

func MapImage(img domainimages.Image) Image {
	return Image{
		ID:        string(img.ID),
		FarmID:    string(img.FarmID),
		URL:       img.URL,
		Primary:   img.Primary,
		CreatedAt: img.CreatedAt,
	}
}

func MapImages(items []domainimages.Image) []Image {
	out := make([]Image, 0, len(items))
	for _, img := range items {
		out = append(out, MapImage(img))
	}
	return out
}

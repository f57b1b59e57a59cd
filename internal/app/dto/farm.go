package dto

import (
	"time"

	domainfarms "farmstay/internal/domain/farms"
)

type Farm struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Name             string    `json:"name"`
	Location         string    `json:"location,omitempty"`
	Description      string    `json:"description,omitempty"`
	GuestsLimit      int       `json:"guests_limit"`
	Bedrooms         int       `json:"bedrooms,omitempty"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	ContactEmail     string    `json:"contact_email,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func MapFarm(f *domainfarms.Farm) Farm {
	if f == nil {
		return Farm{}
	}
	return Farm{
		ID:               string(f.ID),
		OwnerID:          string(f.Owner),
		Name:             f.Name,
		Location:         f.Location,
		Description:      f.Description,
		GuestsLimit:      f.GuestsLimit,
		Bedrooms:         f.Bedrooms,
		NightlyRateCents: f.NightlyRateCents,
		ContactEmail:     f.ContactEmail,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

func MapFarms(items []*domainfarms.Farm) []Farm {
	out := make([]Farm, 0, len(items))
	for _, f := range items {
		out = append(out, MapFarm(f))
	}
	return out
}

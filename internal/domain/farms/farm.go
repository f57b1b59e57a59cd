package farms

import (
	"context"
	"errors"
	"strings"
	"time"

	"farmstay/internal/domain/identity"
	"farmstay/internal/domain/shared/events"
)

var (
	ErrFarmNotFound  = errors.New("farms: farm not found")
	ErrNameRequired  = errors.New("farms: name is required")
	ErrOwnerRequired = errors.New("farms: owner is required")
	ErrGuestsLimit   = errors.New("farms: guests must be at least 1")
	ErrNightlyRate   = errors.New("farms: nightly rate must be non-negative")
)

type FarmID string

// Farm is a bookable property. Deletion is out of scope for this service;
// farms are created by their owner and edited by the owner or an admin.
type Farm struct {
	ID               FarmID
	Owner            identity.UserID
	Name             string
	Location         string
	Description      string
	GuestsLimit      int
	Bedrooms         int
	NightlyRateCents int64
	ContactEmail     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id FarmID) (*Farm, error)
	Save(ctx context.Context, farm *Farm) error
	// List returns every farm when owner is empty, otherwise only the
	// farms owned by that account.
	List(ctx context.Context, owner identity.UserID) ([]*Farm, error)
}

type CreateParams struct {
	ID               FarmID
	Owner            identity.UserID
	Name             string
	Location         string
	Description      string
	GuestsLimit      int
	Bedrooms         int
	NightlyRateCents int64
	ContactEmail     string
	Now              time.Time
}

func NewFarm(params CreateParams) (*Farm, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("farms: id is required")
	}
	if strings.TrimSpace(string(params.Owner)) == "" {
		return nil, ErrOwnerRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if params.GuestsLimit < 1 {
		return nil, ErrGuestsLimit
	}
	if params.NightlyRateCents < 0 {
		return nil, ErrNightlyRate
	}

	farm := &Farm{
		ID:               params.ID,
		Owner:            params.Owner,
		Name:             strings.TrimSpace(params.Name),
		Location:         strings.TrimSpace(params.Location),
		Description:      strings.TrimSpace(params.Description),
		GuestsLimit:      params.GuestsLimit,
		Bedrooms:         params.Bedrooms,
		NightlyRateCents: params.NightlyRateCents,
		ContactEmail:     strings.TrimSpace(params.ContactEmail),
		CreatedAt:        params.Now.UTC(),
		UpdatedAt:        params.Now.UTC(),
	}
	farm.Record(FarmCreatedEvent{FarmID: farm.ID, Owner: farm.Owner, At: farm.CreatedAt})
	return farm, nil
}

type UpdateParams struct {
	Name             string
	Location         string
	Description      string
	GuestsLimit      int
	Bedrooms         int
	NightlyRateCents int64
	ContactEmail     string
	Now              time.Time
}

func (f *Farm) UpdateDetails(params UpdateParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return ErrNameRequired
	}
	if params.GuestsLimit < 1 {
		return ErrGuestsLimit
	}
	if params.NightlyRateCents < 0 {
		return ErrNightlyRate
	}
	f.Name = strings.TrimSpace(params.Name)
	f.Location = strings.TrimSpace(params.Location)
	f.Description = strings.TrimSpace(params.Description)
	f.GuestsLimit = params.GuestsLimit
	f.Bedrooms = params.Bedrooms
	f.NightlyRateCents = params.NightlyRateCents
	f.ContactEmail = strings.TrimSpace(params.ContactEmail)
	f.UpdatedAt = params.Now.UTC()
	f.Record(FarmUpdatedEvent{FarmID: f.ID, At: f.UpdatedAt})
	return nil
}

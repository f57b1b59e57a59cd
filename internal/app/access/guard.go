package access

import (
	"errors"

	"farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
)

// ErrUnauthorized is returned when a caller may not mutate a farm. It is
// deliberately distinct from farms.ErrFarmNotFound: a denied caller learns
// nothing about the farm beyond what is already public.
var ErrUnauthorized = errors.New("access: caller is not allowed to modify this farm")

// Action names a guarded mutation class.
type Action string

const (
	ActionManageFarm         Action = "farm.manage"
	ActionManageAvailability Action = "availability.manage"
	ActionManageImages       Action = "images.manage"
)

// Guard authorizes mutations against a farm. Admins may act on every farm;
// owners only on farms they own. Queries are public and never pass through
// here.
type Guard struct{}

func (Guard) Authorize(caller identity.Principal, farm *farms.Farm, _ Action) error {
	if farm == nil {
		return farms.ErrFarmNotFound
	}
	switch caller.Role {
	case identity.RoleAdmin:
		return nil
	case identity.RoleOwner:
		if caller.ID != "" && caller.ID == farm.Owner {
			return nil
		}
	}
	return ErrUnauthorized
}

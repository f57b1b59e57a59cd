package farms

import (
	"context"

	"farmstay/internal/app/dto"
	"farmstay/internal/app/handlers/support"
	"farmstay/internal/app/queries"
	"farmstay/internal/app/uow"
	"farmstay/internal/domain/identity"
)

const (
	listFarmsKey = "farms.list"
	getFarmKey   = "farms.get"
)

// ListFarmsQuery returns the farms visible to the caller: admins see every
// farm, owners only their own. A zero Caller lists everything (the public
// catalog).
type ListFarmsQuery struct {
	Caller identity.Principal
}

func (q ListFarmsQuery) Key() string { return listFarmsKey }

type ListFarmsHandler struct {
	UoWFactory uow.Factory
}

func (h *ListFarmsHandler) Handle(ctx context.Context, q ListFarmsQuery) ([]dto.Farm, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	owner := identity.UserID("")
	if q.Caller.Role == identity.RoleOwner {
		owner = q.Caller.ID
	}
	items, err := unit.Farms().List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return dto.MapFarms(items), nil
}

var _ queries.Handler[ListFarmsQuery, []dto.Farm] = (*ListFarmsHandler)(nil)

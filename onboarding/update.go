package onboarding

import (
	"context"

	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/state"
)

type BusinessUpdater interface {
	UpdateBusiness(ctx context.Context, id string, req dto.UpdateBusinessRequest) (dto.Business, error)
}

// UpdateBusiness validates and sends a partial update. When the updated business is the current
// one, the current business is replaced with the server copy.
func UpdateBusiness(ctx context.Context, api BusinessUpdater, current *state.CurrentBusiness, id string, req dto.UpdateBusinessRequest) (dto.Business, error) {
	if req.Phone != nil {
		phone := dto.NormalizePhone(*req.Phone)
		req.Phone = &phone
	}
	if err := req.Validate(); err != nil {
		return dto.Business{}, err
	}
	b, err := api.UpdateBusiness(ctx, id, req)
	if err != nil {
		return dto.Business{}, err
	}
	if cur, ok := current.Get(); ok && cur.ID == b.ID {
		current.Set(b)
	}
	return b, nil
}

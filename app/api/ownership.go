package api

import (
	"context"

	"github.com/komoralink/komora/models"
)

type BusinessLookup interface {
	GetByID(ctx context.Context, id string) (*models.Business, error)
}

// CheckOwner returns models.ErrForbidden unless the authenticated user owns businessID.
func CheckOwner(ctx context.Context, businesses BusinessLookup, businessID string) error {
	b, err := businesses.GetByID(ctx, businessID)
	if err != nil {
		return err
	}
	if b.OwnerID == "" || b.OwnerID != UserID(ctx) {
		return models.ErrForbidden
	}
	return nil
}

package coupons

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("coupon not found")

type Repository interface {
	Create(ctx context.Context, c Coupon) error
	Update(ctx context.Context, c Coupon) error
	GetByID(ctx context.Context, id string) (Coupon, error)

	// GetUnredeemedByCode devuelve el cupón vigente para un code, si hay.
	// El invariante "a lo sumo un cupón sin canjear por code" se sostiene
	// por este lookup, no por una constraint del store.
	GetUnredeemedByCode(ctx context.Context, code string) (Coupon, error)
}

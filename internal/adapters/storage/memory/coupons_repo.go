package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"whoofsy-server/internal/domain/coupons"
)

type couponRepo struct {
	mu   sync.RWMutex
	byID map[string]coupons.Coupon
}

func NewCouponRepo() coupons.Repository {
	return &couponRepo{
		byID: make(map[string]coupons.Coupon),
	}
}

func (r *couponRepo) Create(ctx context.Context, c coupons.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("coupon id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("coupon already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *couponRepo) Update(ctx context.Context, c coupons.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return coupons.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *couponRepo) GetByID(ctx context.Context, id string) (coupons.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return coupons.Coupon{}, coupons.ErrNotFound
	}
	return c, nil
}

func (r *couponRepo) GetUnredeemedByCode(ctx context.Context, code string) (coupons.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byID {
		if c.Code == code && !c.Redeemed {
			return c, nil
		}
	}
	return coupons.Coupon{}, coupons.ErrNotFound
}

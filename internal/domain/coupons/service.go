package coupons

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrAlreadyRedeemed = errors.New("coupon already redeemed")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// MarkReunion emite el cupón good samaritan para un code. Idempotente
// mientras el cupón siga sin canjear: llamadas repetidas devuelven el
// mismo cupón. No verifica que la reunión haya ocurrido de verdad.
func (s *Service) MarkReunion(ctx context.Context, code string) (Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Coupon{}, ErrInvalidInput
	}

	existing, err := s.repo.GetUnredeemedByCode(ctx, code)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Coupon{}, err
	}

	c := Coupon{
		ID:        uuid.NewString(),
		Code:      code,
		Offer:     DefaultOffer,
		Redeemed:  false,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Coupon{}, err
	}
	return c, nil
}

// Redeem canjea el cupón una sola vez. Después de canjear, un nuevo
// MarkReunion del mismo code emite un cupón fresco.
func (s *Service) Redeem(ctx context.Context, id string) (Coupon, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Coupon{}, ErrNotFound
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Coupon{}, err
	}
	if c.Redeemed {
		return Coupon{}, ErrAlreadyRedeemed
	}

	now := s.now()
	c.Redeemed = true
	c.RedeemedAt = &now
	if err := s.repo.Update(ctx, c); err != nil {
		return Coupon{}, err
	}
	return c, nil
}

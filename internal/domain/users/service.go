package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

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

type UpsertInput struct {
	Email      string
	Name       string
	Phone      string
	ExternalID string
}

// UpsertByEmail crea o refresca al usuario usando el email como clave
// natural. Si ya existe pisa name y phone con lo que venga, aunque venga
// vacío: el proveedor de identidad es la fuente de verdad del perfil.
func (s *Service) UpsertByEmail(ctx context.Context, in UpsertInput) (User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return User{}, ErrInvalidInput
	}

	now := s.now()

	u, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		u.Name = in.Name
		u.Phone = in.Phone
		if in.ExternalID != "" {
			u.ExternalID = in.ExternalID
		}
		u.UpdatedAt = now
		if err := s.repo.Update(ctx, u); err != nil {
			return User{}, err
		}
		return u, nil
	case errors.Is(err, ErrNotFound):
		u = User{
			ID:         uuid.NewString(),
			Provider:   "google",
			ExternalID: in.ExternalID,
			Email:      email,
			Name:       in.Name,
			Phone:      in.Phone,
			Tier:       TierBasic,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return User{}, err
		}
		return u, nil
	default:
		return User{}, err
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// SetTier cambia el plan del usuario. Lo llama el collaborator de billing;
// acá no hay validación de pago, solo del valor.
func (s *Service) SetTier(ctx context.Context, id string, tier Tier) (User, error) {
	if !ValidTier(tier) {
		return User{}, ErrInvalidInput
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	u.Tier = tier
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

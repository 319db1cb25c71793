package tags

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyActivated = errors.New("tag already activated")
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

// Activate ata un code a un dueño, una sola vez.
// Si el tag no existe todavía se provisiona perezosamente y se activa en
// el mismo paso. Un tag ya activado siempre falla: no hay re-activación.
func (s *Service) Activate(ctx context.Context, code, userID string, model Model) (Tag, error) {
	code = strings.TrimSpace(code)
	userID = strings.TrimSpace(userID)
	if code == "" || userID == "" {
		return Tag{}, ErrInvalidInput
	}

	if model == "" {
		model = ModelSmartTag
	}
	if !ValidModel(model) {
		return Tag{}, ErrInvalidInput
	}

	now := s.now()

	t, err := s.repo.GetByCode(ctx, code)
	switch {
	case err == nil:
		if t.Activated {
			return Tag{}, ErrAlreadyActivated
		}
	case errors.Is(err, ErrNotFound):
		// Provisión perezosa: el inventario físico no siempre está
		// pre-cargado en la base.
		t = Tag{
			ID:        uuid.NewString(),
			Code:      code,
			Activated: false,
			Model:     model,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, t); err != nil {
			return Tag{}, err
		}
	default:
		return Tag{}, err
	}

	t.OwnerID = userID
	t.Activated = true
	t.UpdatedAt = now
	if err := s.repo.Update(ctx, t); err != nil {
		return Tag{}, err
	}
	return t, nil
}

// Link asocia el tag a una mascota. No valida que petID exista antes de
// escribir: el read-back posterior (en el handler) es quien detecta una
// referencia colgante, ya con el link commiteado. Mantener así; cambiarlo
// cambia el comportamiento observable del endpoint.
func (s *Service) Link(ctx context.Context, code, petID string) (Tag, error) {
	code = strings.TrimSpace(code)
	petID = strings.TrimSpace(petID)
	if code == "" || petID == "" {
		return Tag{}, ErrInvalidInput
	}

	t, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return Tag{}, err
	}

	t.PetID = petID
	t.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, t); err != nil {
		return Tag{}, err
	}
	return t, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (Tag, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Tag{}, ErrNotFound
	}
	return s.repo.GetByCode(ctx, code)
}
